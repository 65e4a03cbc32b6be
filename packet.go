// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package sdrpipe provides a framed binary packet transport for chaining
// small single-purpose executables over standard input/output.
//
// A Packet is a 16-byte header (id, content, size, duration) immediately
// followed by size bytes of payload. The header is always little-endian on
// the wire; Source and Sink byteswap it transparently on big-endian hosts.
// Source and Sink pick the cheapest correct transfer primitive for a given
// pairing of file descriptors (splice, sendfile, tee, or buffered
// read/write), so that a chain of stages connected by pipes never copies a
// payload through user space more than once.
package sdrpipe

import (
	"encoding/binary"
	"unsafe"

	"code.hybscloud.com/sdrpipe/internal/bo"
)

// headerSize is the on-wire size of a Packet header.
const headerSize = 16

// Content identifies how a Packet's payload bytes should be interpreted.
type Content uint16

// The closed set of content tags. Values are part of the wire format and
// must not be reordered or reused.
const (
	Binary Content = iota
	String
	Time
	Frequency
	Wavelength
	SampleCount
	Signal
	ComplexSignal
	Spectrum
	ComplexSpectrum
)

var contentNames = [...]string{
	Binary:          "binary",
	String:          "string",
	Time:            "time",
	Frequency:       "frequency",
	Wavelength:      "wavelength",
	SampleCount:     "sample_count",
	Signal:          "signal",
	ComplexSignal:   "complex_signal",
	Spectrum:        "spectrum",
	ComplexSpectrum: "complex_spectrum",
}

// String returns the lowercase, underscore-separated name used by the
// option parser and by inspect's one-line pretty-printer.
func (c Content) String() string {
	if int(c) < len(contentNames) {
		return contentNames[c]
	}
	return "unknown"
}

// ContentByName looks up a Content by its lowercase wire name, case folding
// the input. ok is false if name does not match any known content tag.
func ContentByName(name string) (c Content, ok bool) {
	for i, n := range contentNames {
		if equalFold(n, name) {
			return Content(i), true
		}
	}
	return 0, false
}

func equalFold(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := 0; i < len(a); i++ {
		ca, cb := a[i], b[i]
		if 'A' <= ca && ca <= 'Z' {
			ca += 'a' - 'A'
		}
		if 'A' <= cb && cb <= 'Z' {
			cb += 'a' - 'A'
		}
		if ca != cb {
			return false
		}
	}
	return true
}

// Packet is the 16-byte wire header that precedes every framed payload.
type Packet struct {
	ID       uint16
	Content  Content
	Size     uint32
	Duration uint64 // nanoseconds; 0 if unknown
}

// marshal encodes p into an always-little-endian 16-byte header.
func (p Packet) marshal() [headerSize]byte {
	var buf [headerSize]byte
	native := bo.Native()
	native.PutUint16(buf[0:2], p.ID)
	native.PutUint16(buf[2:4], uint16(p.Content))
	native.PutUint32(buf[4:8], p.Size)
	native.PutUint64(buf[8:16], p.Duration)
	if native != binary.LittleEndian {
		swap16(buf[0:2])
		swap16(buf[2:4])
		swap32(buf[4:8])
		swap64(buf[8:16])
	}
	return buf
}

// unmarshalPacket decodes a 16-byte wire header.
func unmarshalPacket(buf [headerSize]byte) Packet {
	native := bo.Native()
	if native != binary.LittleEndian {
		swap16(buf[0:2])
		swap16(buf[2:4])
		swap32(buf[4:8])
		swap64(buf[8:16])
	}
	return Packet{
		ID:       native.Uint16(buf[0:2]),
		Content:  Content(native.Uint16(buf[2:4])),
		Size:     native.Uint32(buf[4:8]),
		Duration: native.Uint64(buf[8:16]),
	}
}

func swap16(b []byte) { b[0], b[1] = b[1], b[0] }
func swap32(b []byte) { b[0], b[1], b[2], b[3] = b[3], b[2], b[1], b[0] }
func swap64(b []byte) {
	for i, j := 0, 7; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
}

// Compatible reports whether pkt.Size is a multiple of the size of T,
// making the payload interpretable as a sequence of T values.
func Compatible[T any](pkt Packet) bool {
	var zero T
	sz := unsafe.Sizeof(zero)
	return sz != 0 && uint64(pkt.Size)%uint64(sz) == 0
}

// Count returns the number of T values pkt's payload holds, or 0 if the
// payload size is not a multiple of sizeof(T).
func Count[T any](pkt Packet) uint32 {
	if !Compatible[T](pkt) {
		return 0
	}
	var zero T
	return pkt.Size / uint32(unsafe.Sizeof(zero))
}
