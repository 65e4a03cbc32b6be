// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package sdrpipe

import "code.hybscloud.com/sdrpipe/internal/fdio"

// Sink is a framed writer over a file descriptor. It owns fd and never
// closes it. Sink is stateless between Send calls.
type Sink struct {
	fd   int
	raw  bool
	fifo bool
}

// NewSink wraps fd as a framed Sink: every Send writes a 16-byte header
// before the body.
func NewSink(fd int) *Sink {
	return &Sink{fd: fd, fifo: fdio.IsFIFO(fd)}
}

// NewRawSink wraps fd as a raw Sink: Send writes only the body, no header.
func NewRawSink(fd int) *Sink {
	s := NewSink(fd)
	s.raw = true
	return s
}

// Send writes pkt's header (unless the Sink is raw) followed by exactly
// pkt.Size bytes of body, in order. If the Sink is not a pipe/socket,
// fdatasync is issued after the body.
func (s *Sink) Send(pkt Packet, body []byte) bool {
	if !s.raw {
		hdr := pkt.marshal()
		if !fdio.WriteAll(s.fd, hdr[:]) {
			return false
		}
	}
	ok := fdio.WriteAll(s.fd, body[:pkt.Size])
	if !s.fifo {
		fdio.Fdatasync(s.fd)
	}
	return ok
}

// SendT sends the values of data as pkt's body, computing pkt.Size from
// len(data) when the caller leaves it at its zero value.
func SendT[T any](s *Sink, pkt Packet, data []T) bool {
	if pkt.Size == 0 && len(data) > 0 {
		pkt.Size = uint32(len(data)) * uint32(sizeofT[T]())
	}
	return s.Send(pkt, bytesOf(data))
}

func sizeofT[T any]() uintptr {
	var zero T
	return sizeof(zero)
}
