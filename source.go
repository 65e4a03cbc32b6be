// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package sdrpipe

import "code.hybscloud.com/sdrpipe/internal/fdio"

// Source is a framed reader over a file descriptor. It owns fd and an
// internal side-buffer of bytes pulled from fd but not yet delivered to the
// caller; it never closes fd.
type Source struct {
	fd       int
	raw      bool
	fifo     bool
	seekable bool

	pkt  Packet
	read uint32
	eof  bool

	hdrBuf [headerSize]byte
	hdrPos int

	buffer []byte
	bufPos int
}

// NewSource wraps fd as a framed Source: every packet is preceded by its
// 16-byte header on the wire.
func NewSource(fd int) *Source {
	return &Source{fd: fd, fifo: fdio.IsFIFO(fd), seekable: fdio.IsSeekable(fd)}
}

// NewRawSource wraps fd as a raw Source: no header is read from the wire,
// and next's caller must supply a template Packet describing the bytes
// that follow.
func NewRawSource(fd int) *Source {
	s := NewSource(fd)
	s.raw = true
	return s
}

// Packet returns the metadata of the packet currently being read.
func (s *Source) Packet() Packet { return s.pkt }

// EOF reports whether the Source has reached end of stream.
func (s *Source) EOF() bool { return s.eof }

// Next drops any unread bytes of the previous packet and advances to the
// next one. In framed mode it reads the 16-byte header; in raw mode it
// adopts template (only the first template argument is used) and, if fd is
// seekable, clamps its Size to the bytes remaining in the file. It returns
// false when no further packet is available: in framed mode on a short
// header read, which also transitions to EOF, and in raw mode on a seekable
// fd once no bytes remain. In raw mode on a non-seekable fd Next cannot see
// the end of input and returns true; the following Recv, Drop or Pass
// detects it and transitions to EOF.
func (s *Source) Next(template ...Packet) bool {
	s.Drop()
	s.read = 0

	if s.eof {
		s.pkt = Packet{}
		return false
	}

	if !s.raw {
		want := len(s.hdrBuf) - s.hdrPos
		got := fdio.ReadAll(s.fd, s.hdrBuf[s.hdrPos:])
		if got < want {
			s.pkt = Packet{}
			s.eof = true
			s.hdrPos = 0
			return false
		}
		s.pkt = unmarshalPacket(s.hdrBuf)
		s.hdrPos = 0
		return true
	}

	var tmpl Packet
	if len(template) > 0 {
		tmpl = template[0]
	}
	s.pkt = tmpl

	if s.seekable {
		pos, size, err := fdio.LseekEnd(s.fd)
		if err != nil {
			s.pkt = Packet{}
			s.eof = true
			return false
		}
		if pos == size {
			s.pkt = Packet{}
			return false
		}
		remaining := uint32(size - pos)
		if tmpl.Size < remaining {
			remaining = tmpl.Size
		}
		s.pkt.Size = remaining
	}

	return true
}

// Poll reports whether the next Recv or Next call will make progress
// without blocking. timeout of -1 blocks until progress is possible; 0
// peeks. Seekable descriptors are always ready. Between packets, Poll may
// opportunistically accumulate header bytes into the internal header
// buffer, reporting true only once a full header has arrived.
func (s *Source) Poll(timeout int) bool {
	if s.seekable {
		return true
	}

	if !fdio.Poll(s.fd, timeout) {
		return false
	}

	if s.read < s.pkt.Size || s.raw {
		return true
	}

	// Between packets: try to fill the header buffer opportunistically.
	if s.hdrPos == len(s.hdrBuf) {
		return true
	}
	n := fdio.ReadAll(s.fd, s.hdrBuf[s.hdrPos:s.hdrPos+1])
	if n <= 0 {
		// EOF or an error: report ready so the caller's Next observes it.
		return true
	}
	s.hdrPos += n
	return s.hdrPos == len(s.hdrBuf)
}

// Recv copies up to min(len(buf), pkt.Size-read) bytes into buf, draining
// the side-buffer first, then reading from fd. It returns the number of
// bytes actually delivered and sets EOF on a short read.
func (s *Source) Recv(buf []byte) uint32 {
	size := uint32(len(buf))
	if size > s.pkt.Size-s.read {
		size = s.pkt.Size - s.read
	}
	if size == 0 || s.eof {
		return 0
	}

	got := 0
	if s.bufPos != len(s.buffer) {
		n := copy(buf[:size], s.buffer[s.bufPos:])
		s.bufPos += n
		got = n
	}

	if uint32(got) < size {
		n := fdio.ReadAll(s.fd, buf[got:size])
		got += n
		if uint32(got) < size {
			s.eof = true
		}
	}

	s.read += uint32(got)
	return uint32(got)
}

// Drop discards all unread bytes of the current packet. On a seekable fd
// it advances the file offset; otherwise it bit-buckets the bytes via
// splice to /dev/null. After Drop, read == pkt.Size.
func (s *Source) Drop() {
	size := s.pkt.Size - s.read

	if s.seekable {
		_, _ = fdio.Lseek(s.fd, int64(size))
		s.read = s.pkt.Size
		return
	}

	if size == 0 || s.eof {
		s.bufPos = 0
		s.buffer = s.buffer[:0]
		s.read = s.pkt.Size
		return
	}

	got := 0
	if s.bufPos != len(s.buffer) {
		got = len(s.buffer) - s.bufPos
		s.bufPos = 0
		s.buffer = s.buffer[:0]
	}

	if uint32(got) < size {
		null, err := fdio.DevNull()
		if err != nil {
			s.eof = true
			s.read = s.pkt.Size
			return
		}
		got += fdio.SpliceAll(s.fd, null, int(size)-got)
		if uint32(got) < size {
			s.eof = true
		}
	}

	s.read = s.pkt.Size
}

// Pass forwards the current packet's unread body to sink, consuming it
// from the Source. It is a no-op unless read == 0 and not EOF. It chooses
// splice, sendfile, or a buffered copy depending on the FD kinds of source
// and sink, and issues fdatasync on sink after the body when sink is not a
// pipe/socket.
func (s *Source) Pass(sink *Sink) {
	if s.read != 0 || s.eof {
		return
	}

	if !sink.raw {
		hdr := s.pkt.marshal()
		if !fdio.WriteAll(sink.fd, hdr[:]) {
			s.Drop()
			return
		}
	}

	r := 0
	if len(s.buffer) > 0 {
		if !fdio.WriteAll(sink.fd, s.buffer[s.bufPos:]) {
			s.Drop()
			return
		}
		r = len(s.buffer) - s.bufPos
		s.bufPos = 0
		s.buffer = s.buffer[:0]
	}

	remaining := int(s.pkt.Size) - r
	if remaining > 0 {
		switch {
		case s.fifo || sink.fifo:
			r += fdio.SpliceAll(s.fd, sink.fd, remaining)
		case s.seekable:
			r += fdio.SendfileAll(s.fd, sink.fd, remaining)
		default:
			buf := make([]byte, remaining)
			n := fdio.ReadAll(s.fd, buf)
			fdio.WriteAll(sink.fd, buf[:n])
			r += n
		}
	}

	s.read = uint32(r)

	if s.read < s.pkt.Size {
		s.Drop()
	}

	if !sink.fifo {
		fdio.Fdatasync(sink.fd)
	}
}

// Copy forwards a duplicate of the current packet's body to sink while
// preserving it for the Source's subsequent Recv calls. It is a no-op
// unless read == 0 and not EOF.
func (s *Source) Copy(sink *Sink) {
	if s.read != 0 || s.eof {
		return
	}

	if !sink.raw {
		hdr := s.pkt.marshal()
		if !fdio.WriteAll(sink.fd, hdr[:]) {
			return
		}
	}

	r := 0
	if len(s.buffer) > 0 {
		if !fdio.WriteAll(sink.fd, s.buffer[s.bufPos:]) {
			return
		}
		r = len(s.buffer) - s.bufPos
	}
	s.bufPos = 0

	switch {
	case s.fifo && sink.fifo:
		for r < int(s.pkt.Size) {
			copied := fdio.TeeOnce(s.fd, sink.fd, int(s.pkt.Size)-r)
			if copied <= 0 {
				return
			}
			r += copied

			if r < int(s.pkt.Size) {
				old := len(s.buffer)
				s.buffer = append(s.buffer, make([]byte, copied)...)
				if fdio.ReadAll(s.fd, s.buffer[old:old+copied]) < copied {
					return
				}
			}
		}
	case (s.fifo || !s.seekable) && r < int(s.pkt.Size):
		old := len(s.buffer)
		want := int(s.pkt.Size) - r
		s.buffer = append(s.buffer, make([]byte, want)...)
		n := fdio.ReadAll(s.fd, s.buffer[old:old+want])
		fdio.WriteAll(sink.fd, s.buffer[old:old+n])
		r += n
		if r < int(s.pkt.Size) {
			s.buffer = s.buffer[:r]
		}
	default:
		if sink.fifo {
			r = fdio.SpliceAll(s.fd, sink.fd, int(s.pkt.Size)-r)
		} else {
			r = fdio.SendfileAll(s.fd, sink.fd, int(s.pkt.Size)-r)
		}
		_, _ = fdio.Lseek(s.fd, -int64(r))
	}

	if !sink.fifo {
		fdio.Fdatasync(sink.fd)
	}
}
