// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build linux

// Package fdio classifies file descriptors and moves bytes between them
// using the cheapest correct primitive for the pairing: splice for
// FIFO/socket-to-FIFO/socket transfers, sendfile for seekable-to-anything
// transfers, tee for FIFO-to-FIFO duplication, and a buffered read/write
// fallback otherwise. Linux only: splice and tee have no portable
// equivalent.
package fdio

import (
	"sync"
	"syscall"
)

// IsFIFO reports whether fd refers to a pipe or a Unix-domain socket, the
// class of descriptor that supports splice and tee.
func IsFIFO(fd int) bool {
	var st syscall.Stat_t
	if err := syscall.Fstat(fd, &st); err != nil {
		return false
	}
	switch st.Mode & syscall.S_IFMT {
	case syscall.S_IFIFO, syscall.S_IFSOCK:
		return true
	default:
		return false
	}
}

// IsSeekable reports whether fd admits positioning queries without error,
// the class of descriptor that supports sendfile and lseek-based skip.
func IsSeekable(fd int) bool {
	_, err := syscall.Seek(fd, 0, 1 /* SEEK_CUR */)
	return err == nil
}

var (
	devNullOnce sync.Once
	devNullFD   int
	devNullErr  error
)

// DevNull returns the process-wide write-only descriptor to /dev/null used
// to bit-bucket dropped packet bytes. Opened on first use, never closed.
func DevNull() (int, error) {
	devNullOnce.Do(func() {
		devNullFD, devNullErr = syscall.Open("/dev/null", syscall.O_WRONLY, 0)
	})
	return devNullFD, devNullErr
}

// ReadAll reads exactly len(p) bytes from fd unless it hits EOF or an error
// first, returning the number of bytes actually read.
func ReadAll(fd int, p []byte) int {
	n := 0
	for n < len(p) {
		r, err := syscall.Read(fd, p[n:])
		if err != nil || r <= 0 {
			break
		}
		n += r
	}
	return n
}

// WriteAll writes exactly len(p) bytes to fd, looping over short writes.
// It returns false if a write fails before all bytes are written.
func WriteAll(fd int, p []byte) bool {
	n := 0
	for n < len(p) {
		w, err := syscall.Write(fd, p[n:])
		if err != nil || w <= 0 {
			return false
		}
		n += w
	}
	return true
}

// SpliceAll moves up to size bytes from src to dst via splice(2), looping
// over partial transfers. Both descriptors must have at least one pipe end.
// Returns the number of bytes actually moved.
func SpliceAll(src, dst int, size int) int {
	moved := 0
	for moved < size {
		s, err := splice(src, dst, size-moved)
		if err != nil || s <= 0 {
			break
		}
		moved += s
	}
	return moved
}

// SendfileAll copies up to size bytes from the seekable descriptor src to
// dst via sendfile(2), looping over partial transfers. On EOVERFLOW it
// lowers size by one byte and tries again for as long as more than one byte
// remains, so the count it returns can fall short of the size it was given.
func SendfileAll(src, dst int, size int) int {
	sent := 0
	for sent < size {
		remaining := size - sent
		s, err := syscall.Sendfile(dst, src, nil, remaining)
		if err != nil {
			if err == syscall.EOVERFLOW && remaining > 1 {
				size--
				continue
			}
			break
		}
		if s <= 0 {
			break
		}
		sent += s
	}
	return sent
}

// TeeOnce duplicates up to size bytes from src to dst via tee(2) without
// consuming them from src, returning the number of bytes teed (0 means EOF
// or a would-block condition, and the caller should stop looping).
func TeeOnce(src, dst int, size int) int {
	n, err := tee(src, dst, size)
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// Lseek repositions fd relative to the current offset (POSIX SEEK_CUR) and
// returns the resulting absolute offset.
func Lseek(fd int, delta int64) (int64, error) {
	return syscall.Seek(fd, delta, 1)
}

// LseekEnd returns fd's size by probing SEEK_END and restoring the original
// offset.
func LseekEnd(fd int) (pos, size int64, err error) {
	pos, err = syscall.Seek(fd, 0, 1)
	if err != nil {
		return 0, 0, err
	}
	size, err = syscall.Seek(fd, 0, 2)
	if err != nil {
		return 0, 0, err
	}
	if _, err = syscall.Seek(fd, pos, 0); err != nil {
		return 0, 0, err
	}
	return pos, size, nil
}

// Fdatasync flushes fd's data to stable storage, ignoring descriptors for
// which the operation does not make sense (pipes, sockets).
func Fdatasync(fd int) {
	_, _, _ = syscall.Syscall(syscall.SYS_FDATASYNC, uintptr(fd), 0, 0)
}

// Poll waits up to timeoutMs milliseconds (-1 blocks, 0 peeks) for fd to
// become readable, returning true if it is readable before the deadline.
func Poll(fd int, timeoutMs int) bool {
	pfd := []pollFd{{fd: int32(fd), events: pollIn}}
	n, err := poll(pfd, timeoutMs)
	return err == nil && n > 0
}
