// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build linux

package fdio

import (
	"syscall"
	"unsafe"
)

// spliceFMove mirrors Linux's SPLICE_F_MOVE: attempt to move pages instead
// of copying, where the kernel supports it.
const spliceFMove = 0x01

// splice moves up to size bytes from src to dst without an intervening
// copy through user space. The syscall package does not expose splice, so
// it is invoked directly.
func splice(src, dst int, size int) (int, error) {
	r1, _, errno := syscall.Syscall6(
		syscall.SYS_SPLICE,
		uintptr(src), 0,
		uintptr(dst), 0,
		uintptr(size), spliceFMove,
	)
	if errno != 0 {
		return 0, errno
	}
	return int(r1), nil
}

// tee duplicates up to size bytes from src to dst without consuming them
// from src. Not exposed by the syscall package.
func tee(src, dst int, size int) (int, error) {
	r1, _, errno := syscall.Syscall6(
		syscall.SYS_TEE,
		uintptr(src), uintptr(dst),
		uintptr(size), 0,
		0, 0,
	)
	if errno != 0 {
		return 0, errno
	}
	return int(r1), nil
}

const pollIn = 0x0001

type pollFd struct {
	fd      int32
	events  int16
	revents int16
}

// poll wraps poll(2); the syscall package exposes Select but not poll, so
// this goes directly through syscall.Syscall, as splice and tee above go
// through syscall.Syscall6.
func poll(fds []pollFd, timeoutMs int) (int, error) {
	if len(fds) == 0 {
		return 0, nil
	}
	r1, _, errno := syscall.Syscall(
		syscall.SYS_POLL,
		uintptr(unsafe.Pointer(&fds[0])),
		uintptr(len(fds)),
		uintptr(timeoutMs),
	)
	if errno != 0 {
		return 0, errno
	}
	return int(r1), nil
}
