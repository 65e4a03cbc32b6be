// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package sdrpipe

import "unsafe"

func sizeof[T any](v T) uintptr { return unsafe.Sizeof(v) }

// bytesOf reinterprets a slice of fixed-size values as raw bytes, used by
// SendT to hand typed sample slices to Sink.Send without an explicit copy.
func bytesOf[T any](data []T) []byte {
	if len(data) == 0 {
		return nil
	}
	var zero T
	sz := int(unsafe.Sizeof(zero))
	return unsafe.Slice((*byte)(unsafe.Pointer(&data[0])), len(data)*sz)
}
