// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package sdropt

import "math"

// ValidStreamID reports whether id fits the 16-bit stream-id field carried
// in every packet header.
func ValidStreamID(id uint64) bool { return id <= 65535 }

// ValidStreamIDFloat reports whether f is a whole number in [0, 65535], the
// check applied when a stream id is reinterpreted from a frequency-typed
// option (the signal generator's unit=stream mode).
func ValidStreamIDFloat(f float64) bool {
	return f >= 0 && f <= 65535 && f == math.Trunc(f)
}

// ConvertStreamIDFloat truncates and narrows f to a stream id. Callers must
// check ValidStreamIDFloat first.
func ConvertStreamIDFloat(f float64) uint16 { return uint16(f) }
