// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package sdropt

import (
	"math"

	"code.hybscloud.com/sdrpipe"
	"code.hybscloud.com/sdrpipe/opt"
)

// FreqUnit names the unit a frequency-typed option's value is expressed in.
type FreqUnit int

const (
	Hertz FreqUnit = iota
	Meter
	Samples
	FreqStream
)

// FreqUnitTable is shared by unit= options across stages that accept a
// frequency in more than one unit.
var FreqUnitTable = []opt.EnumEntry[FreqUnit]{
	{Name: "hertz", Value: Hertz},
	{Name: "hz", Value: Hertz},
	{Name: "meters", Value: Meter},
	{Name: "meter", Value: Meter},
	{Name: "m", Value: Meter},
	{Name: "samples", Value: Samples},
	{Name: "stream", Value: FreqStream},
}

// NewFreqUnitOption declares a unit= option over FreqUnitTable.
func NewFreqUnitOption(key string, required bool, def FreqUnit) *opt.Option[FreqUnit] {
	return opt.NewEnum(key, "", required, def, FreqUnitTable)
}

const speedOfLight = 299792458.0

// ConvertFreq converts f, expressed in unit, to a cycles-per-sample ratio
// at the given sampleRate. FreqStream returns 0 (the value is reinterpreted
// as a control-stream id elsewhere, not a literal frequency); a
// non-finite result also returns 0.
func ConvertFreq(unit FreqUnit, f, sampleRate float64) float64 {
	switch unit {
	case FreqStream:
		return 0
	case Samples:
		f = 1 / f
	case Meter:
		f = speedOfLight / f
		f /= sampleRate
	default: // Hertz
		f /= sampleRate
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

// ContentToFreqUnit maps a packet's content tag to the frequency unit its
// payload is expressed in, used when reading a control stream whose
// packets may carry Frequency, Wavelength, or SampleCount values.
func ContentToFreqUnit(c sdrpipe.Content) FreqUnit {
	switch c {
	case sdrpipe.Frequency:
		return Hertz
	case sdrpipe.Wavelength:
		return Meter
	case sdrpipe.SampleCount:
		return Samples
	default:
		return FreqStream
	}
}
