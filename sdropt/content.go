// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package sdropt supplies the domain-specific option helpers every stage
// shares: the packet content-tag option, stream-id validation, and the
// frequency unit conversions the signal generator uses to interpret its
// control-stream input.
package sdropt

import (
	"code.hybscloud.com/sdrpipe"
	"code.hybscloud.com/sdrpipe/opt"
)

// ContentTable maps lowercase content names to Content values for the
// option parser. Its names are the same ones Content.String returns for the
// inspect pretty-printer, which keeps its own copy in packet.go.
var ContentTable = []opt.EnumEntry[sdrpipe.Content]{
	{Name: "binary", Value: sdrpipe.Binary},
	{Name: "string", Value: sdrpipe.String},
	{Name: "time", Value: sdrpipe.Time},
	{Name: "frequency", Value: sdrpipe.Frequency},
	{Name: "wavelength", Value: sdrpipe.Wavelength},
	{Name: "sample_count", Value: sdrpipe.SampleCount},
	{Name: "signal", Value: sdrpipe.Signal},
	{Name: "complex_signal", Value: sdrpipe.ComplexSignal},
	{Name: "spectrum", Value: sdrpipe.Spectrum},
	{Name: "complex_spectrum", Value: sdrpipe.ComplexSpectrum},
}

// NewContentOption declares a content-tag option.
func NewContentOption(key string, required bool, def sdrpipe.Content) *opt.Option[sdrpipe.Content] {
	return opt.NewEnum(key, "", required, def, ContentTable)
}

// NewContentSet declares a set-of-content-tags option, used by
// stream_filter's content= filter.
func NewContentSet(key string, required bool) *opt.Set[sdrpipe.Content] {
	return opt.NewSetEnum[sdrpipe.Content](key, "", required, nil, ContentTable)
}
