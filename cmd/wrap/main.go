// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Command wrap reads raw bytes on stdin and emits framed packets on
// stdout, synthesizing a header from element_size/element_count/duration/
// sample_rate.
package main

import (
	"code.hybscloud.com/sdrpipe"
	"code.hybscloud.com/sdrpipe/internal/stage"
	"code.hybscloud.com/sdrpipe/opt"
	"code.hybscloud.com/sdrpipe/sdropt"
)

func main() {
	h := stage.New("wrap")

	content := sdropt.NewContentOption("content_type", false, sdrpipe.Binary)
	id := opt.New[uint64]("stream", "ID", false, 0)
	elementSize := opt.New[uint64]("element_size", "BYTES", true, 0)
	elementCount := opt.New[uint64]("element_count", "", false, 0)
	duration := opt.New[uint64]("duration", "NS", false, 0)
	sampleRate := opt.New[uint64]("sample_rate", "HZ", false, 0)

	positional := []opt.Base{content, id}
	keyword := []opt.Base{elementSize, elementCount, duration, sampleRate}
	h.ParseOrExit(positional, keyword)

	if !elementSize.IsSet() {
		h.FailConfig("element_size is required", positional, keyword)
	}
	if elementSize.Get() < 1 {
		h.FailConfig("element_size must be at least 1", positional, keyword)
	}
	if !sdropt.ValidStreamID(id.Get()) {
		h.FailConfig("invalid stream id", positional, keyword)
	}
	if !content.IsSet() {
		h.Log.Warning("input will be treated as binary data")
	}

	pkt := sdrpipe.Packet{ID: uint16(id.Get()), Content: content.Get(), Duration: duration.Get()}

	switch {
	case elementCount.IsSet():
		if elementCount.Get() == 0 {
			h.FailConfig("element_count must be at least 1", positional, keyword)
		}
		pkt.Size = uint32(elementSize.Get() * elementCount.Get())
	case sampleRate.IsSet() && duration.IsSet():
		count := duration.Get() * sampleRate.Get() / 1_000_000_000
		if count < 1 {
			h.FailConfig("packet duration is too small", positional, keyword)
		}
		pkt.Size = uint32(elementSize.Get() * count)
	default:
		pkt.Size = uint32(elementSize.Get() * optimalBlockCount(sampleRate.Get()))
	}

	if sampleRate.IsSet() {
		count := uint64(pkt.Size) / elementSize.Get()
		pkt.Duration = count * 1_000_000_000 / sampleRate.Get()
		if duration.IsSet() && elementCount.IsSet() && pkt.Duration != duration.Get() {
			h.FailConfig("duration and element_count do not match", positional, keyword)
		}
	}

	src := sdrpipe.NewRawSource(h.Stdin())
	sink := sdrpipe.NewSink(h.Stdout())

	for src.Next(pkt) {
		for !src.Poll(-1) {
		}
		src.Pass(sink)
	}
}

// optimalBlockCount picks a default element count when the caller supplies
// neither element_count nor duration+sample_rate: about 100ms worth of
// elements at the given sample rate, or a flat default when no sample rate
// is known.
func optimalBlockCount(sampleRate uint64) uint64 {
	if sampleRate == 0 {
		return 4096
	}
	n := sampleRate / 10
	if n == 0 {
		n = 1
	}
	return n
}
