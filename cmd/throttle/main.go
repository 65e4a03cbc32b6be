// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Command throttle passes framed packets through unchanged, sleeping
// between them so the stream advances no faster than wall-clock time
// scaled by speed, using each packet's Duration field as its playback
// length. The sleep for a packet happens after it is forwarded, so the
// pacing models the real-time length of what was just sent rather than
// delaying it.
package main

import (
	"time"

	"code.hybscloud.com/sdrpipe"
	"code.hybscloud.com/sdrpipe/internal/stage"
	"code.hybscloud.com/sdrpipe/opt"
	"code.hybscloud.com/sdrpipe/sdropt"
)

func main() {
	h := stage.New("throttle")

	stream := opt.New[uint64]("stream", "ID", false, 0)
	speed := opt.New[float64]("speed", "REAL", false, 1.0)

	keyword := []opt.Base{stream, speed}
	h.ParseOrExit(nil, keyword)

	if !sdropt.ValidStreamID(stream.Get()) {
		h.FailConfig("invalid stream id", nil, keyword)
	}
	if speed.Get() <= 0 {
		h.FailConfig("speed must be positive", nil, keyword)
	}

	src := sdrpipe.NewSource(h.Stdin())
	sink := sdrpipe.NewSink(h.Stdout())

	start := time.Now()
	var cumulative uint64

	for src.Next() {
		pkt := src.Packet()
		src.Pass(sink)

		if !paces(pkt.ID, stream) {
			continue
		}
		cumulative += pkt.Duration
		target := start.Add(time.Duration(float64(cumulative) / speed.Get()))
		if d := time.Until(target); d > 0 {
			time.Sleep(d)
		}
	}
}

// paces reports whether a packet with the given id should count toward the
// pacing clock: every packet when stream is unset, only matching ids
// otherwise.
func paces(id uint16, stream *opt.Option[uint64]) bool {
	return !stream.IsSet() || uint64(id) == stream.Get()
}
