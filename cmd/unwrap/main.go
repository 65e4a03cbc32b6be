// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Command unwrap reads framed packets on stdin and writes the raw body of
// each matching packet to stdout, discarding the header.
package main

import (
	"code.hybscloud.com/sdrpipe"
	"code.hybscloud.com/sdrpipe/internal/stage"
	"code.hybscloud.com/sdrpipe/opt"
	"code.hybscloud.com/sdrpipe/sdropt"
)

func main() {
	h := stage.New("unwrap")

	stream := opt.New[uint64]("stream", "ID", false, 0)

	keyword := []opt.Base{stream}
	h.ParseOrExit(nil, keyword)

	if !sdropt.ValidStreamID(stream.Get()) {
		h.FailConfig("invalid stream id", nil, keyword)
	}

	src := sdrpipe.NewSource(h.Stdin())
	sink := sdrpipe.NewRawSink(h.Stdout())

	for src.Next() {
		if !matchesStream(src.Packet().ID, stream) {
			src.Drop()
			continue
		}
		src.Pass(sink)
	}
}

// matchesStream reports whether a packet with the given id should be
// unwrapped: every packet, if stream was never set, only the matching id
// otherwise.
func matchesStream(id uint16, stream *opt.Option[uint64]) bool {
	return !stream.IsSet() || uint64(id) == stream.Get()
}
