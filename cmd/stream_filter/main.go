// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Command stream_filter passes or drops framed packets by content tag
// and/or stream id, as chosen by mode: in mode=pass a packet is forwarded
// only when it satisfies every filter that was set; in mode=drop a packet
// is forwarded only when it fails at least one. Both modes reduce to
// "forward iff matched XOR mode==drop".
package main

import (
	"code.hybscloud.com/sdrpipe"
	"code.hybscloud.com/sdrpipe/internal/stage"
	"code.hybscloud.com/sdrpipe/opt"
	"code.hybscloud.com/sdrpipe/sdropt"
)

type mode int

const (
	modePass mode = iota
	modeDrop
)

var modeTable = []opt.EnumEntry[mode]{
	{Name: "pass", Value: modePass},
	{Name: "drop", Value: modeDrop},
}

func main() {
	h := stage.New("stream_filter")

	m := opt.NewEnum("mode", "", true, modePass, modeTable)
	stream := opt.NewSet[uint64]("stream", "ID,...", false, nil)
	content := sdropt.NewContentSet("content", false)

	keyword := []opt.Base{m, stream, content}
	h.ParseOrExit(nil, keyword)

	if !m.IsSet() {
		h.FailConfig("mode is required", nil, keyword)
	}
	for _, id := range stream.Values() {
		if !sdropt.ValidStreamID(id) {
			h.FailConfig("invalid stream id", nil, keyword)
		}
	}

	src := sdrpipe.NewSource(h.Stdin())
	sink := sdrpipe.NewSink(h.Stdout())

	for src.Next() {
		pkt := src.Packet()
		if matches(pkt, content, stream) == (m.Get() == modeDrop) {
			src.Drop()
			continue
		}
		src.Pass(sink)
	}
}

// matches reports whether pkt satisfies the configured filters. A filter
// that was never set matches everything; with both set a packet must
// satisfy both to match.
func matches(pkt sdrpipe.Packet, content *opt.Set[sdrpipe.Content], stream *opt.Set[uint64]) bool {
	if content.Len() > 0 && !content.Contains(pkt.Content) {
		return false
	}
	if stream.Len() > 0 && !stream.Contains(uint64(pkt.ID)) {
		return false
	}
	return true
}
