// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Command inspect logs one "Packet{...}" trace line per packet matching
// stream (or every packet, if stream is unset) on stdin to stderr. A
// non-matching packet is passed through unchanged when pass or pass_all is
// set, and dropped otherwise; a matching packet is only re-sent downstream
// when pass_all is set — pass alone diverts matching packets to the trace
// and removes them from the stream.
package main

import (
	"fmt"

	"code.hybscloud.com/sdrpipe"
	"code.hybscloud.com/sdrpipe/internal/stage"
	"code.hybscloud.com/sdrpipe/opt"
	"code.hybscloud.com/sdrpipe/sdropt"
)

func main() {
	h := stage.New("inspect")

	stream := opt.New[uint64]("stream", "ID", false, 0)
	pass := opt.New[bool]("pass", "", false, false)
	passAll := opt.New[bool]("pass_all", "", false, false)

	positional := []opt.Base{stream}
	keyword := []opt.Base{pass, passAll}
	h.ParseOrExit(positional, keyword)

	if !sdropt.ValidStreamID(stream.Get()) {
		h.FailConfig("invalid stream id", positional, keyword)
	}

	src := sdrpipe.NewSource(h.Stdin())
	sink := sdrpipe.NewSink(h.Stdout())

	for src.Next() {
		pkt := src.Packet()
		if !matchesStream(pkt.ID, stream) {
			if forwardsUnmatched(pass, passAll) {
				src.Pass(sink)
			} else {
				src.Drop()
			}
			continue
		}

		buf := make([]byte, pkt.Size)
		n := src.Recv(buf)
		h.Log.Line(fmt.Sprintf("Packet{ id: %d, content: %s, size: %d, duration: %d } %d bytes received",
			pkt.ID, pkt.Content, pkt.Size, pkt.Duration, n))

		if passAll.Get() {
			sink.Send(pkt, buf)
		}
		src.Drop()
	}
}

// matchesStream reports whether a packet with the given id is the one being
// inspected: every packet, if stream was never set, only the matching id
// otherwise.
func matchesStream(id uint16, stream *opt.Option[uint64]) bool {
	return !stream.IsSet() || uint64(id) == stream.Get()
}

// forwardsUnmatched reports whether a packet that did not match stream still
// gets sent downstream.
func forwardsUnmatched(pass, passAll *opt.Option[bool]) bool {
	return pass.Get() || passAll.Get()
}
