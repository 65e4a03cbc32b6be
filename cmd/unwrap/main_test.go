// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package main

import (
	"testing"

	"code.hybscloud.com/sdrpipe/opt"
)

func TestMatchesStreamWithNoFilterMatchesEverything(t *testing.T) {
	stream := opt.New[uint64]("stream", "ID", false, 0)

	if !matchesStream(3, stream) {
		t.Error("no stream filter set should match every packet")
	}
}

func TestMatchesStreamFiltersByID(t *testing.T) {
	stream := opt.New[uint64]("stream", "ID", false, 0)
	if !opt.Parse(nil, []opt.Base{stream}, []string{"stream=7"}, nil) {
		t.Fatal("parse should succeed")
	}

	if !matchesStream(7, stream) {
		t.Error("matching stream id should match")
	}
	if matchesStream(1, stream) {
		t.Error("non-matching stream id should not match")
	}
}
