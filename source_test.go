// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package sdrpipe

import (
	"os"
	"testing"
)

// writeFramed writes pkt+body directly onto w's fd, bypassing Sink, so
// Source tests do not depend on Sink's correctness.
func writeFramed(t *testing.T, w *os.File, pkt Packet, body []byte) {
	t.Helper()
	hdr := pkt.marshal()
	if _, err := w.Write(hdr[:]); err != nil {
		t.Fatal(err)
	}
	if _, err := w.Write(body); err != nil {
		t.Fatal(err)
	}
}

func TestSourceNextEmptyPacketRoundTrips(t *testing.T) {
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()

	pkt := Packet{ID: 3, Content: Binary, Size: 0, Duration: 0}
	go func() {
		writeFramed(t, w, pkt, nil)
		w.Close()
	}()

	src := NewSource(int(r.Fd()))
	if !src.Next() {
		t.Fatal("Next should succeed on a zero-size packet")
	}
	if src.Packet() != pkt {
		t.Errorf("got %+v, want %+v", src.Packet(), pkt)
	}
	if n := src.Recv(make([]byte, 1)); n != 0 {
		t.Errorf("Recv on empty packet should return 0, got %d", n)
	}
}

func TestSourceTruncatedHeaderSetsEOF(t *testing.T) {
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()

	go func() {
		w.Write([]byte{1, 2, 3}) // short header
		w.Close()
	}()

	src := NewSource(int(r.Fd()))
	if src.Next() {
		t.Fatal("Next should fail on a truncated header")
	}
	if !src.EOF() {
		t.Error("Source should be at EOF after a truncated header")
	}
	if src.Next() {
		t.Error("EOF must be monotonic: Next should keep returning false")
	}
}

func TestSourceTruncatedBodySetsEOF(t *testing.T) {
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()

	pkt := Packet{ID: 1, Content: Binary, Size: 10}
	go func() {
		hdr := pkt.marshal()
		w.Write(hdr[:])
		w.Write([]byte{1, 2, 3}) // short body
		w.Close()
	}()

	src := NewSource(int(r.Fd()))
	if !src.Next() {
		t.Fatal("Next should succeed")
	}
	buf := make([]byte, 10)
	n := src.Recv(buf)
	if n != 3 {
		t.Errorf("Recv returned %d, want 3 (short read)", n)
	}
	if !src.EOF() {
		t.Error("Source should transition to EOF on a short body read")
	}
}

func TestSourceDropIdempotent(t *testing.T) {
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()

	body := []byte{1, 2, 3, 4}
	pkt := Packet{ID: 1, Content: Binary, Size: uint32(len(body))}
	go func() {
		writeFramed(t, w, pkt, body)
		writeFramed(t, w, Packet{ID: 2, Content: Binary, Size: 0}, nil)
		w.Close()
	}()

	src := NewSource(int(r.Fd()))
	if !src.Next() {
		t.Fatal("Next should succeed")
	}
	src.Drop()
	src.Drop() // idempotent

	if !src.Next() {
		t.Fatal("Next should advance to the second packet after Drop")
	}
	if src.Packet().ID != 2 {
		t.Errorf("got packet id %d, want 2", src.Packet().ID)
	}
}

func TestSourcePassByteExact(t *testing.T) {
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()

	body := []byte("pass-through payload")
	pkt := Packet{ID: 5, Content: String, Size: uint32(len(body))}
	go func() {
		writeFramed(t, w, pkt, body)
		w.Close()
	}()

	outR, outW, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	defer outR.Close()

	src := NewSource(int(r.Fd()))
	sink := NewSink(int(outW.Fd()))

	done := make(chan struct{})
	go func() {
		defer close(done)
		if !src.Next() {
			t.Error("Next should succeed")
		}
		src.Pass(sink)
		outW.Close()
	}()

	out := NewSource(int(outR.Fd()))
	if !out.Next() {
		t.Fatal("downstream Next should succeed")
	}
	if out.Packet() != pkt {
		t.Errorf("downstream packet %+v != upstream %+v", out.Packet(), pkt)
	}
	got := make([]byte, len(body))
	if n := out.Recv(got); n != uint32(len(body)) {
		t.Fatalf("downstream Recv returned %d, want %d", n, len(body))
	}
	if string(got) != string(body) {
		t.Errorf("downstream body %q != %q", got, body)
	}
	<-done
}

func TestSourceCopyPreservesBodyForRecv(t *testing.T) {
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()

	body := []byte("tap me")
	pkt := Packet{ID: 9, Content: String, Size: uint32(len(body))}
	go func() {
		writeFramed(t, w, pkt, body)
		w.Close()
	}()

	tapR, tapW, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	defer tapR.Close()

	src := NewSource(int(r.Fd()))
	tap := NewSink(int(tapW.Fd()))

	if !src.Next() {
		t.Fatal("Next should succeed")
	}

	tapDone := make(chan struct{})
	go func() {
		defer close(tapDone)
		src.Copy(tap)
		tapW.Close()
	}()

	<-tapDone

	// Main output: Recv must still see the full body.
	got := make([]byte, len(body))
	n := src.Recv(got)
	if n != uint32(len(body)) {
		t.Fatalf("main Recv after Copy returned %d, want %d", n, len(body))
	}
	if string(got) != string(body) {
		t.Errorf("main body %q != %q", got, body)
	}

	tapSrc := NewSource(int(tapR.Fd()))
	if !tapSrc.Next() {
		t.Fatal("tap Next should succeed")
	}
	tapGot := make([]byte, len(body))
	if n := tapSrc.Recv(tapGot); n != uint32(len(body)) {
		t.Fatalf("tap Recv returned %d, want %d", n, len(body))
	}
	if string(tapGot) != string(body) {
		t.Errorf("tap body %q != %q", tapGot, body)
	}
}

func TestSourceRawModeSeekableClampsSize(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "raw")
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	content := []byte("0123456789")
	if _, err := f.Write(content); err != nil {
		t.Fatal(err)
	}
	if _, err := f.Seek(0, 0); err != nil {
		t.Fatal(err)
	}

	src := NewRawSource(int(f.Fd()))
	template := Packet{Content: Binary, Size: 1024} // larger than the file
	if !src.Next(template) {
		t.Fatal("Next should succeed on a non-empty seekable raw source")
	}
	if src.Packet().Size != uint32(len(content)) {
		t.Errorf("clamped size = %d, want %d", src.Packet().Size, len(content))
	}

	got := make([]byte, len(content))
	if n := src.Recv(got); n != uint32(len(content)) {
		t.Fatalf("Recv returned %d, want %d", n, len(content))
	}
	if string(got) != string(content) {
		t.Errorf("got %q, want %q", got, content)
	}

	if src.Next(template) {
		t.Error("Next should report no more bytes at end of seekable raw file")
	}
}

func TestRawFramedDuality(t *testing.T) {
	payload := []byte{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}

	framedR, framedW, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	defer framedR.Close()

	// Wrap: synthesize a header around the raw payload.
	go func() {
		sink := NewSink(int(framedW.Fd()))
		sink.Send(Packet{ID: 7, Content: Binary, Size: uint32(len(payload))}, payload)
		framedW.Close()
	}()

	rawR, rawW, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	defer rawR.Close()

	// Unwrap: strip the header back off.
	go func() {
		src := NewSource(int(framedR.Fd()))
		raw := NewRawSink(int(rawW.Fd()))
		for src.Next() {
			src.Pass(raw)
		}
		rawW.Close()
	}()

	got := make([]byte, 0, len(payload))
	buf := make([]byte, 16)
	for {
		n, err := rawR.Read(buf)
		if n > 0 {
			got = append(got, buf[:n]...)
		}
		if err != nil {
			break
		}
	}
	if string(got) != string(payload) {
		t.Errorf("unwrap(wrap(B)) = % x, want % x", got, payload)
	}
}

func TestSourceCopySeekableLeavesOffsetUnchanged(t *testing.T) {
	dir := t.TempDir()

	in, err := os.CreateTemp(dir, "in")
	if err != nil {
		t.Fatal(err)
	}
	defer in.Close()

	body := []byte("seekable copy body")
	pkt := Packet{ID: 2, Content: String, Size: uint32(len(body))}
	hdr := pkt.marshal()
	if _, err := in.Write(hdr[:]); err != nil {
		t.Fatal(err)
	}
	if _, err := in.Write(body); err != nil {
		t.Fatal(err)
	}
	if _, err := in.Seek(0, 0); err != nil {
		t.Fatal(err)
	}

	out, err := os.CreateTemp(dir, "out")
	if err != nil {
		t.Fatal(err)
	}
	defer out.Close()

	src := NewSource(int(in.Fd()))
	sink := NewSink(int(out.Fd()))

	if !src.Next() {
		t.Fatal("Next should succeed")
	}
	src.Copy(sink)

	// The source's position is unchanged: Recv still sees the full body.
	got := make([]byte, len(body))
	if n := src.Recv(got); n != uint32(len(body)) {
		t.Fatalf("Recv after Copy returned %d, want %d", n, len(body))
	}
	if string(got) != string(body) {
		t.Errorf("Recv after Copy = %q, want %q", got, body)
	}

	// The duplicate on the sink is a complete framed packet.
	if _, err := out.Seek(0, 0); err != nil {
		t.Fatal(err)
	}
	dup := NewSource(int(out.Fd()))
	if !dup.Next() {
		t.Fatal("duplicate Next should succeed")
	}
	if dup.Packet() != pkt {
		t.Errorf("duplicate header %+v, want %+v", dup.Packet(), pkt)
	}
	dupBody := make([]byte, len(body))
	if n := dup.Recv(dupBody); n != uint32(len(body)) {
		t.Fatalf("duplicate Recv returned %d, want %d", n, len(body))
	}
	if string(dupBody) != string(body) {
		t.Errorf("duplicate body %q, want %q", dupBody, body)
	}
}
