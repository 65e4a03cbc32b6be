// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package sdrpipe

import "testing"

func TestContentStringLowercase(t *testing.T) {
	cases := map[Content]string{
		Binary:          "binary",
		ComplexSignal:   "complex_signal",
		ComplexSpectrum: "complex_spectrum",
		SampleCount:     "sample_count",
	}
	for c, want := range cases {
		if got := c.String(); got != want {
			t.Errorf("Content(%d).String() = %q, want %q", c, got, want)
		}
	}
}

func TestContentByNameCaseInsensitive(t *testing.T) {
	for _, name := range []string{"SIGNAL", "Signal", "signal"} {
		c, ok := ContentByName(name)
		if !ok || c != Signal {
			t.Errorf("ContentByName(%q) = (%v, %v), want (Signal, true)", name, c, ok)
		}
	}
	if _, ok := ContentByName("nope"); ok {
		t.Error("ContentByName(\"nope\") should not match")
	}
}

func TestPacketMarshalRoundTrip(t *testing.T) {
	p := Packet{ID: 42, Content: ComplexSignal, Size: 1024, Duration: 100_000_000}
	got := unmarshalPacket(p.marshal())
	if got != p {
		t.Errorf("round-trip mismatch: got %+v, want %+v", got, p)
	}
}

func TestPacketMarshalLittleEndianOnWire(t *testing.T) {
	p := Packet{ID: 0x0102, Content: 0, Size: 0x01020304, Duration: 0}
	buf := p.marshal()
	if buf[0] != 0x02 || buf[1] != 0x01 {
		t.Errorf("id not little-endian on wire: %x", buf[0:2])
	}
	if buf[4] != 0x04 || buf[5] != 0x03 || buf[6] != 0x02 || buf[7] != 0x01 {
		t.Errorf("size not little-endian on wire: %x", buf[4:8])
	}
}

func TestCompatibleAndCount(t *testing.T) {
	p := Packet{Size: 16}
	if !Compatible[float32](p) {
		t.Error("16 bytes should be compatible with float32")
	}
	if Count[float32](p) != 4 {
		t.Errorf("Count[float32] = %d, want 4", Count[float32](p))
	}

	odd := Packet{Size: 6}
	if Compatible[complex64](odd) {
		t.Error("6 bytes should not be compatible with complex64 (8 bytes)")
	}
	if Count[complex64](odd) != 0 {
		t.Errorf("Count[complex64] on incompatible packet should be 0, got %d", Count[complex64](odd))
	}
}

func TestEmptyPacketRoundTrips(t *testing.T) {
	p := Packet{ID: 1, Content: Binary, Size: 0, Duration: 0}
	got := unmarshalPacket(p.marshal())
	if got != p {
		t.Errorf("empty packet round-trip mismatch: got %+v, want %+v", got, p)
	}
}
