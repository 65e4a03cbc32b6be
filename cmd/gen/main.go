// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Command gen emits a real-valued waveform as Signal packets on stdout.
// When unit=stream, freq names the id of a control stream read on
// stdin instead of a literal frequency: a detached goroutine reads that
// stream and republishes its latest value through an atomic slot with
// last-value-wins semantics, so the oscillator retunes live without the
// sample loop ever blocking on the control input.
package main

import (
	"math"
	"sync/atomic"

	"code.hybscloud.com/sdrpipe"
	"code.hybscloud.com/sdrpipe/internal/stage"
	"code.hybscloud.com/sdrpipe/opt"
	"code.hybscloud.com/sdrpipe/sdropt"
)

type waveform int

const (
	sine waveform = iota
	square
	triangle
	sawtooth
)

var waveformTable = []opt.EnumEntry[waveform]{
	{Name: "sine", Value: sine},
	{Name: "square", Value: square},
	{Name: "triangle", Value: triangle},
	{Name: "sawtooth", Value: sawtooth},
}

// blockSamples is the element count of each emitted packet. gen exposes
// no element_count option of its own; this is the same flat default wrap
// falls back to when it is given no sample rate.
const blockSamples = 4096

func main() {
	h := stage.New("gen")

	freq := opt.New[float64]("freq", "FREQ", true, 0)
	sampleRate := opt.New[float64]("sample_rate", "HERTZ", true, 0)
	unit := sdropt.NewFreqUnitOption("unit", false, sdropt.Hertz)
	wave := opt.NewEnum("waveform", "", false, sine, waveformTable)
	amp := opt.New[float64]("amp", "AMPLITUDE", false, 1.0)
	phi := opt.New[float64]("phi", "PHASE", false, 0)
	stream := opt.New[uint64]("stream", "ID", false, 0)

	keyword := []opt.Base{freq, sampleRate, unit, wave, amp, phi, stream}
	h.ParseOrExit(nil, keyword)

	if !freq.IsSet() || !sampleRate.IsSet() {
		h.FailConfig("options 'freq' and 'sample_rate' are required", nil, keyword)
	}
	if sampleRate.Get() <= 0 {
		h.FailConfig("sample_rate must be positive", nil, keyword)
	}
	if !sdropt.ValidStreamID(stream.Get()) {
		h.FailConfig("invalid stream id", nil, keyword)
	}

	var c *controller
	if unit.Get() == sdropt.FreqStream {
		if !sdropt.ValidStreamIDFloat(freq.Get()) {
			h.FailConfig("invalid control stream id", nil, keyword)
		}
		c = newController(0)
		go c.run(h, uint16(freq.Get()), sampleRate.Get())
	} else {
		c = newController(sdropt.ConvertFreq(unit.Get(), freq.Get(), sampleRate.Get()))
	}

	sink := sdrpipe.NewSink(h.Stdout())
	pktDuration := uint64(blockSamples) * 1_000_000_000 / uint64(sampleRate.Get())

	phase := phi.Get() / (2 * math.Pi)
	samples := make([]float32, blockSamples)
	cyc := c.cyclesPerSample()

	for {
		if c.take() {
			if c.ended() {
				return
			}
			cyc = c.cyclesPerSample()
		}

		a := amp.Get()
		for i := range samples {
			samples[i] = float32(a * evaluate(wave.Get(), phase))
			phase += cyc
			if phase >= 1 || phase < 0 {
				phase -= math.Floor(phase)
			}
		}

		pkt := sdrpipe.Packet{ID: uint16(stream.Get()), Content: sdrpipe.Signal, Duration: pktDuration}
		if !sdrpipe.SendT(sink, pkt, samples) {
			return
		}
	}
}

// evaluate samples w at the given phase, a fraction of a cycle in [0, 1).
func evaluate(w waveform, phase float64) float64 {
	switch w {
	case square:
		if phase < 0.5 {
			return 1
		}
		return -1
	case triangle:
		return 4*math.Abs(phase-math.Floor(phase+0.5)) - 1
	case sawtooth:
		return 2 * (phase - math.Floor(phase+0.5))
	default: // sine
		return math.Sin(2 * math.Pi * phase)
	}
}

// controller holds the oscillator's current frequency, expressed in
// cycles per sample, as an atomically published value, plus an updated
// flag the main loop polls between blocks and whether the control stream
// feeding it (when unit=stream) has ended. There is no queue: each new
// control value simply overwrites the old one, so the generator always
// uses the most recent update it has observed.
type controller struct {
	bits    atomic.Uint64
	updated atomic.Bool
	end     atomic.Bool
}

func newController(initial float64) *controller {
	c := &controller{}
	c.bits.Store(math.Float64bits(initial))
	return c
}

func (c *controller) cyclesPerSample() float64 {
	return math.Float64frombits(c.bits.Load())
}

func (c *controller) set(cyclesPerSample float64) {
	c.bits.Store(math.Float64bits(cyclesPerSample))
	c.updated.Store(true)
}

// take reports whether a new value has been published since the last
// call, clearing the flag.
func (c *controller) take() bool { return c.updated.CompareAndSwap(true, false) }

func (c *controller) ended() bool { return c.end.Load() }

// run reads the framed control stream on stdin, keeping only
// float-sample packets tagged with controlID whose content tag maps to a
// frequency unit, and republishes each one's value as a cycles-per-sample
// frequency. It sets end once the control stream is exhausted.
func (c *controller) run(h *stage.Harness, controlID uint16, sampleRate float64) {
	defer func() {
		c.end.Store(true)
		c.updated.Store(true)
	}()

	src := sdrpipe.NewSource(h.Stdin())
	for src.Next() {
		pkt := src.Packet()
		unit := sdropt.ContentToFreqUnit(pkt.Content)
		if pkt.ID != controlID || unit == sdropt.FreqStream || sdrpipe.Count[float32](pkt) < 1 {
			src.Drop()
			continue
		}
		var buf [4]byte
		src.Recv(buf[:])
		src.Drop()

		bits := uint32(buf[0]) | uint32(buf[1])<<8 | uint32(buf[2])<<16 | uint32(buf[3])<<24
		value := float64(math.Float32frombits(bits))

		c.set(sdropt.ConvertFreq(unit, value, sampleRate))
	}
}
