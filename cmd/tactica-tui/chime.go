package main

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

const sampleRate = beep.SampleRate(44100)

// chime 回合开始的提示音；音频不可用时静默
type chime struct {
	mixer *beep.Mixer
	ready bool
}

func newChime(enabled bool) *chime {
	c := &chime{mixer: &beep.Mixer{}}
	if !enabled {
		return c
	}
	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return c
	}
	speaker.Play(c.mixer)
	c.ready = true
	return c
}

// Play 120ms 的衰减正弦
func (c *chime) Play(freq float64) {
	if !c.ready {
		return
	}
	speaker.Lock()
	c.mixer.Add(beep.Take(sampleRate.N(120*time.Millisecond), &toneGenerator{sr: sampleRate, freq: freq}))
	speaker.Unlock()
}

func (c *chime) Close() {
	if c.ready {
		speaker.Close()
	}
}

// toneGenerator 正弦波，指数衰减包络
type toneGenerator struct {
	sr   beep.SampleRate
	freq float64
	pos  int
}

func (g *toneGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)
		s := 0.25 * math.Sin(2*math.Pi*g.freq*t) * math.Exp(-t*18)
		samples[i][0] = s
		samples[i][1] = s
		g.pos++
	}
	return len(samples), true
}

func (g *toneGenerator) Err() error { return nil }
