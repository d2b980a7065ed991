// Package beep plays short feedback tones.
package beep

import (
	"math"
	"sync/atomic"
)

var disabled atomic.Bool

// Disable silences all playback. Tests call it before exercising code that
// would otherwise beep.
func Disable() { disabled.Store(true) }

func Enabled() bool { return !disabled.Load() }

type Sound int

const (
	Show Sound = iota
	Error
)

func (s Sound) String() string {
	if s == Error {
		return "error"
	}
	return "show"
}

const sampleRate = 44100

// tone is a decaying sine, repeated with silent gaps between repeats.
type tone struct {
	freq, volume, decay float64
	dur, gap            float64 // seconds
	repeat              int
}

var tones = map[Sound]tone{
	Show:  {freq: 1200, volume: 0.5, decay: 60, dur: 0.03, repeat: 1},
	Error: {freq: 350, volume: 0.6, decay: 30, dur: 0.08, gap: 0.05, repeat: 2},
}

// render produces mono 16-bit samples for s, padded with silence to at
// least minDur seconds.
func render(s Sound, minDur float64) []int16 {
	t, ok := tones[s]
	if !ok {
		return nil
	}
	one := make([]int16, int(sampleRate*t.dur))
	for i := range one {
		x := float64(i) / sampleRate
		one[i] = int16(math.Sin(2*math.Pi*t.freq*x) * 32767 * t.volume * math.Exp(-x*t.decay))
	}
	gap := int(sampleRate * t.gap)

	out := make([]int16, 0, t.repeat*len(one)+(t.repeat-1)*gap)
	for i := 0; i < t.repeat; i++ {
		if i > 0 {
			out = append(out, make([]int16, gap)...)
		}
		out = append(out, one...)
	}
	if pad := int(sampleRate*minDur) - len(out); pad > 0 {
		out = append(out, make([]int16, pad)...)
	}
	return out
}

// Play starts s in the background. It never blocks on the audio device.
func Play(s Sound) {
	if disabled.Load() {
		return
	}
	play(s)
}

func PlayShow()  { Play(Show) }
func PlayError() { Play(Error) }
