package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// WaveType defines oscillator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// oscillator generates a raw wave for a fixed number of samples.
type oscillator struct {
	freq     float64
	phase    float64
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate
	rng      *rand.Rand
}

func newOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:     freq,
		duration: rate.N(duration),
		wave:     wave,
		rate:     rate,
		rng:      rand.New(rand.NewSource(int64(freq*1000) + int64(duration))),
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			if o.phase < 0.5 {
				val = 1.0
			} else {
				val = -1.0
			}
		case WaveSaw:
			val = 2.0 * (o.phase - 0.5)
		case WaveNoise:
			val = o.rng.Float64()*2 - 1
		}

		samples[i][0] = val
		samples[i][1] = val

		o.phase += o.freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope applies a linear attack and release to a stream.
type envelope struct {
	streamer       beep.Streamer
	position       int
	attackSamples  int
	releaseSamples int
	totalSamples   int
}

func newEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	return &envelope{
		streamer:       s,
		attackSamples:  rate.N(attack),
		releaseSamples: rate.N(release),
		totalSamples:   rate.N(duration),
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		if e.position >= e.totalSamples {
			return i, i > 0
		}

		vol := 1.0
		if e.attackSamples > 0 && e.position < e.attackSamples {
			vol = float64(e.position) / float64(e.attackSamples)
		}
		if e.releaseSamples > 0 && e.position >= e.totalSamples-e.releaseSamples {
			vol = math.Max(0, float64(e.totalSamples-e.position)/float64(e.releaseSamples))
		}

		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume wraps s with a linear gain. Zero gain is silent since log2(0) is -Inf.
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

func tone(freq float64, d, attack, release time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return newEnvelope(newOscillator(freq, d, wave, rate), d, attack, release, rate)
}

// catchSound is a rising two-note chime.
func catchSound(rate beep.SampleRate) beep.Streamer {
	return beep.Seq(
		tone(987.77, 60*time.Millisecond, 2*time.Millisecond, 20*time.Millisecond, WaveSquare, rate),
		tone(1318.51, 120*time.Millisecond, 2*time.Millisecond, 80*time.Millisecond, WaveSquare, rate),
	)
}

// splatSound is a short burst of noise over a low thud.
func splatSound(rate beep.SampleRate) beep.Streamer {
	d := 180 * time.Millisecond
	return beep.Mix(
		newVolume(tone(0, d, time.Millisecond, 150*time.Millisecond, WaveNoise, rate), 0.6),
		newVolume(tone(90, d, time.Millisecond, 120*time.Millisecond, WaveSine, rate), 0.8),
	)
}

// gameOverSound is a falling three-note phrase.
func gameOverSound(rate beep.SampleRate) beep.Streamer {
	note := func(freq float64) beep.Streamer {
		return tone(freq, 200*time.Millisecond, 5*time.Millisecond, 100*time.Millisecond, WaveSaw, rate)
	}
	return beep.Seq(note(523.25), note(392.00), note(261.63))
}

// countdownSound is a single short beep.
func countdownSound(rate beep.SampleRate) beep.Streamer {
	return tone(880, 90*time.Millisecond, 2*time.Millisecond, 40*time.Millisecond, WaveSine, rate)
}

// cue builds a fresh streamer for id, scaled by vol.
func cue(id SoundID, rate beep.SampleRate, vol float64) (beep.Streamer, error) {
	var s beep.Streamer
	switch id {
	case SoundCatch:
		s = catchSound(rate)
	case SoundSplat:
		s = splatSound(rate)
	case SoundGameOver:
		s = gameOverSound(rate)
	case SoundCountdown:
		s = countdownSound(rate)
	default:
		return nil, ErrUnknownSound
	}
	return newVolume(s, vol), nil
}
