package audio

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/wav"
)

// Synth is a headless Player: played cues are mixed into an internal
// beep.Mixer that is drained by Advance instead of a sound card.
// The same cues can be rendered to WAV for browsers to play.
type Synth struct {
	format beep.Format
	volume float64

	mu     sync.Mutex
	mixer  *beep.Mixer
	plays  map[SoundID]int
	peak   float64
	wavs   map[SoundID][]byte
	buffer [][2]float64
}

// NewSynth creates a synth with the given sample rate and master volume (0..1).
func NewSynth(sampleRate int, volume float64) (*Synth, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("audio: invalid sample rate %d", sampleRate)
	}
	return &Synth{
		format: beep.Format{SampleRate: beep.SampleRate(sampleRate), NumChannels: 2, Precision: 2},
		volume: volume,
		mixer:  &beep.Mixer{},
		plays:  make(map[SoundID]int),
		wavs:   make(map[SoundID][]byte),
		buffer: make([][2]float64, 512),
	}, nil
}

// Play queues id on the mixer.
func (s *Synth) Play(id SoundID) error {
	st, err := cue(id, s.format.SampleRate, s.volume)
	if err != nil {
		return fmt.Errorf("%w: %q", err, id)
	}
	s.mu.Lock()
	s.mixer.Add(st)
	s.plays[id]++
	s.mu.Unlock()
	logger.Debug("Synth: playing cue", "sound", string(id))
	return nil
}

// Advance streams d worth of mixed audio and returns the peak amplitude heard.
func (s *Synth) Advance(d time.Duration) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	peak := 0.0
	for n := s.format.SampleRate.N(d); n > 0; {
		chunk := s.buffer
		if n < len(chunk) {
			chunk = chunk[:n]
		}
		got, _ := s.mixer.Stream(chunk)
		for _, frame := range chunk[:got] {
			for _, v := range frame {
				if v < 0 {
					v = -v
				}
				if v > peak {
					peak = v
				}
			}
		}
		n -= len(chunk)
	}
	if peak > s.peak {
		s.peak = peak
	}
	return peak
}

// Active returns the number of cues still playing.
func (s *Synth) Active() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mixer.Len()
}

// Plays returns how many times id has been played.
func (s *Synth) Plays(id SoundID) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.plays[id]
}

// WAV returns id rendered as a 16-bit stereo WAV file. Results are cached.
func (s *Synth) WAV(id SoundID) ([]byte, error) {
	s.mu.Lock()
	if data, ok := s.wavs[id]; ok {
		s.mu.Unlock()
		return data, nil
	}
	s.mu.Unlock()

	st, err := cue(id, s.format.SampleRate, s.volume)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", err, id)
	}
	var out writeSeeker
	if err := wav.Encode(&out, st, s.format); err != nil {
		return nil, fmt.Errorf("audio: encode %s: %w", id, err)
	}

	s.mu.Lock()
	s.wavs[id] = out.Bytes()
	s.mu.Unlock()
	return out.Bytes(), nil
}

// WriteWAV writes id as a WAV file to w.
func (s *Synth) WriteWAV(w io.Writer, id SoundID) error {
	data, err := s.WAV(id)
	if err != nil {
		return err
	}
	_, err = io.Copy(w, bytes.NewReader(data))
	return err
}

// writeSeeker is an in-memory io.WriteSeeker; wav.Encode seeks back to patch the header.
type writeSeeker struct {
	buf []byte
	pos int
}

func (w *writeSeeker) Write(p []byte) (int, error) {
	if end := w.pos + len(p); end > len(w.buf) {
		w.buf = append(w.buf, make([]byte, end-len(w.buf))...)
	}
	n := copy(w.buf[w.pos:], p)
	w.pos += n
	return n, nil
}

func (w *writeSeeker) Seek(offset int64, whence int) (int64, error) {
	var abs int64
	switch whence {
	case io.SeekStart:
		abs = offset
	case io.SeekCurrent:
		abs = int64(w.pos) + offset
	case io.SeekEnd:
		abs = int64(len(w.buf)) + offset
	default:
		return 0, errors.New("audio: invalid whence")
	}
	if abs < 0 {
		return 0, errors.New("audio: negative position")
	}
	w.pos = int(abs)
	return abs, nil
}

func (w *writeSeeker) Bytes() []byte { return w.buf }
