// Package audio synthesizes the game's sound cues and plays them through a Player.
package audio

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
)

// SoundID names a sound cue.
type SoundID string

const (
	SoundCatch     SoundID = "catch"
	SoundSplat     SoundID = "splat"
	SoundGameOver  SoundID = "gameover"
	SoundCountdown SoundID = "countdown"
)

// Sounds lists every cue the synth knows about.
var Sounds = []SoundID{SoundCatch, SoundSplat, SoundGameOver, SoundCountdown}

// ErrUnknownSound is returned for a SoundID that has no cue.
var ErrUnknownSound = errors.New("audio: unknown sound")

// Player plays a sound cue. Debouncing is the caller's job.
type Player interface {
	Play(id SoundID) error
}

// ParseSoundID validates a sound name coming from outside, e.g. a URL.
func ParseSoundID(name string) (SoundID, error) {
	for _, id := range Sounds {
		if string(id) == name {
			return id, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownSound, name)
}

var logger = slog.Default()

// SetLogger replaces the package logger.
func SetLogger(l *slog.Logger) {
	if l != nil {
		logger = l
	}
}

// Recorder is a Player that only remembers what it was asked to play.
type Recorder struct {
	mu     sync.Mutex
	played []SoundID
	Err    error // Returned from every Play when set
}

func (r *Recorder) Play(id SoundID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.played = append(r.played, id)
	return r.Err
}

// Played returns a copy of the cues played so far.
func (r *Recorder) Played() []SoundID {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]SoundID, len(r.played))
	copy(out, r.played)
	return out
}

// Count returns how many times id was played.
func (r *Recorder) Count(id SoundID) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, p := range r.played {
		if p == id {
			n++
		}
	}
	return n
}
