// File: game/sound.go
package game

import (
	"time"

	"github.com/lguibr/eggchef/audio"
)

// SoundEffect is a side effect requested by SoundGate.
type SoundEffect interface{ soundEffect() }

// PlayCue asks for id to be played now.
type PlayCue struct{ ID audio.SoundID }

// ArmQuiet asks for the quiet-window delay for Gen to be (re)armed.
type ArmQuiet struct {
	Gen   uint64
	Delay time.Duration
}

// ReleaseAll reports that the quiet window passed and every cue may play again.
type ReleaseAll struct{}

func (PlayCue) soundEffect()    {}
func (ArmQuiet) soundEffect()   {}
func (ReleaseAll) soundEffect() {}

// SoundGate suppresses repeats of a cue until no cue has been requested for
// the debounce window. The suppressed set belongs to one gate only.
type SoundGate struct {
	debounce   Debounce
	suppressed map[audio.SoundID]struct{}
}

// NewSoundGate creates a gate with the given quiet window (zero means the default).
func NewSoundGate(delay time.Duration) (SoundGate, error) {
	d, err := NewDebounce(delay)
	if err != nil {
		return SoundGate{}, err
	}
	return SoundGate{debounce: d, suppressed: map[audio.SoundID]struct{}{}}, nil
}

// Suppressed reports whether id would currently be swallowed.
func (g SoundGate) Suppressed(id audio.SoundID) bool {
	_, ok := g.suppressed[id]
	return ok
}

// SuppressedCount returns the size of the suppressed set.
func (g SoundGate) SuppressedCount() int {
	return len(g.suppressed)
}

// Play handles a request for id. Every request restarts the quiet window.
func (g SoundGate) Play(id audio.SoundID) (SoundGate, []SoundEffect) {
	var effects []SoundEffect
	if !g.Suppressed(id) {
		effects = append(effects, PlayCue{ID: id})
		next := make(map[audio.SoundID]struct{}, len(g.suppressed)+1)
		for k := range g.suppressed {
			next[k] = struct{}{}
		}
		next[id] = struct{}{}
		g.suppressed = next
	}

	var debounceEffects []DebounceEffect
	g.debounce, debounceEffects = g.debounce.Trigger(id)
	for _, eff := range debounceEffects {
		if arm, ok := eff.(ArmDelay); ok {
			effects = append(effects, ArmQuiet{Gen: arm.Gen, Delay: arm.Delay})
		}
	}
	return g, effects
}

// Elapsed clears the suppressed set when gen is the latest quiet window.
func (g SoundGate) Elapsed(gen uint64) (SoundGate, []SoundEffect) {
	var debounceEffects []DebounceEffect
	g.debounce, debounceEffects = g.debounce.Elapsed(gen)
	if len(debounceEffects) == 0 {
		return g, nil
	}
	g.suppressed = map[audio.SoundID]struct{}{}
	return g, []SoundEffect{ReleaseAll{}}
}
