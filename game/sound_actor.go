// File: game/sound_actor.go
package game

import (
	"fmt"
	"time"

	"github.com/lguibr/eggchef/audio"
	"github.com/lguibr/eggchef/bollywood"
)

// SoundInput configures a SoundActor.
type SoundInput struct {
	Player audio.Player
	Delay  time.Duration // Quiet window; zero means DefaultDebounceDelay
}

// SoundActor plays cues through a Player, swallowing repeats of a cue until
// no cue has been requested for the quiet window.
type SoundActor struct {
	player audio.Player
	gate   SoundGate
	cancel bollywood.Cancel
}

// NewSoundProps validates in and returns props for a SoundActor.
func NewSoundProps(in SoundInput) (*bollywood.Props, error) {
	if in.Player == nil {
		return nil, fmt.Errorf("sound actor: %w", ErrNoPlayer)
	}
	gate, err := NewSoundGate(in.Delay)
	if err != nil {
		return nil, err
	}
	return bollywood.NewProps(func() bollywood.Actor {
		return &SoundActor{player: in.Player, gate: gate}
	}).WithName("sound"), nil
}

func (a *SoundActor) Receive(ctx bollywood.Context) {
	var effects []SoundEffect
	switch m := ctx.Message().(type) {
	case PlaySound:
		a.gate, effects = a.gate.Play(m.ID)
	case soundQuiet:
		a.gate, effects = a.gate.Elapsed(m.Gen)
	case bollywood.Stopping:
		if a.cancel != nil {
			a.cancel()
		}
		return
	default:
		return
	}

	for _, eff := range effects {
		switch e := eff.(type) {
		case PlayCue:
			if err := a.player.Play(e.ID); err != nil {
				ctx.Logger().Warn("SoundActor: player failed", "sound", string(e.ID), "error", err)
				continue
			}
			ctx.SendParent(SoundPlayed{ID: e.ID})
		case ArmQuiet:
			if a.cancel != nil {
				a.cancel()
			}
			a.cancel = ctx.After(e.Delay, soundQuiet{Gen: e.Gen})
		case ReleaseAll:
			a.cancel = nil
		}
	}
}
