// File: game/debounce_actor.go
package game

import (
	"time"

	"github.com/lguibr/eggchef/bollywood"
)

// DebounceInput configures a DebounceActor. Key is echoed in DebounceFired so
// a parent can tell several debouncers apart.
type DebounceInput struct {
	Key   string
	Delay time.Duration
}

// DebounceActor sends DebounceFired to its parent once Trigger has been quiet
// for the configured delay. It keeps running after firing.
type DebounceActor struct {
	key     string
	machine Debounce
	cancel  bollywood.Cancel
}

// NewDebounceProps validates in and returns props for a DebounceActor.
func NewDebounceProps(in DebounceInput) (*bollywood.Props, error) {
	machine, err := NewDebounce(in.Delay)
	if err != nil {
		return nil, err
	}
	return bollywood.NewProps(func() bollywood.Actor {
		return &DebounceActor{key: in.Key, machine: machine}
	}).WithName("debounce"), nil
}

func (a *DebounceActor) Receive(ctx bollywood.Context) {
	var effects []DebounceEffect
	switch m := ctx.Message().(type) {
	case Trigger:
		a.machine, effects = a.machine.Trigger(m.Payload)
	case debounceElapsed:
		a.machine, effects = a.machine.Elapsed(m.Gen)
	case bollywood.Stopping:
		a.disarm()
		return
	default:
		return
	}

	for _, eff := range effects {
		switch e := eff.(type) {
		case ArmDelay:
			a.disarm()
			a.cancel = ctx.After(e.Delay, debounceElapsed{Gen: e.Gen})
		case Fire:
			a.cancel = nil
			ctx.SendParent(DebounceFired{Key: a.key, Payload: e.Payload})
		}
	}
}

func (a *DebounceActor) disarm() {
	if a.cancel != nil {
		a.cancel()
		a.cancel = nil
	}
}
