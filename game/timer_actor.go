// File: game/timer_actor.go
package game

import (
	"fmt"
	"time"

	"github.com/lguibr/eggchef/bollywood"
)

// TimerInput configures a TimerActor.
type TimerInput struct {
	ID       string
	Duration time.Duration
}

// TimerActor sends TimerDone to its parent once, after Duration, then stops.
// Stopping it earlier cancels the timer and nothing is sent.
type TimerActor struct {
	in     TimerInput
	fired  bool
	cancel bollywood.Cancel
}

// NewTimerProps validates in and returns props for a TimerActor.
func NewTimerProps(in TimerInput) (*bollywood.Props, error) {
	if in.Duration < 0 {
		return nil, fmt.Errorf("timer %q duration %s: %w", in.ID, in.Duration, ErrInvalidDuration)
	}
	return bollywood.NewProps(func() bollywood.Actor {
		return &TimerActor{in: in}
	}).WithName("timer"), nil
}

func (a *TimerActor) Receive(ctx bollywood.Context) {
	switch ctx.Message().(type) {
	case bollywood.Started:
		if a.in.Duration == 0 {
			a.fire(ctx)
			return
		}
		a.cancel = ctx.After(a.in.Duration, timerFired{})

	case timerFired:
		a.fire(ctx)

	case bollywood.Stopping:
		if a.cancel != nil {
			a.cancel()
		}
	}
}

func (a *TimerActor) fire(ctx bollywood.Context) {
	if a.fired {
		return
	}
	a.fired = true
	ctx.SendParent(TimerDone{ID: a.in.ID})
	ctx.Stop(ctx.Self())
}
