// File: game/countdown_timer_actor.go
package game

import (
	"time"

	"github.com/lguibr/eggchef/bollywood"
)

// CountdownTimerActor owns a CountdownActor and folds its ticks into
// {Remaining, Done}. It forwards CountdownTimerTick for every tick and
// CountdownTimerFinished once, then stops.
type CountdownTimerActor struct {
	input     CountdownInput
	child     *bollywood.PID
	remaining time.Duration
	done      bool
}

// NewCountdownTimerProps validates in and returns props for a CountdownTimerActor.
func NewCountdownTimerProps(in CountdownInput) (*bollywood.Props, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	return bollywood.NewProps(func() bollywood.Actor {
		return &CountdownTimerActor{input: in, remaining: in.Total}
	}).WithName("countdown-timer"), nil
}

func (a *CountdownTimerActor) Receive(ctx bollywood.Context) {
	switch m := ctx.Message().(type) {
	case bollywood.Started:
		props, err := NewCountdownProps(a.input)
		if err != nil {
			// Input was validated when the props were built.
			ctx.Logger().Error("CountdownTimerActor: invalid countdown", "error", err)
			ctx.Stop(ctx.Self())
			return
		}
		a.child = ctx.Spawn(props)

	case CountdownTick:
		if a.done || !ctx.Sender().Equal(a.child) {
			return
		}
		a.remaining = m.Remaining
		a.done = m.Done
		ctx.SendParent(CountdownTimerTick{Remaining: m.Remaining})
		if m.Done {
			ctx.SendParent(CountdownTimerFinished{})
			ctx.Stop(ctx.Self())
		}

	case PauseCountdown, ResumeCountdown:
		if !a.done && a.child != nil {
			ctx.Send(a.child, m)
		}

	case bollywood.Terminated:
		if m.Who.Equal(a.child) && !a.done {
			ctx.Logger().Warn("CountdownTimerActor: countdown stopped before finishing")
		}
	}
}
