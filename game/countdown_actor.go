// File: game/countdown_actor.go
package game

import (
	"github.com/lguibr/eggchef/bollywood"
)

// CountdownActor runs a Countdown and reports every tick to its parent.
// It accepts PauseCountdown and ResumeCountdown and stops after the final tick.
type CountdownActor struct {
	machine Countdown
	cancel  bollywood.Cancel
}

// NewCountdownProps validates in and returns props for a CountdownActor.
func NewCountdownProps(in CountdownInput) (*bollywood.Props, error) {
	machine, err := NewCountdown(in)
	if err != nil {
		return nil, err
	}
	return bollywood.NewProps(func() bollywood.Actor {
		return &CountdownActor{machine: machine}
	}).WithName("countdown"), nil
}

func (a *CountdownActor) Receive(ctx bollywood.Context) {
	switch m := ctx.Message().(type) {
	case bollywood.Started:
		a.handle(ctx, StartCountdown{})
	case countdownStep:
		a.handle(ctx, m)
	case PauseCountdown:
		a.handle(ctx, m)
	case ResumeCountdown:
		a.handle(ctx, m)
	case bollywood.Stopping:
		a.stopTicking()
	}
}

func (a *CountdownActor) handle(ctx bollywood.Context, ev CountdownEvent) {
	var effects []CountdownEffect
	a.machine, effects = a.machine.Handle(ev)

	for _, eff := range effects {
		switch e := eff.(type) {
		case StartTicking:
			a.stopTicking()
			a.cancel = ctx.Every(e.Every, countdownStep{Gen: e.Gen})
		case StopTicking:
			a.stopTicking()
		case EmitTick:
			ctx.SendParent(CountdownTick{Remaining: e.Remaining, Done: e.Done})
		}
	}

	if a.machine.State == CountdownCompleted {
		ctx.Logger().Debug("CountdownActor: completed")
		ctx.Stop(ctx.Self())
	}
}

func (a *CountdownActor) stopTicking() {
	if a.cancel != nil {
		a.cancel()
		a.cancel = nil
	}
}
