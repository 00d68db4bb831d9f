// File: game/game_timer_actor.go
package game

import (
	"github.com/lguibr/eggchef/bollywood"
)

// GameTimerActor runs a GameTimer with one owned delay per step.
// It accepts PauseGameTimer and ResumeGameTimer and stops after GameTimerExpired.
type GameTimerActor struct {
	machine GameTimer
	cancel  bollywood.Cancel
}

// NewGameTimerProps validates in and returns props for a GameTimerActor.
func NewGameTimerProps(in GameTimerInput) (*bollywood.Props, error) {
	machine, err := NewGameTimer(in)
	if err != nil {
		return nil, err
	}
	return bollywood.NewProps(func() bollywood.Actor {
		return &GameTimerActor{machine: machine}
	}).WithName("game-timer"), nil
}

func (a *GameTimerActor) Receive(ctx bollywood.Context) {
	switch m := ctx.Message().(type) {
	case bollywood.Started:
		a.handle(ctx, StartGameTimer{})
	case gameTimerElapsed:
		a.handle(ctx, m)
	case PauseGameTimer:
		a.handle(ctx, m)
	case ResumeGameTimer:
		a.handle(ctx, m)
	case bollywood.Stopping:
		a.cancelStep()
	}
}

func (a *GameTimerActor) handle(ctx bollywood.Context, ev GameTimerEvent) {
	var effects []GameTimerEffect
	a.machine, effects = a.machine.Handle(ev)

	for _, eff := range effects {
		switch e := eff.(type) {
		case ScheduleStep:
			a.cancelStep()
			a.cancel = ctx.After(e.Delay, gameTimerElapsed{Gen: e.Gen})
		case CancelStep:
			a.cancelStep()
		case EmitGameTick:
			ctx.SendParent(GameTimerTick{Remaining: e.Remaining})
		case EmitExpired:
			ctx.SendParent(GameTimerExpired{})
		}
	}

	if a.machine.State == GameTimerFinished {
		ctx.Logger().Debug("GameTimerActor: expired")
		ctx.Stop(ctx.Self())
	}
}

func (a *GameTimerActor) cancelStep() {
	if a.cancel != nil {
		a.cancel()
		a.cancel = nil
	}
}
