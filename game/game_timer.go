// File: game/game_timer.go
package game

import (
	"fmt"
	"time"
)

// GameTimerState is the discrete state of a GameTimer.
type GameTimerState int

const (
	GameTimerRunning GameTimerState = iota
	GameTimerPaused
	GameTimerFinished
)

func (s GameTimerState) String() string {
	switch s {
	case GameTimerRunning:
		return "running"
	case GameTimerPaused:
		return "paused"
	case GameTimerFinished:
		return "finished"
	}
	return fmt.Sprintf("GameTimerState(%d)", int(s))
}

// GameTimerInput configures a game timer.
type GameTimerInput struct {
	Duration time.Duration
	Tick     time.Duration
}

func (in GameTimerInput) Validate() error {
	if in.Duration < 0 {
		return fmt.Errorf("game timer duration %s: %w", in.Duration, ErrInvalidDuration)
	}
	if in.Tick <= 0 {
		return fmt.Errorf("game timer tick %s: %w", in.Tick, ErrInvalidTick)
	}
	return nil
}

// GameTimerEvent is an input to GameTimer.Handle.
type GameTimerEvent interface{ gameTimerEvent() }

type StartGameTimer struct{}

// gameTimerElapsed is delivered when the delay armed for Gen runs out.
type gameTimerElapsed struct{ Gen uint64 }

type PauseGameTimer struct{}

type ResumeGameTimer struct{}

func (StartGameTimer) gameTimerEvent()   {}
func (gameTimerElapsed) gameTimerEvent() {}
func (PauseGameTimer) gameTimerEvent()   {}
func (ResumeGameTimer) gameTimerEvent()  {}

// GameTimerEffect is a side effect requested by GameTimer.Handle.
type GameTimerEffect interface{ gameTimerEffect() }

// ScheduleStep asks for gameTimerElapsed{Gen} to be delivered once after Delay.
type ScheduleStep struct {
	Gen   uint64
	Delay time.Duration
}

// CancelStep asks for the pending delay to be dropped.
type CancelStep struct{}

// EmitGameTick reports the remaining time after a step.
type EmitGameTick struct{ Remaining time.Duration }

// EmitExpired reports that the timer reached zero.
type EmitExpired struct{}

func (ScheduleStep) gameTimerEffect() {}
func (CancelStep) gameTimerEffect()   {}
func (EmitGameTick) gameTimerEffect() {}
func (EmitExpired) gameTimerEffect()  {}

// GameTimer counts a round down with one self-scheduled delay per step.
// A pause drops the partial step; resuming schedules a full one.
type GameTimer struct {
	State     GameTimerState
	Remaining time.Duration
	Tick      time.Duration
	Gen       uint64
	started   bool
}

func NewGameTimer(in GameTimerInput) (GameTimer, error) {
	if err := in.Validate(); err != nil {
		return GameTimer{}, err
	}
	return GameTimer{State: GameTimerRunning, Remaining: in.Duration, Tick: in.Tick}, nil
}

func (g GameTimer) step() time.Duration {
	if g.Remaining < g.Tick {
		return g.Remaining
	}
	return g.Tick
}

func (g GameTimer) schedule() (GameTimer, GameTimerEffect) {
	g.Gen++
	return g, ScheduleStep{Gen: g.Gen, Delay: g.step()}
}

// Handle applies ev and returns the next timer and the effects to run, in order.
func (g GameTimer) Handle(ev GameTimerEvent) (GameTimer, []GameTimerEffect) {
	if g.State == GameTimerFinished {
		return g, nil
	}

	switch e := ev.(type) {
	case StartGameTimer:
		if g.started {
			return g, nil
		}
		g.started = true
		if g.Remaining <= 0 {
			g.Remaining = 0
			g.State = GameTimerFinished
			return g, []GameTimerEffect{EmitExpired{}}
		}
		if g.State == GameTimerPaused {
			return g, nil
		}
		var eff GameTimerEffect
		g, eff = g.schedule()
		return g, []GameTimerEffect{eff}

	case gameTimerElapsed:
		if g.State != GameTimerRunning || e.Gen != g.Gen {
			return g, nil
		}
		g.Remaining -= g.step()
		effects := []GameTimerEffect{EmitGameTick{Remaining: g.Remaining}}
		if g.Remaining <= 0 {
			g.Remaining = 0
			g.State = GameTimerFinished
			return g, append(effects, EmitExpired{})
		}
		var eff GameTimerEffect
		g, eff = g.schedule()
		return g, append(effects, eff)

	case PauseGameTimer:
		if g.State != GameTimerRunning {
			return g, nil
		}
		g.State = GameTimerPaused
		g.Gen++
		return g, []GameTimerEffect{CancelStep{}}

	case ResumeGameTimer:
		if g.State != GameTimerPaused {
			return g, nil
		}
		g.State = GameTimerRunning
		if !g.started {
			return g, nil
		}
		var eff GameTimerEffect
		g, eff = g.schedule()
		return g, []GameTimerEffect{eff}
	}
	return g, nil
}
