// File: game/countdown.go
package game

import (
	"fmt"
	"time"
)

// CountdownState is the discrete state of a Countdown.
type CountdownState int

const (
	CountdownActive CountdownState = iota
	CountdownPaused
	CountdownCompleted
)

func (s CountdownState) String() string {
	switch s {
	case CountdownActive:
		return "active"
	case CountdownPaused:
		return "paused"
	case CountdownCompleted:
		return "completed"
	}
	return fmt.Sprintf("CountdownState(%d)", int(s))
}

// CountdownInput configures a countdown.
type CountdownInput struct {
	Total time.Duration
	Tick  time.Duration
}

// Validate rejects negative totals and non-positive ticks.
func (in CountdownInput) Validate() error {
	if in.Total < 0 {
		return fmt.Errorf("countdown total %s: %w", in.Total, ErrInvalidDuration)
	}
	if in.Tick <= 0 {
		return fmt.Errorf("countdown tick %s: %w", in.Tick, ErrInvalidTick)
	}
	return nil
}

// CountdownEvent is an input to Countdown.Handle.
type CountdownEvent interface{ countdownEvent() }

// StartCountdown begins ticking. It is only meaningful once.
type StartCountdown struct{}

// countdownStep is delivered by the ticker armed for generation Gen.
type countdownStep struct{ Gen uint64 }

// PauseCountdown suspends ticking. No-op unless active.
type PauseCountdown struct{}

// ResumeCountdown continues ticking from the held remaining time. No-op unless paused.
type ResumeCountdown struct{}

func (StartCountdown) countdownEvent()  {}
func (countdownStep) countdownEvent()   {}
func (PauseCountdown) countdownEvent()  {}
func (ResumeCountdown) countdownEvent() {}

// CountdownEffect is a side effect requested by Countdown.Handle.
type CountdownEffect interface{ countdownEffect() }

// StartTicking asks for a repeating ticker delivering countdownStep{Gen} every Every.
type StartTicking struct {
	Gen   uint64
	Every time.Duration
}

// StopTicking asks for the current ticker to be canceled.
type StopTicking struct{}

// EmitTick asks for a tick to be reported to the owner.
type EmitTick struct {
	Remaining time.Duration
	Done      bool
}

func (StartTicking) countdownEffect() {}
func (StopTicking) countdownEffect()  {}
func (EmitTick) countdownEffect()     {}

// Countdown is the pure countdown machine. Remaining never increases and the
// terminal tick {0, true} is produced exactly once.
type Countdown struct {
	State     CountdownState
	Remaining time.Duration
	Tick      time.Duration
	// Gen identifies the live ticker; steps from older tickers are ignored.
	Gen     uint64
	started bool
}

// NewCountdown validates in and returns an active countdown that has not started ticking.
func NewCountdown(in CountdownInput) (Countdown, error) {
	if err := in.Validate(); err != nil {
		return Countdown{}, err
	}
	return Countdown{State: CountdownActive, Remaining: in.Total, Tick: in.Tick}, nil
}

// Handle applies ev and returns the next countdown and the effects to run, in order.
func (c Countdown) Handle(ev CountdownEvent) (Countdown, []CountdownEffect) {
	if c.State == CountdownCompleted {
		return c, nil
	}

	switch e := ev.(type) {
	case StartCountdown:
		if c.started {
			return c, nil
		}
		c.started = true
		if c.Remaining <= 0 {
			c.Remaining = 0
			c.State = CountdownCompleted
			return c, []CountdownEffect{EmitTick{Remaining: 0, Done: true}}
		}
		if c.State == CountdownPaused {
			return c, nil
		}
		c.Gen++
		return c, []CountdownEffect{StartTicking{Gen: c.Gen, Every: c.Tick}}

	case countdownStep:
		if c.State != CountdownActive || e.Gen != c.Gen {
			return c, nil
		}
		c.Remaining -= c.Tick
		if c.Remaining <= 0 {
			c.Remaining = 0
			c.State = CountdownCompleted
			return c, []CountdownEffect{StopTicking{}, EmitTick{Remaining: 0, Done: true}}
		}
		return c, []CountdownEffect{EmitTick{Remaining: c.Remaining}}

	case PauseCountdown:
		if c.State != CountdownActive {
			return c, nil
		}
		c.State = CountdownPaused
		c.Gen++
		return c, []CountdownEffect{StopTicking{}}

	case ResumeCountdown:
		if c.State != CountdownPaused {
			return c, nil
		}
		c.State = CountdownActive
		if !c.started {
			return c, nil
		}
		c.Gen++
		return c, []CountdownEffect{StartTicking{Gen: c.Gen, Every: c.Tick}}
	}
	return c, nil
}
