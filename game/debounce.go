// File: game/debounce.go
package game

import (
	"fmt"
	"time"
)

// DefaultDebounceDelay is the quiet window used when none is configured.
const DefaultDebounceDelay = time.Second

// DebounceState is the discrete state of a Debounce.
type DebounceState int

const (
	DebounceIdle DebounceState = iota
	DebounceWaiting
)

func (s DebounceState) String() string {
	if s == DebounceWaiting {
		return "waiting"
	}
	return "idle"
}

// DebounceEffect is a side effect requested by Debounce.
type DebounceEffect interface{ debounceEffect() }

// ArmDelay asks for debounceElapsed{Gen} after Delay, replacing any earlier delay.
type ArmDelay struct {
	Gen   uint64
	Delay time.Duration
}

// Fire is the debounced action, carrying the payload of the last trigger.
type Fire struct{ Payload interface{} }

func (ArmDelay) debounceEffect() {}
func (Fire) debounceEffect()     {}

// debounceElapsed is delivered when the delay armed for Gen runs out.
type debounceElapsed struct{ Gen uint64 }

// Debounce fires once the trigger has been quiet for Delay.
type Debounce struct {
	State   DebounceState
	Delay   time.Duration
	Gen     uint64
	Payload interface{}
}

// NewDebounce creates an idle debounce. A zero delay means DefaultDebounceDelay.
func NewDebounce(delay time.Duration) (Debounce, error) {
	if delay == 0 {
		delay = DefaultDebounceDelay
	}
	if delay < 0 {
		return Debounce{}, fmt.Errorf("debounce delay %s: %w", delay, ErrInvalidDelay)
	}
	return Debounce{State: DebounceIdle, Delay: delay}, nil
}

// Trigger enters (or re-enters) the waiting state and restarts the delay.
func (d Debounce) Trigger(payload interface{}) (Debounce, []DebounceEffect) {
	d.State = DebounceWaiting
	d.Gen++
	d.Payload = payload
	return d, []DebounceEffect{ArmDelay{Gen: d.Gen, Delay: d.Delay}}
}

// Elapsed fires if gen is the most recent delay; stale delays are ignored.
func (d Debounce) Elapsed(gen uint64) (Debounce, []DebounceEffect) {
	if d.State != DebounceWaiting || gen != d.Gen {
		return d, nil
	}
	payload := d.Payload
	d.State = DebounceIdle
	d.Payload = nil
	return d, []DebounceEffect{Fire{Payload: payload}}
}
