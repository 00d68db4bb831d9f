// File: game/messages.go
package game

import (
	"time"

	"github.com/lguibr/eggchef/audio"
	"github.com/lguibr/eggchef/bollywood"
)

// --- TimerActor Messages ---

// TimerDone is sent to the parent once the timer's duration has elapsed.
type TimerDone struct {
	ID string
}

// timerFired is the owned timer delivering to the TimerActor itself.
type timerFired struct{}

// --- CountdownActor Messages ---

// CountdownTick reports progress of a CountdownActor to its parent.
type CountdownTick struct {
	Remaining time.Duration
	Done      bool
}

// --- CountdownTimerActor Messages ---

// CountdownTimerTick forwards the folded remaining time to the owner.
type CountdownTimerTick struct {
	Remaining time.Duration
}

// CountdownTimerFinished is sent once when the countdown reaches zero.
type CountdownTimerFinished struct{}

// --- GameTimerActor Messages ---

// GameTimerTick reports the remaining round time after each step.
type GameTimerTick struct {
	Remaining time.Duration
}

// GameTimerExpired is sent once when the round time runs out.
type GameTimerExpired struct{}

// --- DebounceActor Messages ---

// Trigger restarts the debounce window. Payload is handed back on fire.
type Trigger struct {
	Payload interface{}
}

// DebounceFired is sent to the parent after the trigger was quiet for the delay.
type DebounceFired struct {
	Key     string
	Payload interface{}
}

// --- SoundActor Messages ---

// PlaySound asks the SoundActor to play a cue unless it is suppressed.
type PlaySound struct {
	ID audio.SoundID
}

// SoundPlayed is sent to the parent when a cue actually reached the player.
type SoundPlayed struct {
	ID audio.SoundID
}

// soundQuiet is delivered when the quiet window armed for Gen runs out.
type soundQuiet struct{ Gen uint64 }

// --- AnimationActor Messages ---

// AnimationDone is sent to the parent after the tween completed.
type AnimationDone struct {
	ID string
}

// PauseAnimation freezes the tween where it is.
type PauseAnimation struct{}

// ResumeAnimation continues a paused tween.
type ResumeAnimation struct{}

// animationFrame is the owned frame ticker.
type animationFrame struct{}

// --- EggGameActor Messages ---

// MoveChef moves the chef one step. Direction is "left" or "right".
type MoveChef struct {
	Direction string
}

// PauseGame freezes every timer and animation of a session.
type PauseGame struct{}

// ResumeGame undoes PauseGame.
type ResumeGame struct{}

// Subscribe registers PID for StateUpdate and GameOver messages.
type Subscribe struct {
	PID *bollywood.PID
}

// Unsubscribe removes PID from the subscribers.
type Unsubscribe struct {
	PID *bollywood.PID
}

// StateUpdate carries a snapshot to subscribers.
type StateUpdate struct {
	State GameState
}

// GetState asks the game for a snapshot (used via Ask).
type GetState struct{}

// GetASCII asks the game for an ASCII frame of its scene (used via Ask).
type GetASCII struct {
	Resolution int
}

// GameOver is sent to the parent and to subscribers when a round ends.
type GameOver struct {
	SessionID string `json:"sessionId"`
	Score     int    `json:"score"`
	Broken    int    `json:"broken"`
	BestCombo int    `json:"bestCombo"`
}

// broadcastTick drives periodic state pushes.
type broadcastTick struct{}
