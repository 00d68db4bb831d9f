// File: game/errors.go
package game

import "errors"

// Construction errors. Inputs are validated before an actor is spawned.
var (
	ErrInvalidDuration = errors.New("invalid duration")
	ErrInvalidTick     = errors.New("invalid tick interval")
	ErrInvalidDelay    = errors.New("invalid delay")
	ErrNoPlayer        = errors.New("no audio player")
)
