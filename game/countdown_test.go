// File: game/countdown_test.go
package game

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runCountdown feeds n ticker steps of the current generation and collects emitted ticks.
func runCountdown(c Countdown, n int) (Countdown, []EmitTick) {
	var ticks []EmitTick
	for i := 0; i < n; i++ {
		var effects []CountdownEffect
		c, effects = c.Handle(countdownStep{Gen: c.Gen})
		for _, eff := range effects {
			if tick, ok := eff.(EmitTick); ok {
				ticks = append(ticks, tick)
			}
		}
	}
	return c, ticks
}

func TestCountdown_EvenTicks(t *testing.T) {
	c, err := NewCountdown(CountdownInput{Total: 3 * time.Second, Tick: time.Second})
	require.NoError(t, err)

	c, effects := c.Handle(StartCountdown{})
	require.Equal(t, []CountdownEffect{StartTicking{Gen: 1, Every: time.Second}}, effects)

	c, ticks := runCountdown(c, 5)
	assert.Equal(t, []EmitTick{
		{Remaining: 2 * time.Second},
		{Remaining: time.Second},
		{Remaining: 0, Done: true},
	}, ticks)
	assert.Equal(t, CountdownCompleted, c.State)
}

func TestCountdown_UndershootIsClamped(t *testing.T) {
	c, err := NewCountdown(CountdownInput{Total: 2500 * time.Millisecond, Tick: time.Second})
	require.NoError(t, err)
	c, _ = c.Handle(StartCountdown{})

	_, ticks := runCountdown(c, 4)
	assert.Equal(t, []EmitTick{
		{Remaining: 1500 * time.Millisecond},
		{Remaining: 500 * time.Millisecond},
		{Remaining: 0, Done: true},
	}, ticks)
}

func TestCountdown_PauseHoldsRemaining(t *testing.T) {
	c, _ := NewCountdown(CountdownInput{Total: 3 * time.Second, Tick: time.Second})
	c, _ = c.Handle(StartCountdown{})
	c, _ = runCountdown(c, 1)

	staleGen := c.Gen
	c, effects := c.Handle(PauseCountdown{})
	assert.Equal(t, []CountdownEffect{StopTicking{}}, effects)
	assert.Equal(t, CountdownPaused, c.State)

	c, effects = c.Handle(countdownStep{Gen: staleGen})
	assert.Empty(t, effects, "steps queued before the pause are ignored")
	c, effects = c.Handle(PauseCountdown{})
	assert.Empty(t, effects)

	c, effects = c.Handle(ResumeCountdown{})
	require.Len(t, effects, 1)
	assert.Equal(t, 2*time.Second, c.Remaining)

	_, ticks := runCountdown(c, 2)
	assert.Equal(t, []EmitTick{{Remaining: time.Second}, {Remaining: 0, Done: true}}, ticks)
}

func TestCountdown_ResumeWhileActiveIsNoop(t *testing.T) {
	c, _ := NewCountdown(CountdownInput{Total: 3 * time.Second, Tick: time.Second})
	c, _ = c.Handle(StartCountdown{})
	gen := c.Gen

	c, effects := c.Handle(ResumeCountdown{})
	assert.Empty(t, effects)
	assert.Equal(t, gen, c.Gen)
}

func TestCountdown_ZeroTotalCompletesOnStart(t *testing.T) {
	c, err := NewCountdown(CountdownInput{Total: 0, Tick: time.Second})
	require.NoError(t, err)

	c, effects := c.Handle(StartCountdown{})
	assert.Equal(t, []CountdownEffect{EmitTick{Remaining: 0, Done: true}}, effects)
	assert.Equal(t, CountdownCompleted, c.State)

	_, effects = c.Handle(StartCountdown{})
	assert.Empty(t, effects)
}

func TestCountdown_CompletedIgnoresEverything(t *testing.T) {
	c, _ := NewCountdown(CountdownInput{Total: time.Second, Tick: time.Second})
	c, _ = c.Handle(StartCountdown{})
	c, _ = runCountdown(c, 1)
	require.Equal(t, CountdownCompleted, c.State)

	for _, ev := range []CountdownEvent{PauseCountdown{}, ResumeCountdown{}, countdownStep{Gen: c.Gen}} {
		next, effects := c.Handle(ev)
		assert.Empty(t, effects)
		assert.Equal(t, c, next)
	}
}

func TestCountdownInput_Validate(t *testing.T) {
	_, err := NewCountdown(CountdownInput{Total: -time.Second, Tick: time.Second})
	assert.ErrorIs(t, err, ErrInvalidDuration)

	_, err = NewCountdown(CountdownInput{Total: time.Second, Tick: 0})
	assert.ErrorIs(t, err, ErrInvalidTick)
}
