// File: game/countdown_actor_test.go
package game

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCountdownActor_TickSequence(t *testing.T) {
	engine, clock := newManualEngine(t)
	props, err := NewCountdownProps(CountdownInput{Total: 3 * time.Second, Tick: time.Second})
	require.NoError(t, err)

	parent, _, child := spawnUnderMock(t, engine, props)
	waitArmed(t, clock, time.Second)

	clock.Advance(3 * time.Second)
	assert.Eventually(t, func() bool { return terminatedCount(parent, child) == 1 }, waitFor, pollEvery)
	assert.Equal(t, []CountdownTick{
		{Remaining: 2 * time.Second},
		{Remaining: time.Second},
		{Remaining: 0, Done: true},
	}, messagesOf[CountdownTick](parent))
	assert.Equal(t, 0, clock.Pending())
}

func TestCountdownActor_PauseAndResume(t *testing.T) {
	engine, clock := newManualEngine(t)
	props, err := NewCountdownProps(CountdownInput{Total: 3 * time.Second, Tick: time.Second})
	require.NoError(t, err)

	parent, _, child := spawnUnderMock(t, engine, props)
	waitArmed(t, clock, time.Second)

	clock.Advance(time.Second)
	assert.Eventually(t, func() bool { return len(messagesOf[CountdownTick](parent)) == 1 }, waitFor, pollEvery)

	engine.Send(child, PauseCountdown{}, nil)
	assert.Eventually(t, func() bool { return clock.Pending() == 0 }, waitFor, pollEvery)
	clock.Advance(10 * time.Second)
	assert.Len(t, messagesOf[CountdownTick](parent), 1, "no ticks while paused")

	engine.Send(child, ResumeCountdown{}, nil)
	engine.Send(child, ResumeCountdown{}, nil)
	waitArmed(t, clock, 12*time.Second)
	assert.Equal(t, 1, clock.Pending(), "a second resume does not add a ticker")

	clock.Advance(2 * time.Second)
	assert.Eventually(t, func() bool { return terminatedCount(parent, child) == 1 }, waitFor, pollEvery)
	assert.Equal(t, []CountdownTick{
		{Remaining: 2 * time.Second},
		{Remaining: time.Second},
		{Remaining: 0, Done: true},
	}, messagesOf[CountdownTick](parent))
}

func TestCountdownActor_ResumeWhileActiveKeepsSpeed(t *testing.T) {
	engine, clock := newManualEngine(t)
	props, err := NewCountdownProps(CountdownInput{Total: 4 * time.Second, Tick: time.Second})
	require.NoError(t, err)

	parent, _, child := spawnUnderMock(t, engine, props)
	waitArmed(t, clock, time.Second)

	engine.Send(child, ResumeCountdown{}, nil)
	engine.Send(child, ResumeCountdown{}, nil)
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, 1, clock.Pending())

	clock.Advance(2 * time.Second)
	assert.Eventually(t, func() bool { return len(messagesOf[CountdownTick](parent)) == 2 }, waitFor, pollEvery)
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, []CountdownTick{{Remaining: 3 * time.Second}, {Remaining: 2 * time.Second}}, messagesOf[CountdownTick](parent))
}

func TestCountdownTimerActor_FoldsAndFinishesOnce(t *testing.T) {
	engine, clock := newManualEngine(t)
	props, err := NewCountdownTimerProps(CountdownInput{Total: 2 * time.Second, Tick: time.Second})
	require.NoError(t, err)

	parent, _, child := spawnUnderMock(t, engine, props)
	waitArmed(t, clock, time.Second)

	clock.Advance(5 * time.Second)
	assert.Eventually(t, func() bool { return terminatedCount(parent, child) == 1 }, waitFor, pollEvery)
	assert.Equal(t, []CountdownTimerTick{{Remaining: time.Second}, {Remaining: 0}}, messagesOf[CountdownTimerTick](parent))
	assert.Len(t, messagesOf[CountdownTimerFinished](parent), 1)
	assert.Equal(t, 0, clock.Pending())
}

func TestCountdownTimerActor_ForwardsPause(t *testing.T) {
	engine, clock := newManualEngine(t)
	props, err := NewCountdownTimerProps(CountdownInput{Total: 2 * time.Second, Tick: time.Second})
	require.NoError(t, err)

	parent, _, child := spawnUnderMock(t, engine, props)
	waitArmed(t, clock, time.Second)

	engine.Send(child, PauseCountdown{}, nil)
	assert.Eventually(t, func() bool { return clock.Pending() == 0 }, waitFor, pollEvery)
	clock.Advance(5 * time.Second)
	assert.Empty(t, messagesOf[CountdownTimerTick](parent))

	engine.Send(child, ResumeCountdown{}, nil)
	waitArmed(t, clock, 6*time.Second)
	clock.Advance(2 * time.Second)
	assert.Eventually(t, func() bool { return len(messagesOf[CountdownTimerFinished](parent)) == 1 }, waitFor, pollEvery)
}

func TestCountdownTimerActor_ZeroTotal(t *testing.T) {
	engine, _ := newManualEngine(t)
	props, err := NewCountdownTimerProps(CountdownInput{Total: 0, Tick: time.Second})
	require.NoError(t, err)

	parent, _, _ := spawnUnderMock(t, engine, props)
	assert.Eventually(t, func() bool { return len(messagesOf[CountdownTimerFinished](parent)) == 1 }, waitFor, pollEvery)
	assert.Equal(t, []CountdownTimerTick{{Remaining: 0}}, messagesOf[CountdownTimerTick](parent))
}

func TestNewCountdownProps_Validates(t *testing.T) {
	_, err := NewCountdownProps(CountdownInput{Total: -time.Second, Tick: time.Second})
	assert.ErrorIs(t, err, ErrInvalidDuration)
	_, err = NewCountdownTimerProps(CountdownInput{Total: time.Second})
	assert.ErrorIs(t, err, ErrInvalidTick)
}
