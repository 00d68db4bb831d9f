// File: game/animation_actor_test.go
package game

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lguibr/eggchef/bollywood"
	"github.com/lguibr/eggchef/render"
)

func newEggAnimation(t *testing.T, node render.Node, observer AnimationObserver) *bollywood.Props {
	t.Helper()
	props, err := NewAnimationProps(AnimationInput{
		ID:            "egg-1",
		Node:          node,
		Target:        render.Target{X: 100, Y: 200, Rotation: 360, Duration: time.Second},
		Observer:      observer,
		FrameInterval: 100 * time.Millisecond,
	})
	require.NoError(t, err)
	return props
}

func TestAnimationActor_CompletesExactlyOnce(t *testing.T) {
	engine, clock := newManualEngine(t)
	sprite := render.NewSprite("egg-1", render.KindEgg, render.Transform{})
	observer := &recordingObserver{}

	parent, _, child := spawnUnderMock(t, engine, newEggAnimation(t, sprite, observer))
	waitArmed(t, clock, 100*time.Millisecond)

	clock.Advance(500 * time.Millisecond)
	assert.Eventually(t, func() bool { return sprite.Transform().X == 50 }, waitFor, pollEvery)
	_, completed := observer.counts()
	assert.Equal(t, 0, completed, "not complete before the duration")

	clock.Advance(600 * time.Millisecond)
	assert.Eventually(t, func() bool { return terminatedCount(parent, child) == 1 }, waitFor, pollEvery)

	frames, completed := observer.counts()
	assert.Equal(t, 1, completed)
	assert.GreaterOrEqual(t, frames, 2)
	assert.Equal(t, render.Transform{X: 100, Y: 200, Rotation: 360}, sprite.Transform())
	assert.Equal(t, []AnimationDone{{ID: "egg-1"}}, messagesOf[AnimationDone](parent))

	clock.Advance(time.Second)
	_, completed = observer.counts()
	assert.Equal(t, 1, completed)
}

func TestAnimationActor_MissingNodeIsSilent(t *testing.T) {
	engine, _ := newManualEngine(t)
	observer := &recordingObserver{}

	parent, _, child := spawnUnderMock(t, engine, newEggAnimation(t, nil, observer))
	assert.Eventually(t, func() bool { return terminatedCount(parent, child) == 1 }, waitFor, pollEvery)

	frames, completed := observer.counts()
	assert.Zero(t, frames)
	assert.Zero(t, completed)
	assert.Empty(t, messagesOf[AnimationDone](parent))
}

func TestAnimationActor_RevokedLeaseStopsWithoutCompletion(t *testing.T) {
	engine, clock := newManualEngine(t)
	sprite := render.NewSprite("egg-1", render.KindEgg, render.Transform{})
	observer := &recordingObserver{}

	parent, _, child := spawnUnderMock(t, engine, newEggAnimation(t, sprite, observer))
	waitArmed(t, clock, 100*time.Millisecond)

	lease := sprite.Acquire()
	require.True(t, sprite.Apply(lease, render.Transform{X: -5}))

	clock.Advance(200 * time.Millisecond)
	assert.Eventually(t, func() bool { return terminatedCount(parent, child) == 1 }, waitFor, pollEvery)
	assert.Equal(t, -5.0, sprite.Transform().X)
	_, completed := observer.counts()
	assert.Zero(t, completed)
	assert.Empty(t, messagesOf[AnimationDone](parent))
}

func TestAnimationActor_PauseFreezesProgress(t *testing.T) {
	engine, clock := newManualEngine(t)
	sprite := render.NewSprite("egg-1", render.KindEgg, render.Transform{})

	_, _, child := spawnUnderMock(t, engine, newEggAnimation(t, sprite, nil))
	waitArmed(t, clock, 100*time.Millisecond)

	clock.Advance(200 * time.Millisecond)
	assert.Eventually(t, func() bool { return sprite.Transform().X == 20 }, waitFor, pollEvery)

	engine.Send(child, PauseAnimation{}, nil)
	assert.Eventually(t, func() bool { return clock.Pending() == 0 }, waitFor, pollEvery)
	clock.Advance(5 * time.Second)
	assert.Equal(t, 20.0, sprite.Transform().X)

	engine.Send(child, ResumeAnimation{}, nil)
	waitArmed(t, clock, 5300*time.Millisecond)
	clock.Advance(300 * time.Millisecond)
	assert.Eventually(t, func() bool { return sprite.Transform().X == 50 }, waitFor, pollEvery)
}

func TestAnimationActor_ZeroDurationCompletesOnStart(t *testing.T) {
	engine, _ := newManualEngine(t)
	sprite := render.NewSprite("chef", render.KindChef, render.Transform{X: 10})
	props, err := NewAnimationProps(AnimationInput{ID: "snap", Node: sprite, Target: render.Target{X: 30}})
	require.NoError(t, err)

	parent, _, _ := spawnUnderMock(t, engine, props)
	assert.Eventually(t, func() bool { return len(messagesOf[AnimationDone](parent)) == 1 }, waitFor, pollEvery)
	assert.Equal(t, 30.0, sprite.Transform().X)
}

func TestNewAnimationProps_RejectsNegativeDuration(t *testing.T) {
	_, err := NewAnimationProps(AnimationInput{ID: "egg-7", Target: render.Target{Duration: -time.Second}})
	assert.ErrorIs(t, err, ErrInvalidDuration)
	assert.Contains(t, err.Error(), `"egg-7"`)
}
