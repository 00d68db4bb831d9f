// File: game/animation_actor.go
package game

import (
	"fmt"
	"time"

	"github.com/lguibr/eggchef/bollywood"
	"github.com/lguibr/eggchef/render"
)

// DefaultFrameInterval is used when AnimationInput.FrameInterval is not set (~60fps).
const DefaultFrameInterval = 16 * time.Millisecond

// AnimationObserver is told when a tween finished.
type AnimationObserver interface {
	AnimationComplete(id string, final render.Transform)
}

// FrameObserver is an optional capability of an AnimationObserver. When
// present it is called after every applied frame.
type FrameObserver interface {
	AnimationFrame(id string, t render.Transform, progress float64)
}

// NopObserver ignores every callback.
type NopObserver struct{}

func (NopObserver) AnimationComplete(string, render.Transform) {}

// AnimationInput configures an AnimationActor. Target is fixed for the actor's lifetime.
type AnimationInput struct {
	ID            string
	Node          render.Node
	Target        render.Target
	Ease          render.EaseFunc
	Observer      AnimationObserver
	FrameInterval time.Duration
}

// AnimationActor tweens one node to its target. It holds a lease on the node
// so only the newest animation of a node can move it.
type AnimationActor struct {
	in     AnimationInput
	lease  render.Lease
	tween  render.Tween
	frames bollywood.Cancel

	startedAt time.Time
	pausedAt  time.Time
	pausedFor time.Duration
	paused    bool
	finished  bool
}

// NewAnimationProps returns props for an AnimationActor.
func NewAnimationProps(in AnimationInput) (*bollywood.Props, error) {
	if in.Target.Duration < 0 {
		return nil, fmt.Errorf("animation %q duration %s: %w", in.ID, in.Target.Duration, ErrInvalidDuration)
	}
	if in.Observer == nil {
		in.Observer = NopObserver{}
	}
	if in.FrameInterval <= 0 {
		in.FrameInterval = DefaultFrameInterval
	}
	return bollywood.NewProps(func() bollywood.Actor {
		return &AnimationActor{in: in}
	}).WithName("animation"), nil
}

func (a *AnimationActor) Receive(ctx bollywood.Context) {
	switch ctx.Message().(type) {
	case bollywood.Started:
		if a.in.Node == nil {
			// Unmounted nodes are tolerated: nothing is animated and nobody is called.
			ctx.Logger().Debug("AnimationActor: no node, skipping", "animation", a.in.ID)
			a.finished = true
			ctx.Stop(ctx.Self())
			return
		}
		a.lease = a.in.Node.Acquire()
		a.tween = render.NewTween(a.in.Node.Transform(), a.in.Target, a.in.Ease)
		a.startedAt = ctx.Clock().Now()
		if a.step(ctx) {
			a.frames = ctx.Every(a.in.FrameInterval, animationFrame{})
		}

	case animationFrame:
		if !a.paused {
			a.step(ctx)
		}

	case PauseAnimation:
		if a.paused || a.finished {
			return
		}
		a.paused = true
		a.pausedAt = ctx.Clock().Now()
		a.stopFrames()

	case ResumeAnimation:
		if !a.paused || a.finished {
			return
		}
		a.paused = false
		a.pausedFor += ctx.Clock().Now().Sub(a.pausedAt)
		a.frames = ctx.Every(a.in.FrameInterval, animationFrame{})

	case bollywood.Stopping:
		a.stopFrames()
	}
}

// step applies the frame for the current time. It returns false once the
// actor is done, either because the tween finished or the lease was lost.
func (a *AnimationActor) step(ctx bollywood.Context) bool {
	if a.finished {
		return false
	}
	elapsed := ctx.Clock().Now().Sub(a.startedAt) - a.pausedFor
	t, done := a.tween.At(elapsed)

	if !a.in.Node.Apply(a.lease, t) {
		ctx.Logger().Debug("AnimationActor: lease revoked, stopping", "animation", a.in.ID)
		a.end(ctx)
		return false
	}

	if fo, ok := a.in.Observer.(FrameObserver); ok {
		progress := 1.0
		if !done && a.tween.Duration > 0 {
			progress = float64(elapsed) / float64(a.tween.Duration)
		}
		fo.AnimationFrame(a.in.ID, t, progress)
	}

	if done {
		a.in.Observer.AnimationComplete(a.in.ID, t)
		ctx.SendParent(AnimationDone{ID: a.in.ID})
		a.end(ctx)
		return false
	}
	return true
}

func (a *AnimationActor) end(ctx bollywood.Context) {
	a.finished = true
	a.stopFrames()
	ctx.Stop(ctx.Self())
}

func (a *AnimationActor) stopFrames() {
	if a.frames != nil {
		a.frames()
		a.frames = nil
	}
}
