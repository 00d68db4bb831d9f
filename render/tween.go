package render

import "time"

// Tween interpolates a node from one transform to another over a fixed duration.
// It holds no clock; callers feed it elapsed time.
type Tween struct {
	From     Transform
	To       Transform
	Duration time.Duration
	Ease     EaseFunc
}

// NewTween builds a tween from the current transform to target.
// A nil ease means linear.
func NewTween(from Transform, target Target, ease EaseFunc) Tween {
	if ease == nil {
		ease = EaseLinear
	}
	return Tween{
		From:     from,
		To:       target.Transform(),
		Duration: target.Duration,
		Ease:     ease,
	}
}

// At returns the transform after elapsed and whether the tween is finished.
// Once finished the result is exactly To.
func (t Tween) At(elapsed time.Duration) (Transform, bool) {
	if t.Duration <= 0 || elapsed >= t.Duration {
		return t.To, true
	}
	if elapsed <= 0 {
		return t.From, false
	}
	p := float64(elapsed) / float64(t.Duration)
	return Lerp(t.From, t.To, t.Ease(p)), false
}
