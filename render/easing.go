package render

import (
	"fmt"
	"math"
)

// EaseFunc maps linear progress t in [0, 1] to eased progress.
type EaseFunc func(t float64) float64

// EaseLinear moves at constant speed.
func EaseLinear(t float64) float64 {
	return t
}

// EaseInQuad starts slow and accelerates. Good for things that fall.
func EaseInQuad(t float64) float64 {
	return t * t
}

// EaseOutQuad starts fast and slows down.
func EaseOutQuad(t float64) float64 {
	return 1 - (1-t)*(1-t)
}

// EaseOutCubic starts fast and settles on the target.
func EaseOutCubic(t float64) float64 {
	return 1 - math.Pow(1-t, 3)
}

// EaseInOutCubic is slow at both ends.
func EaseInOutCubic(t float64) float64 {
	if t < 0.5 {
		return 4 * t * t * t
	}
	return 1 - math.Pow(-2*t+2, 3)/2
}

// EaseOutBounce hits the target and bounces a few times before resting.
func EaseOutBounce(t float64) float64 {
	const n1 = 7.5625
	const d1 = 2.75
	switch {
	case t < 1/d1:
		return n1 * t * t
	case t < 2/d1:
		t -= 1.5 / d1
		return n1*t*t + 0.75
	case t < 2.5/d1:
		t -= 2.25 / d1
		return n1*t*t + 0.9375
	default:
		t -= 2.625 / d1
		return n1*t*t + 0.984375
	}
}

var easings = map[string]EaseFunc{
	"linear":     EaseLinear,
	"inQuad":     EaseInQuad,
	"outQuad":    EaseOutQuad,
	"outCubic":   EaseOutCubic,
	"inOutCubic": EaseInOutCubic,
	"outBounce":  EaseOutBounce,
}

// EaseByName resolves an easing from its config name. Empty means linear.
func EaseByName(name string) (EaseFunc, error) {
	if name == "" {
		return EaseLinear, nil
	}
	ease, ok := easings[name]
	if !ok {
		return nil, fmt.Errorf("unknown easing %q", name)
	}
	return ease, nil
}
