package render

import "time"

// Transform is the animatable part of a node.
type Transform struct {
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Rotation float64 `json:"rotation"` // Degrees
}

// Target is where a tween ends and how long it takes to get there.
type Target struct {
	X        float64
	Y        float64
	Rotation float64
	Duration time.Duration
}

// Transform returns the end transform of the target.
func (t Target) Transform() Transform {
	return Transform{X: t.X, Y: t.Y, Rotation: t.Rotation}
}

// Lerp interpolates between a and b; p is not clamped.
func Lerp(a, b Transform, p float64) Transform {
	return Transform{
		X:        a.X + (b.X-a.X)*p,
		Y:        a.Y + (b.Y-a.Y)*p,
		Rotation: a.Rotation + (b.Rotation-a.Rotation)*p,
	}
}
