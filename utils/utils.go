// File: utils/utils.go
package utils

import (
	"log/slog"
	"math"
)

var logger = slog.Default()

// SetLogger replaces the package logger.
func SetLogger(l *slog.Logger) {
	if l != nil {
		logger = l
	}
}

// DirectionFromString maps key names and plain words to "left", "right" or "".
func DirectionFromString(direction string) string {
	switch direction {
	case "ArrowLeft", "left":
		return "left"
	case "ArrowRight", "right":
		return "right"
	}
	return ""
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// Spread returns n positions evenly spaced across width, each centered in its slot.
func Spread(n int, width float64) []float64 {
	if n <= 0 {
		return nil
	}
	out := make([]float64, n)
	slot := width / float64(n)
	for i := range out {
		out[i] = slot*float64(i) + slot/2
	}
	return out
}
