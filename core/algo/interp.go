// Package algo holds the pure scoring and ranking math used by the engine.
package algo

import "github.com/songwei/vitalrisk/schema"

// Interp evaluates a piecewise-linear curve at x. The curve is defined by
// control points sorted by X ascending; values outside the covered range
// clamp to the first or last point's score. A curve with monotone Y values
// therefore yields a continuous, monotone function of x, which is what keeps
// clinical band scoring free of grade cliffs.
func Interp(points []schema.CurvePoint, x float64) float64 {
	if len(points) == 0 {
		return 0
	}
	if x <= points[0].X {
		return points[0].Y
	}
	last := points[len(points)-1]
	if x >= last.X {
		return last.Y
	}
	for i := 1; i < len(points); i++ {
		if x <= points[i].X {
			p0, p1 := points[i-1], points[i]
			if p1.X == p0.X {
				return p1.Y
			}
			t := (x - p0.X) / (p1.X - p0.X)
			return p0.Y + t*(p1.Y-p0.Y)
		}
	}
	return last.Y
}

// Clamp01 clamps v to the [0,1] interval.
func Clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// ClampScore clamps v to the [0,100] score range.
func ClampScore(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
