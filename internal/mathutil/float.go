package mathutil

import "math"

// ClampFloat limits v to [lo, hi].
func ClampFloat(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// WrapAngle folds an angle in radians into [0, 2π).
func WrapAngle(a float64) float64 {
	a = math.Mod(a, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	return a
}

// StepToward moves current toward target by at most step without passing it.
func StepToward(current, target, step float64) float64 {
	switch {
	case current < target:
		return math.Min(current+step, target)
	case current > target:
		return math.Max(current-step, target)
	default:
		return current
	}
}
