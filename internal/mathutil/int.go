package mathutil

// ClampInt limits v to [lo, hi]. hi wins if the bounds cross.
func ClampInt(v, lo, hi int) int {
	if v < lo {
		v = lo
	}
	if v > hi {
		v = hi
	}
	return v
}
