package common

type Float interface {
	~float32 | ~float64
}

func Lerp[F Float](a, b, t F) F {
	return a + t*(b-a)
}

// Smooth moves current towards target by factor, clamped to [0, 1].
func Smooth[F Float](current, target, factor F) F {
	if factor < 0 {
		factor = 0
	} else if factor > 1 {
		factor = 1
	}
	return Lerp(current, target, factor)
}

func Clamp[F Float](v, lo, hi F) F {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
