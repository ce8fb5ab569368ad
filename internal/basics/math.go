package basics

// IRound rounds v to the nearest integer, rounding halves away from zero.
// Matches AGG's platform iround fallback.
func IRound(v float64) int {
	if v >= 0.0 {
		return int(v + 0.5)
	}
	return int(v - 0.5)
}

// Saturation clamps IRound results to +/-limit, used for the saturating
// coordinate conversion policy (ras_conv_int_sat in the original).
type Saturation struct {
	limit int
}

// NewSaturation builds a Saturation clamp with the given symmetric limit.
func NewSaturation(limit int) Saturation {
	return Saturation{limit: limit}
}

// IRound rounds v and clamps the result to [-limit, limit].
func (s Saturation) IRound(v float64) int {
	limit := float64(s.limit)
	if v < -limit {
		return -s.limit
	}
	if v > limit {
		return s.limit
	}
	return IRound(v)
}
