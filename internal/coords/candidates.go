package coords

import "math"

// MaxScaleExponent is the largest power of ten tried when correcting a
// missing decimal point: -22175 at exponent 3 recovers -22.175.
const MaxScaleExponent = 6

// ScaleCandidate pairs a rescaled value with the exponent that produced it.
// Exponent 0 means the value was taken as-is.
type ScaleCandidate struct {
	Value    float64
	Exponent int
}

// ScaleCandidates returns the value divided by ascending powers of ten, for
// exponents 0 through maxExp inclusive. The order is significant: the caller
// relies on it to break ties deterministically.
func ScaleCandidates(value float64, maxExp int) []ScaleCandidate {
	out := make([]ScaleCandidate, 0, maxExp+1)
	for p := 0; p <= maxExp; p++ {
		out = append(out, ScaleCandidate{Value: value / math.Pow10(p), Exponent: p})
	}
	return out
}
