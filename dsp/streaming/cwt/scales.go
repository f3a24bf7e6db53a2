package cwt

import (
	"math"

	"github.com/cwbudde/algo-wavelet/dsp/streaming/errs"
)

// Scales is an immutable ascending sequence of CWT analysis scales.
type Scales struct {
	values []float64
	log    bool
}

// NewLinearScales builds K linearly spaced scales in [sMin, sMax].
func NewLinearScales(sMin, sMax float64, k int) (Scales, error) {
	if err := validateScaleRange(sMin, sMax, k); err != nil {
		return Scales{}, err
	}
	values := make([]float64, k)
	step := (sMax - sMin) / float64(k-1)
	for i := range values {
		values[i] = sMin + step*float64(i)
	}
	return Scales{values: values, log: false}, nil
}

// NewLogScales builds K geometrically spaced scales in [sMin, sMax]; the
// ratio between consecutive scales is constant to full double precision.
func NewLogScales(sMin, sMax float64, k int) (Scales, error) {
	if err := validateScaleRange(sMin, sMax, k); err != nil {
		return Scales{}, err
	}
	logMin, logMax := math.Log(sMin), math.Log(sMax)
	step := (logMax - logMin) / float64(k-1)
	values := make([]float64, k)
	for i := range values {
		values[i] = math.Exp(logMin + step*float64(i))
	}
	values[0] = sMin
	values[k-1] = sMax
	return Scales{values: values, log: true}, nil
}

func validateScaleRange(sMin, sMax float64, k int) error {
	if sMin <= 0 {
		return errs.Invalid("cwt: s_min must be > 0: %v", sMin)
	}
	if sMin >= sMax {
		return errs.Invalid("cwt: s_min must be < s_max: %v >= %v", sMin, sMax)
	}
	if k < 2 {
		return errs.Invalid("cwt: scale count K must be >= 2: %d", k)
	}
	return nil
}

// Len returns the scale count K.
func (s Scales) Len() int { return len(s.values) }

// At returns the scale at index k.
func (s Scales) At(k int) float64 { return s.values[k] }

// Values returns a defensive copy of the scale sequence.
func (s Scales) Values() []float64 { return append([]float64(nil), s.values...) }
