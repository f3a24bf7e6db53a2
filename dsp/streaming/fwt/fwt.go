package fwt

import (
	"github.com/cwbudde/algo-wavelet/dsp/core"
	"github.com/cwbudde/algo-wavelet/dsp/streaming"
	"github.com/cwbudde/algo-wavelet/dsp/streaming/errs"
	"github.com/cwbudde/algo-wavelet/dsp/wavelet"
)

// Transform is a streaming FWT: a full-recompute decimated wavelet pyramid
// over a power-of-two window. Non-power-of-two requested capacities are
// rounded up to the next power of two (the effective buffer size), with
// the unfilled portion zero-padded.
type Transform struct {
	base      *streaming.Base
	wv        wavelet.Wavelet
	level     int
	effective int // effective (power-of-two) buffer size

	// approx[0] is the original signal (length effective); approx[j] for
	// j=1..level holds the approximation at that level (length
	// effective/2^j); detail[j] holds the detail at that level, same
	// length as approx[j].
	approx [][]float64
	detail [][]float64
}

// New constructs a streaming FWT at the given level over cfg's window,
// rounding the configured capacity up to the next power of two.
func New(wv wavelet.Wavelet, level int, cfg streaming.Config) (*Transform, error) {
	if wv == nil {
		return nil, errs.Invalid("fwt: wavelet must not be nil")
	}
	effective := nextPowerOfTwo(cfg.WindowCapacity)
	maxLevel := log2Floor(effective)
	if level < 1 || level > maxLevel {
		return nil, errs.Invalid("fwt: level must be in [1, %d] for buffer size %d, got %d", maxLevel, effective, level)
	}
	cfg.WindowCapacity = effective
	base, err := streaming.NewBase(cfg)
	if err != nil {
		return nil, err
	}
	t := &Transform{base: base, wv: wv, level: level, effective: effective}
	t.allocate()
	return t, nil
}

// allocate (re)sizes the pyramid, reusing each level's backing storage via
// dsp/core.EnsureLen (a Reset keeps effective/level fixed, so every array
// keeps its existing capacity) and zeroing it with dsp/core.Zero rather
// than discarding and reallocating.
func (t *Transform) allocate() {
	if len(t.approx) != t.level+1 {
		t.approx = make([][]float64, t.level+1)
	}
	if len(t.detail) != t.level+1 {
		t.detail = make([][]float64, t.level+1)
	}
	size := t.effective
	t.approx[0] = core.EnsureLen(t.approx[0], size)
	core.Zero(t.approx[0])
	for j := 1; j <= t.level; j++ {
		size /= 2
		t.approx[j] = core.EnsureLen(t.approx[j], size)
		core.Zero(t.approx[j])
		t.detail[j] = core.EnsureLen(t.detail[j], size)
		core.Zero(t.detail[j])
	}
}

// EffectiveBufferSize returns the power-of-two window capacity actually in
// use.
func (t *Transform) EffectiveBufferSize() int { return t.effective }

// Level returns the decomposition depth L.
func (t *Transform) Level() int { return t.level }

// Update appends samples and recomputes (FWT has no incremental path;
// INCREMENTAL strategy degrades to FULL).
func (t *Transform) Update(samples []float64) ([]float64, error) {
	if _, err := t.base.AppendMany(samples); err != nil {
		return nil, err
	}
	if t.base.Config().Strategy != streaming.Lazy {
		t.recompute()
		t.base.MarkComputed()
	}
	return t.CurrentCoefficients()
}

// CurrentCoefficients returns the flat pyramid [A_L, D_L, ..., D_1] as a
// single defensive-copy vector of length equal to the effective buffer
// size.
func (t *Transform) CurrentCoefficients() ([]float64, error) {
	if t.base.IsStale() {
		t.recompute()
		t.base.MarkComputed()
	}
	out := make([]float64, 0, t.effective)
	out = append(out, t.approx[t.level]...)
	for j := t.level; j >= 1; j-- {
		out = append(out, t.detail[j]...)
	}
	return out, nil
}

// CoefficientsAtLevel returns (approximation, detail) defensive copies at
// the given level (1-indexed).
func (t *Transform) CoefficientsAtLevel(level int) (approx, detail []float64, err error) {
	if level < 1 || level > t.level {
		return nil, nil, errs.Invalid("fwt: level out of [1, %d]: %d", t.level, level)
	}
	if t.base.IsStale() {
		t.recompute()
		t.base.MarkComputed()
	}
	return append([]float64(nil), t.approx[level]...), append([]float64(nil), t.detail[level]...), nil
}

// Reconstruct inverts the transform up to the given level (0 = full
// reconstruction, equal to the original window to ~1e-8).
func (t *Transform) Reconstruct(level int) ([]float64, error) {
	if level < 0 || level > t.level {
		return nil, errs.Invalid("fwt: reconstruct level out of [0, %d]: %d", t.level, level)
	}
	if t.base.IsStale() {
		t.recompute()
		t.base.MarkComputed()
	}
	cur := append([]float64(nil), t.approx[t.level]...)
	for j := t.level; j > level; j-- {
		cur = inverseDWTStep(cur, t.detail[j], t.wv.ScalingFilter(), t.wv.WaveletFilter())
	}
	return cur, nil
}

// Reset clears the window and cached coefficients.
func (t *Transform) Reset() {
	t.base.Reset()
	t.allocate()
}

// AddListener registers a listener for update notifications.
func (t *Transform) AddListener(l streaming.Listener) { t.base.AddListener(l) }

// RemoveListener unregisters a listener.
func (t *Transform) RemoveListener(l streaming.Listener) { t.base.RemoveListener(l) }

// ClearListeners unregisters every listener.
func (t *Transform) ClearListeners() { t.base.ClearListeners() }

// ListenerCount returns the number of registered listeners.
func (t *Transform) ListenerCount() int { return t.base.ListenerCount() }

func (t *Transform) recompute() {
	buf := t.base.Window().ToLinearArray()
	copy(t.approx[0], buf)
	for i := len(buf); i < t.effective; i++ {
		t.approx[0][i] = 0
	}
	h, g := t.wv.ScalingFilter(), t.wv.WaveletFilter()
	for j := 1; j <= t.level; j++ {
		decimatedDWTStep(t.approx[j], t.detail[j], t.approx[j-1], h, g)
	}
}

// decimatedDWTStep computes one level of the decimated periodic DWT:
// approx[k] = sum_l h[l]*src[(2k+l) mod n], detail[k] = sum_l
// g[l]*src[(2k+l) mod n], for k = 0..n/2-1.
func decimatedDWTStep(approx, detail, src, h, g []float64) {
	n := len(src)
	half := n / 2
	for k := 0; k < half; k++ {
		var a, d float64
		for l := range h {
			idx := (2*k + l) % n
			a += h[l] * src[idx]
			d += g[l] * src[idx]
		}
		approx[k] = a
		detail[k] = d
	}
}

// inverseDWTStep inverts one level of the decimated periodic DWT:
// src[2k+l] accumulates h[l]*approx[k] + g[l]*detail[k] for every k, l
// (the transpose of the decimation/filter step), producing a sequence of
// length 2*len(approx).
func inverseDWTStep(approx, detail, h, g []float64) []float64 {
	half := len(approx)
	n := half * 2
	out := make([]float64, n)
	for k := 0; k < half; k++ {
		a, d := approx[k], detail[k]
		for l := range h {
			idx := (2*k + l) % n
			out[idx] += h[l]*a + g[l]*d
		}
	}
	return out
}

func nextPowerOfTwo(n int) int {
	if n <= 1 {
		return 1
	}
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}

func log2Floor(n int) int {
	l := 0
	for n > 1 {
		n >>= 1
		l++
	}
	return l
}
