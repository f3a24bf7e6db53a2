package modwt

import (
	"github.com/cwbudde/algo-wavelet/dsp/core"
	"github.com/cwbudde/algo-wavelet/dsp/streaming"
	"github.com/cwbudde/algo-wavelet/dsp/streaming/errs"
	"github.com/cwbudde/algo-wavelet/dsp/wavelet"
)

// Transform is a streaming MODWT: it maintains L levels of undecimated
// detail coefficients plus the level-L approximation over a sliding
// window of N samples, supporting a true O(affected) incremental update.
//
// approx/detail are stored in the window's raw physical-slot order, not
// the oldest-to-newest order ring.Window.ToLinearArray returns. A given
// physical slot's coefficient only changes when an append overwrites
// that slot (or one within a filter's reach of it), so carrying values
// over between calls is valid in this space; it is not valid in
// ToLinearArray's space, since every retained sample's logical (age-rank)
// index shifts by newSampleCount on every append. Accessors rotate to
// the oldest-to-newest convention at the API boundary (see
// rotateToCanonical), so callers never observe the internal layout.
type Transform struct {
	base  *streaming.Base
	wv    wavelet.Wavelet
	cache *filterCache
	level int

	// approx[j] is V_j (length N) in raw physical-slot order, for
	// j = 0..level. approx[0] mirrors the window's backing storage.
	approx [][]float64
	// detail[j] is W_j (length N) in raw physical-slot order, for
	// j = 1..level.
	detail [][]float64
}

// New constructs a streaming MODWT transform at the given decomposition
// level, over a window sized per cfg.
func New(wv wavelet.Wavelet, level int, cfg streaming.Config) (*Transform, error) {
	if wv == nil {
		return nil, errs.Invalid("modwt: wavelet must not be nil")
	}
	maxLevel := log2Floor(cfg.WindowCapacity)
	if maxLevel < 1 {
		maxLevel = 1
	}
	if level < 1 || level > maxLevel {
		return nil, errs.Invalid("modwt: level must be in [1, %d] for buffer size %d, got %d", maxLevel, cfg.WindowCapacity, level)
	}
	base, err := streaming.NewBase(cfg)
	if err != nil {
		return nil, err
	}
	t := &Transform{
		base:  base,
		wv:    wv,
		cache: newFilterCache(wv.Name(), wv.ScalingFilter(), wv.WaveletFilter()),
		level: level,
	}
	t.allocate(cfg.WindowCapacity)
	return t, nil
}

// allocate (re)sizes approx/detail to hold n coefficients per level, reusing
// each array's existing backing storage via dsp/core.EnsureLen where
// possible (e.g. on Reset, where the capacity is unchanged) instead of
// discarding and reallocating, then zeroing it with dsp/core.Zero.
func (t *Transform) allocate(n int) {
	if len(t.approx) != t.level+1 {
		t.approx = make([][]float64, t.level+1)
	}
	for j := range t.approx {
		t.approx[j] = core.EnsureLen(t.approx[j], n)
		core.Zero(t.approx[j])
	}
	if len(t.detail) != t.level+1 {
		t.detail = make([][]float64, t.level+1)
	}
	for j := 1; j <= t.level; j++ {
		t.detail[j] = core.EnsureLen(t.detail[j], n)
		core.Zero(t.detail[j])
	}
}

// Level returns the decomposition depth L.
func (t *Transform) Level() int { return t.level }

// Update appends samples to the window and recomputes per the configured
// strategy, returning the recomputed coefficient matrix [L+1][N] ([0] is
// the level-L approximation, [j] for j=1..L is the level-j detail — see
// CurrentCoefficients for the exact layout).
func (t *Transform) Update(samples []float64) ([][]float64, error) {
	strategy := t.base.Config().Strategy
	if _, err := t.base.AppendMany(samples); err != nil {
		return nil, err
	}
	switch strategy {
	case streaming.Lazy:
		// defer recompute to the next read
	case streaming.Incremental:
		t.incrementalUpdate(samples)
		t.base.MarkComputed()
	default: // Full
		t.fullRecompute()
		t.base.MarkComputed()
	}
	return t.CurrentCoefficients()
}

// CurrentCoefficients returns a defensive copy of the coefficient matrix,
// rotated to oldest-to-newest order, performing a deferred FULL recompute
// first if the cache is stale (LAZY strategy).
func (t *Transform) CurrentCoefficients() ([][]float64, error) {
	if t.base.IsStale() {
		t.fullRecompute()
		t.base.MarkComputed()
	}
	out := make([][]float64, t.level+1)
	for j := 1; j <= t.level; j++ {
		out[j] = t.rotateToCanonical(t.detail[j])
	}
	out[0] = t.rotateToCanonical(t.approx[t.level])
	return out, nil
}

// Detail returns a defensive copy of the detail coefficients W_j at the
// given level (1-indexed), rotated to oldest-to-newest order.
func (t *Transform) Detail(level int) ([]float64, error) {
	if level < 1 || level > t.level {
		return nil, errs.Invalid("modwt: detail level out of [1, %d]: %d", t.level, level)
	}
	if t.base.IsStale() {
		t.fullRecompute()
		t.base.MarkComputed()
	}
	return t.rotateToCanonical(t.detail[level]), nil
}

// Approximation returns a defensive copy of the level-L approximation V_L,
// rotated to oldest-to-newest order.
func (t *Transform) Approximation() ([]float64, error) {
	if t.base.IsStale() {
		t.fullRecompute()
		t.base.MarkComputed()
	}
	return t.rotateToCanonical(t.approx[t.level]), nil
}

// rotateToCanonical reorders a raw (physical-slot-indexed) coefficient
// array into the oldest-to-newest order ring.Window.ToLinearArray uses,
// so callers never observe the internal rotating-index layout.
func (t *Transform) rotateToCanonical(raw []float64) []float64 {
	w := t.base.Window()
	n := w.Capacity()
	start := w.PhysicalStart()
	out := make([]float64, n)
	for k := 0; k < n; k++ {
		out[k] = raw[(start+k)%n]
	}
	return out
}

// CurrentBuffer returns the window contents, oldest-to-newest.
func (t *Transform) CurrentBuffer() []float64 {
	return t.base.Window().ToLinearArray()
}

// Reset clears the window and all cached coefficients.
func (t *Transform) Reset() {
	t.base.Reset()
	t.allocate(t.base.Config().WindowCapacity)
}

// AddListener registers a listener for update notifications.
func (t *Transform) AddListener(l streaming.Listener) { t.base.AddListener(l) }

// RemoveListener unregisters a listener.
func (t *Transform) RemoveListener(l streaming.Listener) { t.base.RemoveListener(l) }

// ClearListeners unregisters every listener.
func (t *Transform) ClearListeners() { t.base.ClearListeners() }

// ListenerCount returns the number of registered listeners.
func (t *Transform) ListenerCount() int { return t.base.ListenerCount() }

// fullRecompute runs the forward MODWT pyramid from the current window
// contents over all L levels, entirely in raw physical-slot order (see
// the Transform doc comment): circular convolution is shift-invariant
// under a constant relabeling of the time axis, so running it on the
// window's raw storage instead of its oldest-to-newest view yields the
// same coefficients, just consistently rotated by the same offset.
func (t *Transform) fullRecompute() {
	t.base.Window().RawInto(t.approx[0])
	for j := 1; j <= t.level; j++ {
		filt, _ := t.cache.get(j)
		circularConvolve(t.detail[j], t.approx[j-1], filt.g)
		circularConvolve(t.approx[j], t.approx[j-1], filt.h)
	}
}

// incrementalUpdate recomputes only the output slots actually affected by
// appending samples (in order), at every level.
//
// samples overwrites a contiguous arc of physical slots starting at
// changedStart = Head() - len(samples) (the head position before this
// append). Because dst[t] = sum_l filt[l]*src[(t-l) mod N] only reaches
// backward in time, a change to src over an arc of width w starting at
// changedStart can only affect dst over the arc of width w+len(filt)-1
// starting at that *same* changedStart — the arc only grows forward as
// it propagates up the pyramid, it never shifts. This is what lets the
// "unaffected" remainder of each level's array keep the value computed
// on a previous call: unlike re-deriving from ring.Window.ToLinearArray
// every call, a raw physical slot's identity never changes underneath it.
func (t *Transform) incrementalUpdate(samples []float64) {
	n := t.base.Window().Capacity()
	newSampleCount := len(samples)
	if newSampleCount <= 0 {
		return
	}
	if newSampleCount >= n {
		t.fullRecompute()
		return
	}

	// Breakeven: estimate the cumulative affected width at the deepest
	// level (the widest arc); if it already covers the whole window, a
	// full recompute is cheaper (and simpler) than chasing affected arcs.
	width := newSampleCount
	for j := 1; j <= t.level; j++ {
		filt, _ := t.cache.get(j)
		width += len(filt.h) - 1
		if width >= n {
			t.fullRecompute()
			return
		}
	}

	head := t.base.Window().Head()
	changedStart := ((head-newSampleCount)%n + n) % n
	for i, s := range samples {
		t.approx[0][(changedStart+i)%n] = s
	}

	width = newSampleCount
	for j := 1; j <= t.level; j++ {
		filt, _ := t.cache.get(j)
		width += len(filt.h) - 1
		if width > n {
			width = n
		}
		recomputeAffectedIndices(t.detail[j], t.approx[j-1], filt.g, changedStart, width)
		recomputeAffectedIndices(t.approx[j], t.approx[j-1], filt.h, changedStart, width)
	}
}

// circularConvolve computes dst[t] = sum_l filt[l]*src[(t-l) mod N] for
// every t, the MODWT forward pyramid step.
func circularConvolve(dst, src, filt []float64) {
	n := len(src)
	for t := 0; t < n; t++ {
		var sum float64
		for l, c := range filt {
			idx := ((t-l)%n + n) % n
			sum += c * src[idx]
		}
		dst[t] = sum
	}
}

// recomputeAffectedIndices recomputes dst[t] for the `width` physical
// indices starting at changedStart (wrapping mod N) — the only positions
// whose circular-convolution window reaches the slots that changed.
func recomputeAffectedIndices(dst, src, filt []float64, changedStart, width int) {
	n := len(src)
	for k := 0; k < width; k++ {
		t := (changedStart + k) % n
		var sum float64
		for l, c := range filt {
			idx := ((t-l)%n + n) % n
			sum += c * src[idx]
		}
		dst[t] = sum
	}
}

// MRA returns the multiresolution-analysis decomposition: detail
// components D_1..D_L and the level-L smooth S_L, each length N, summing
// to the original window contents to within numerical precision.
func (t *Transform) MRA() (details [][]float64, smooth []float64, err error) {
	if t.base.IsStale() {
		t.fullRecompute()
		t.base.MarkComputed()
	}
	n := t.base.Window().Capacity()

	details = make([][]float64, t.level+1)
	for j := 1; j <= t.level; j++ {
		details[j] = t.inverseExtract(n, j, false)
	}
	smooth = t.inverseExtract(n, t.level, true)
	return details, smooth, nil
}

// inverseExtract runs the inverse MODWT pyramid from level L down to 1,
// injecting only the requested component (the stored detail at
// targetLevel, or the stored level-L approximation when extractApprox is
// true) and zero everywhere else, yielding that component's contribution
// to the original-domain signal.
func (t *Transform) inverseExtract(n, targetLevel int, extractApprox bool) []float64 {
	var v []float64
	if extractApprox {
		v = append([]float64(nil), t.approx[t.level]...)
	} else {
		v = make([]float64, n)
	}

	for j := t.level; j >= 1; j-- {
		filt, _ := t.cache.get(j)
		var w []float64
		if !extractApprox && j == targetLevel {
			w = t.detail[j]
		} else {
			w = make([]float64, n)
		}
		v = inverseStep(v, w, filt.h, filt.g)
	}
	return t.rotateToCanonical(v)
}

// inverseStep computes V_{j-1}[t] = sum_l h[l]*Vj[(t+l) mod N] +
// sum_l g[l]*Wj[(t+l) mod N], the single-level MODWT inverse pyramid step
// (circular correlation with the level-j filters).
func inverseStep(vj, wj, h, g []float64) []float64 {
	n := len(vj)
	out := make([]float64, n)
	for t := 0; t < n; t++ {
		var sum float64
		for l, c := range h {
			idx := (t + l) % n
			sum += c * vj[idx]
		}
		for l, c := range g {
			idx := (t + l) % n
			sum += c * wj[idx]
		}
		out[t] = sum
	}
	return out
}

// log2Floor returns floor(log2(n)) for n >= 1.
func log2Floor(n int) int {
	l := 0
	for n > 1 {
		n >>= 1
		l++
	}
	return l
}

// PrecomputeFilters warms the filter cache for levels 1..L.
func (t *Transform) PrecomputeFilters() error { return t.cache.precompute(t.level) }

// ClearFilterCache empties the filter cache.
func (t *Transform) ClearFilterCache() { t.cache.clear() }
