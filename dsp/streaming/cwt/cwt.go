package cwt

import (
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"

	"github.com/cwbudde/algo-wavelet/dsp/buffer"
	"github.com/cwbudde/algo-wavelet/dsp/streaming"
	"github.com/cwbudde/algo-wavelet/dsp/streaming/errs"
	"github.com/cwbudde/algo-wavelet/dsp/wavelet/kernel"
)

// fftThreshold is the window size at or above which the FFT evaluation
// path is used instead of direct truncated-support convolution.
const fftThreshold = 64

// Transform is a streaming CWT: a complex coefficient matrix
// [scales][time] evaluated either directly or via cached FFTs.
type Transform struct {
	base   *streaming.Base
	kernel kernel.Kernel
	scales Scales

	// coeffs[k] holds the length-N complex coefficient row for scale k.
	coeffs [][]complex128

	fftPlan *algofft.Plan[complex128]
	fftSize int

	// snapshotBuf caches the zero-padded scratch array windowSnapshot
	// returns while the window hasn't filled yet, so that repeated
	// incremental updates during the fill phase reuse one backing array
	// via Resize/Zero instead of allocating a fresh one every call.
	snapshotBuf *buffer.Buffer
}

// New constructs a streaming CWT transform.
func New(k kernel.Kernel, scales Scales, cfg streaming.Config) (*Transform, error) {
	if k == nil {
		return nil, errs.Invalid("cwt: kernel must not be nil")
	}
	if scales.Len() < 2 {
		return nil, errs.Invalid("cwt: scales must have at least 2 entries")
	}
	base, err := streaming.NewBase(cfg)
	if err != nil {
		return nil, err
	}
	t := &Transform{base: base, kernel: k, scales: scales}
	t.allocate()
	return t, nil
}

func (t *Transform) allocate() {
	n := t.base.Config().WindowCapacity
	t.coeffs = make([][]complex128, t.scales.Len())
	for k := range t.coeffs {
		t.coeffs[k] = make([]complex128, n)
	}
	t.fftPlan = nil
	t.fftSize = 0
}

// UpdateScales replaces the scale grid and recomputes every coefficient
// over the current window contents; the window itself is kept.
func (t *Transform) UpdateScales(scales Scales) {
	t.scales = scales
	t.allocate()
	t.fullRecompute()
	t.base.MarkComputed()
}

// Update appends samples and recomputes per the configured strategy.
func (t *Transform) Update(samples []float64) error {
	strategy := t.base.Config().Strategy
	if _, err := t.base.AppendMany(samples); err != nil {
		return err
	}
	switch strategy {
	case streaming.Lazy:
	case streaming.Incremental:
		t.incrementalUpdate(len(samples))
		t.base.MarkComputed()
	default:
		t.fullRecompute()
		t.base.MarkComputed()
	}
	return nil
}

func (t *Transform) ensureFresh() {
	if t.base.IsStale() {
		t.fullRecompute()
		t.base.MarkComputed()
	}
}

// Scalogram returns |coeff| for every (scale, time) cell.
func (t *Transform) Scalogram() [][]float64 {
	t.ensureFresh()
	n := t.base.Config().WindowCapacity
	out := make([][]float64, t.scales.Len())
	for k := range out {
		out[k] = make([]float64, n)
		for i, c := range t.coeffs[k] {
			out[k][i] = cabs(c)
		}
	}
	return out
}

// Phase returns the phase in [-pi, pi] for every (scale, time) cell.
func (t *Transform) Phase() [][]float64 {
	t.ensureFresh()
	n := t.base.Config().WindowCapacity
	out := make([][]float64, t.scales.Len())
	for k := range out {
		out[k] = make([]float64, n)
		for i, c := range t.coeffs[k] {
			out[k][i] = math.Atan2(imag(c), real(c))
		}
	}
	return out
}

// ScaleEnergies returns, per scale, the sum of |coeff|^2 across time.
func (t *Transform) ScaleEnergies() []float64 {
	t.ensureFresh()
	out := make([]float64, t.scales.Len())
	for k, row := range t.coeffs {
		var e float64
		for _, c := range row {
			m := cabs(c)
			e += m * m
		}
		out[k] = e
	}
	return out
}

// Coefficients returns a defensive copy of the full complex coefficient
// matrix, indexed [scale][time].
func (t *Transform) Coefficients() ([][]complex128, error) {
	t.ensureFresh()
	out := make([][]complex128, len(t.coeffs))
	for k, row := range t.coeffs {
		out[k] = append([]complex128(nil), row...)
	}
	return out, nil
}

// CoefficientsAtScale returns a defensive copy of the complex coefficient
// row for scale index k.
func (t *Transform) CoefficientsAtScale(k int) ([]complex128, error) {
	if k < 0 || k >= t.scales.Len() {
		return nil, errs.Invalid("cwt: scale index out of [0, %d): %d", t.scales.Len(), k)
	}
	t.ensureFresh()
	return append([]complex128(nil), t.coeffs[k]...), nil
}

// CoefficientsAtTime returns a defensive copy of the complex coefficient
// column at time index tIdx (length K).
func (t *Transform) CoefficientsAtTime(tIdx int) ([]complex128, error) {
	n := t.base.Config().WindowCapacity
	if tIdx < 0 || tIdx >= n {
		return nil, errs.Invalid("cwt: time index out of [0, %d): %d", n, tIdx)
	}
	t.ensureFresh()
	out := make([]complex128, t.scales.Len())
	for k := range out {
		out[k] = t.coeffs[k][tIdx]
	}
	return out, nil
}

// Frequencies returns, per scale, the kernel-specific center frequency in
// Hz at the given sampling rate.
func (t *Transform) Frequencies() []float64 {
	out := make([]float64, t.scales.Len())
	for k := range out {
		out[k] = t.kernel.FrequencyFromScale(t.scales.At(k), t.base.Config().SamplingRate)
	}
	return out
}

// TimeAxis returns sample index / sampling rate for every column.
func (t *Transform) TimeAxis() []float64 {
	n := t.base.Config().WindowCapacity
	fs := t.base.Config().SamplingRate
	out := make([]float64, n)
	for i := range out {
		out[i] = float64(i) / fs
	}
	return out
}

// Reset zeroes the coefficient matrix and clears the window.
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

func cabs(c complex128) float64 {
	re, im := real(c), imag(c)
	return math.Sqrt(re*re + im*im)
}

// fullRecompute evaluates every (scale, time) coefficient from scratch,
// choosing the direct or FFT path per scale based on window size.
func (t *Transform) fullRecompute() {
	buf := t.windowSnapshot()
	n := len(buf)
	useFFT := n >= fftThreshold
	var windowFFT []complex128
	if useFFT {
		windowFFT = t.ensureWindowFFT(buf)
	}
	for k := 0; k < t.scales.Len(); k++ {
		scale := t.scales.At(k)
		if useFFT {
			t.evaluateScaleFFT(t.coeffs[k], buf, windowFFT, scale)
		} else {
			t.evaluateScaleDirect(t.coeffs[k], buf, scale)
		}
	}
}

// incrementalUpdate recomputes only the columns actually affected by
// appending newSampleCount samples; all other columns carry over
// unchanged. Unlike a freshly re-linearized window, the window's
// oldest-to-newest column index shifts by newSampleCount on every append
// once the window is full (the oldest samples are evicted), so a carried
// column must first be relabeled (shifted) to the position its sample
// now occupies before anything is recomputed. Truncated-support
// convolution also means the samples evicted off the left edge can
// change a surviving column's result even when that column is far from
// where the new samples landed — any column within the kernel's
// leftward support of the new left edge is re-touched too.
func (t *Transform) incrementalUpdate(newSampleCount int) {
	buf := t.windowSnapshot()
	n := len(buf)
	if newSampleCount <= 0 {
		return
	}
	if newSampleCount >= n {
		t.fullRecompute()
		return
	}

	w := t.base.Window()
	newSize := w.Size()
	oldSize := newSize - newSampleCount
	wasFull := oldSize >= n
	// Filled up to capacity partway through this batch: some of the
	// batch evicted samples and some didn't, so just fall back rather
	// than reason about a partial shift.
	if !wasFull && newSize >= n {
		t.fullRecompute()
		return
	}

	for k := 0; k < t.scales.Len(); k++ {
		scale := t.scales.At(k)
		lo, hi := t.kernel.EffectiveSupport(scale)
		loI, hiI := int(math.Floor(lo)), int(math.Ceil(hi))

		var changeStart, changeEnd int
		if wasFull {
			copy(t.coeffs[k], t.coeffs[k][newSampleCount:])
			changeStart, changeEnd = n-newSampleCount, n
			leftWidth := -loI
			if leftWidth > 0 {
				if leftWidth > n {
					leftWidth = n
				}
				t.recomputeColumnsDirect(t.coeffs[k], buf, scale, 0, leftWidth)
			}
		} else {
			changeStart, changeEnd = oldSize, newSize
		}

		start := changeStart - hiI
		if start < 0 {
			start = 0
		}
		end := changeEnd - loI
		if end > n {
			end = n
		}
		if end > start {
			t.recomputeColumnsDirect(t.coeffs[k], buf, scale, start, end)
		}
	}
}

// evaluateScaleDirect computes the direct truncated-support convolution
// for every time index.
func (t *Transform) evaluateScaleDirect(dst []complex128, buf []float64, scale float64) {
	t.recomputeColumnsDirect(dst, buf, scale, 0, len(buf))
}

func (t *Transform) recomputeColumnsDirect(dst []complex128, buf []float64, scale float64, start, end int) {
	lo, hi := t.kernel.EffectiveSupport(scale)
	invSqrtScale := 1 / math.Sqrt(scale)
	loI, hiI := int(math.Floor(lo)), int(math.Ceil(hi))
	n := len(buf)
	for ti := start; ti < end; ti++ {
		var sum complex128
		for tau := loI; tau <= hiI; tau++ {
			idx := ti + tau
			if idx < 0 || idx >= n {
				continue
			}
			psi := t.kernel.Evaluate(float64(-tau), scale)
			sum += complex(buf[idx], 0) * cmplxConj(psi)
		}
		dst[ti] = complex(invSqrtScale, 0) * sum
	}
}

func cmplxConj(c complex128) complex128 { return complex(real(c), -imag(c)) }

// ensureWindowFFT (re)builds the FFT plan for the current window size and
// returns the forward FFT of the window contents.
func (t *Transform) ensureWindowFFT(buf []float64) []complex128 {
	n := nextPowerOfTwo(len(buf))
	if t.fftPlan == nil || t.fftSize != n {
		plan, err := algofft.NewPlan64(n)
		if err == nil {
			t.fftPlan = plan
			t.fftSize = n
		}
	}
	padded := make([]complex128, n)
	for i, v := range buf {
		padded[i] = complex(v, 0)
	}
	out := make([]complex128, n)
	if t.fftPlan != nil {
		_ = t.fftPlan.Forward(out, padded)
	}
	return out
}

// evaluateScaleFFT computes the scale's coefficient row via
// multiply-in-frequency-domain and inverse FFT: X(w) * conj(Psi_scale(w)),
// inverse-transformed and divided by sqrt(scale).
func (t *Transform) evaluateScaleFFT(dst []complex128, buf []float64, windowFFT []complex128, scale float64) {
	n := len(windowFFT)
	kernelTime := make([]complex128, n)
	lo, _ := t.kernel.EffectiveSupport(scale)
	for i := 0; i < n; i++ {
		// Center the kernel at i=0 with circular wrap, matching the
		// window's periodic (circular) convolution convention.
		tau := i
		if tau > n/2 {
			tau -= n
		}
		kernelTime[i] = cmplxConj(t.kernel.Evaluate(float64(tau), scale))
	}
	_ = lo

	kernelFFT := make([]complex128, n)
	if t.fftPlan != nil {
		_ = t.fftPlan.Forward(kernelFFT, kernelTime)
	}

	product := make([]complex128, n)
	for i := range product {
		product[i] = windowFFT[i] * kernelFFT[i]
	}

	result := make([]complex128, n)
	if t.fftPlan != nil {
		_ = t.fftPlan.Inverse(result, product)
	}

	invSqrtScale := 1 / math.Sqrt(scale)
	copy(dst, result[:len(dst)])
	for i := range dst {
		dst[i] *= complex(invSqrtScale, 0)
	}
}

func (t *Transform) windowSnapshot() []float64 {
	n := t.base.Config().WindowCapacity
	raw := t.base.Window().ToLinearArray()
	if len(raw) == n {
		return raw
	}
	if t.snapshotBuf == nil {
		t.snapshotBuf = buffer.New(n)
	} else {
		t.snapshotBuf.Resize(n)
		t.snapshotBuf.Zero()
	}
	copy(t.snapshotBuf.Samples(), raw)
	return t.snapshotBuf.Samples()
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
