package stft

import (
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"

	"github.com/cwbudde/algo-wavelet/dsp/spectrum"
	"github.com/cwbudde/algo-wavelet/dsp/streaming"
	"github.com/cwbudde/algo-wavelet/dsp/streaming/errs"
	"github.com/cwbudde/algo-wavelet/dsp/window"
)

// Mode selects the streaming DFT evaluation strategy.
type Mode int

const (
	// SlidingDFT maintains N complex bins via the O(N)-per-sample
	// sliding-DFT incremental recurrence; buffer_size may be any size.
	SlidingDFT Mode = iota

	// PowerOfTwoFFT recomputes bins via a cached FFT plan; buffer_size
	// must be a power of two.
	PowerOfTwoFFT
)

// Transform is a streaming DFT/FFT: N complex bins over a sliding window,
// with optional Hann windowing.
type Transform struct {
	base *streaming.Base
	mode Mode

	bins      []complex128
	useWindow bool

	plan *algofft.Plan[complex128]
}

// New constructs a streaming DFT/FFT transform. PowerOfTwoFFT requires a
// power-of-two window capacity.
func New(mode Mode, useWindow bool, cfg streaming.Config) (*Transform, error) {
	if mode == PowerOfTwoFFT && !isPowerOfTwo(cfg.WindowCapacity) {
		return nil, errs.Invalid("stft: FFT mode requires a power-of-two buffer size, got %d", cfg.WindowCapacity)
	}
	base, err := streaming.NewBase(cfg)
	if err != nil {
		return nil, err
	}
	t := &Transform{base: base, mode: mode, useWindow: useWindow}
	t.bins = make([]complex128, cfg.WindowCapacity)
	if mode == PowerOfTwoFFT {
		plan, err := algofft.NewPlan64(cfg.WindowCapacity)
		if err != nil {
			return nil, errs.Invalid("stft: failed to build FFT plan: %v", err)
		}
		t.plan = plan
	}
	return t, nil
}

// SetUseWindow toggles Hann windowing; toggling invalidates the cache.
func (t *Transform) SetUseWindow(enabled bool) {
	if enabled == t.useWindow {
		return
	}
	t.useWindow = enabled
	t.base.Reset()
	t.bins = make([]complex128, t.base.Config().WindowCapacity)
}

// Update appends samples and recomputes per the configured strategy.
func (t *Transform) Update(samples []float64) error {
	strategy := t.base.Config().Strategy
	// The recurrence steps raw samples, so a Hann-windowed transform
	// always recomputes in full.
	sliding := strategy == streaming.Incremental && t.mode == SlidingDFT && !t.useWindow
	for _, s := range samples {
		evicted, hadEvicted := t.evictedSample()
		if sliding && hadEvicted {
			// The sliding recurrence only ever applies a delta on top of the
			// current bins; it must start from a genuine baseline, so force
			// one before this step touches them.
			t.ensureFresh()
		}
		if _, err := t.base.Append(s); err != nil {
			return err
		}
		if sliding && hadEvicted {
			t.slidingStep(s, evicted)
			t.base.MarkComputed()
		}
	}
	switch strategy {
	case streaming.Lazy:
	case streaming.Incremental:
		if !sliding {
			t.fullRecompute()
			t.base.MarkComputed()
		} else if !t.oldestValidAfterAppend() {
			t.fullRecompute()
			t.base.MarkComputed()
		}
	default:
		t.fullRecompute()
		t.base.MarkComputed()
	}
	return nil
}

// evictedSample returns the sample that the next append will overwrite
// (the current oldest), if the window is already full.
func (t *Transform) evictedSample() (float64, bool) {
	w := t.base.Window()
	if w.Size() < w.Capacity() {
		return 0, false
	}
	v, err := w.Get(w.Size() - 1)
	if err != nil {
		return 0, false
	}
	return v, true
}

func (t *Transform) oldestValidAfterAppend() bool {
	return t.base.Window().Size() >= t.base.Window().Capacity()
}

func (t *Transform) ensureFresh() {
	if t.base.IsStale() {
		t.fullRecompute()
		t.base.MarkComputed()
	}
}

// Bins returns a defensive copy of the current complex bins.
func (t *Transform) Bins() ([]complex128, error) {
	t.ensureFresh()
	return append([]complex128(nil), t.bins...), nil
}

// MagnitudeSpectrum returns |X_k| for every bin.
func (t *Transform) MagnitudeSpectrum() []float64 {
	t.ensureFresh()
	return spectrum.Magnitude(t.bins)
}

// PowerSpectrum returns |X_k|^2 for every bin.
func (t *Transform) PowerSpectrum() []float64 {
	t.ensureFresh()
	return spectrum.Power(t.bins)
}

// PhaseSpectrum returns the phase in [-pi, pi] for every bin.
func (t *Transform) PhaseSpectrum() []float64 {
	t.ensureFresh()
	return spectrum.Phase(t.bins)
}

// DominantFrequency returns the frequency in Hz of the highest-magnitude
// bin among bins 1..N/2 (the DC bin is excluded, the Nyquist bin is
// included) at the given sampling rate.
func (t *Transform) DominantFrequency(fs float64) float64 {
	mags := t.MagnitudeSpectrum()
	n := len(mags)
	best, bestMag := 0, -1.0
	for k := 1; k < n/2+1; k++ {
		if mags[k] > bestMag {
			bestMag = mags[k]
			best = k
		}
	}
	return fs * float64(best) / float64(n)
}

// SpectralCentroid returns the magnitude-weighted mean frequency in Hz.
func (t *Transform) SpectralCentroid(fs float64) float64 {
	mags := t.MagnitudeSpectrum()
	bins := t.FrequencyBins(fs)
	var num, den float64
	for i, m := range mags {
		num += bins[i] * m
		den += m
	}
	if den == 0 {
		return 0
	}
	return num / den
}

// FrequencyBins returns the frequency in Hz for each bin: a linear
// sequence 0 .. fs*(N-1)/N for the full-complex DFT.
func (t *Transform) FrequencyBins(fs float64) []float64 {
	n := len(t.bins)
	out := make([]float64, n)
	for i := range out {
		out[i] = fs * float64(i) / float64(n)
	}
	return out
}

// Reset clears the window and bins.
func (t *Transform) Reset() {
	t.base.Reset()
	t.bins = make([]complex128, t.base.Config().WindowCapacity)
}

// AddListener registers a listener for update notifications.
func (t *Transform) AddListener(l streaming.Listener) { t.base.AddListener(l) }

// RemoveListener unregisters a listener.
func (t *Transform) RemoveListener(l streaming.Listener) { t.base.RemoveListener(l) }

// ClearListeners unregisters every listener.
func (t *Transform) ClearListeners() { t.base.ClearListeners() }

// ListenerCount returns the number of registered listeners.
func (t *Transform) ListenerCount() int { return t.base.ListenerCount() }

// slidingStep applies the O(N) sliding-DFT incremental recurrence:
// X_k <- omega_k * (X_k + (s_new - s_old)) for every bin k, where
// omega_k = exp(+j*2*pi*k/N). The sign is positive (not the more
// familiar -j of a forward DFT) because fullRecompute's direct-DFT
// baseline sums over ToLinearArray's oldest-to-newest sample order
// with angle -2*pi*k*i/n: shifting that sum by one sample position
// (oldest dropped, newest appended) multiplies every surviving term
// by exp(+j*2*pi*k/n), which is exactly this recurrence's rotation.
func (t *Transform) slidingStep(sNew, sOld float64) {
	n := len(t.bins)
	delta := complex(sNew-sOld, 0)
	for k := 0; k < n; k++ {
		omega := complex(math.Cos(2*math.Pi*float64(k)/float64(n)), math.Sin(2*math.Pi*float64(k)/float64(n)))
		t.bins[k] = omega * (t.bins[k] + delta)
	}
}

// fullRecompute recomputes every bin from scratch: FFT for
// PowerOfTwoFFT, direct DFT summation for SlidingDFT (also used as the
// baseline the incremental recurrence must agree with).
func (t *Transform) fullRecompute() {
	buf := t.windowedSamples()
	n := len(buf)
	if t.mode == PowerOfTwoFFT && t.plan != nil {
		in := make([]complex128, n)
		for i, v := range buf {
			in[i] = complex(v, 0)
		}
		_ = t.plan.Forward(t.bins, in)
		return
	}
	for k := 0; k < n; k++ {
		var sum complex128
		for i, v := range buf {
			angle := -2 * math.Pi * float64(k) * float64(i) / float64(n)
			sum += complex(v, 0) * complex(math.Cos(angle), math.Sin(angle))
		}
		t.bins[k] = sum
	}
}

func (t *Transform) windowedSamples() []float64 {
	buf := t.base.Window().ToLinearArray()
	n := t.base.Config().WindowCapacity
	if len(buf) < n {
		padded := make([]float64, n)
		copy(padded, buf)
		buf = padded
	}
	if !t.useWindow {
		return buf
	}
	hann, err := window.Hann(n)
	if err != nil {
		return buf
	}
	out := make([]float64, n)
	for i := range out {
		out[i] = buf[i] * hann[i]
	}
	return out
}

func isPowerOfTwo(n int) bool {
	return n > 0 && n&(n-1) == 0
}
