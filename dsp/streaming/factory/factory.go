package factory

import (
	"github.com/cwbudde/algo-wavelet/dsp/streaming"
	"github.com/cwbudde/algo-wavelet/dsp/streaming/cwt"
	"github.com/cwbudde/algo-wavelet/dsp/streaming/errs"
	"github.com/cwbudde/algo-wavelet/dsp/streaming/fwt"
	"github.com/cwbudde/algo-wavelet/dsp/streaming/modwt"
	"github.com/cwbudde/algo-wavelet/dsp/streaming/stft"
	"github.com/cwbudde/algo-wavelet/dsp/streaming/wpt"
	"github.com/cwbudde/algo-wavelet/dsp/wavelet"
	"github.com/cwbudde/algo-wavelet/dsp/wavelet/kernel"
)

// Transform is the shared capability surface every streaming transform
// exposes once wrapped by NewTransform. Each concrete package keeps its own
// richer, discoverable API (modwt.Transform.Detail, cwt.Transform.Scalogram,
// and so on); this interface exists only so the factory has something to
// return.
type Transform interface {
	// Update appends samples and returns the transform's coefficient
	// snapshot after recomputing per its configured strategy. The
	// concrete type of the returned value is documented per TransformKind
	// (e.g. modwt returns [][]float64, cwt returns [][]complex128).
	Update(samples []float64) (any, error)

	// CurrentCoefficients returns the present coefficient snapshot
	// without appending anything, recomputing first only if the cache is
	// stale (LAZY strategy).
	CurrentCoefficients() (any, error)

	Reset()
	AddListener(l streaming.Listener)
	RemoveListener(l streaming.Listener)
	ClearListeners()
	ListenerCount() int
}

// Options carries the kind-specific construction parameters that do not fit
// every TransformKind: Wavelet/Level for MODWT/FWT/WPT, Kernel/Scales for
// CWT, UseWindow for FFT/DFT.
type Options struct {
	Wavelet   wavelet.Wavelet
	Level     int
	Kernel    kernel.Kernel
	Scales    cwt.Scales
	UseWindow bool
}

// NewTransform constructs the streaming transform identified by kind, per
// spec.md §4.7's factory. The relevant fields of opts depend on kind: see
// Options.
func NewTransform(kind streaming.TransformKind, cfg streaming.Config, opts Options) (Transform, error) {
	switch kind {
	case streaming.KindMODWT:
		t, err := modwt.New(opts.Wavelet, opts.Level, cfg)
		if err != nil {
			return nil, err
		}
		return modwtAdapter{t}, nil
	case streaming.KindFWT:
		t, err := fwt.New(opts.Wavelet, opts.Level, cfg)
		if err != nil {
			return nil, err
		}
		return fwtAdapter{t}, nil
	case streaming.KindWPT:
		t, err := wpt.New(opts.Wavelet, opts.Level, cfg)
		if err != nil {
			return nil, err
		}
		return wptAdapter{t}, nil
	case streaming.KindCWT:
		t, err := cwt.New(opts.Kernel, opts.Scales, cfg)
		if err != nil {
			return nil, err
		}
		return cwtAdapter{t}, nil
	case streaming.KindFFT:
		t, err := stft.New(stft.PowerOfTwoFFT, opts.UseWindow, cfg)
		if err != nil {
			return nil, err
		}
		return stftAdapter{t}, nil
	case streaming.KindDFT:
		t, err := stft.New(stft.SlidingDFT, opts.UseWindow, cfg)
		if err != nil {
			return nil, err
		}
		return stftAdapter{t}, nil
	default:
		return nil, errs.Invalid("factory: unknown transform kind: %v", kind)
	}
}

type modwtAdapter struct{ t *modwt.Transform }

func (a modwtAdapter) Update(samples []float64) (any, error) { return a.t.Update(samples) }
func (a modwtAdapter) CurrentCoefficients() (any, error)      { return a.t.CurrentCoefficients() }
func (a modwtAdapter) Reset()                                 { a.t.Reset() }
func (a modwtAdapter) AddListener(l streaming.Listener)       { a.t.AddListener(l) }
func (a modwtAdapter) RemoveListener(l streaming.Listener)    { a.t.RemoveListener(l) }
func (a modwtAdapter) ClearListeners()                        { a.t.ClearListeners() }
func (a modwtAdapter) ListenerCount() int                     { return a.t.ListenerCount() }

type fwtAdapter struct{ t *fwt.Transform }

func (a fwtAdapter) Update(samples []float64) (any, error) { return a.t.Update(samples) }
func (a fwtAdapter) CurrentCoefficients() (any, error)      { return a.t.CurrentCoefficients() }
func (a fwtAdapter) Reset()                                 { a.t.Reset() }
func (a fwtAdapter) AddListener(l streaming.Listener)       { a.t.AddListener(l) }
func (a fwtAdapter) RemoveListener(l streaming.Listener)    { a.t.RemoveListener(l) }
func (a fwtAdapter) ClearListeners()                        { a.t.ClearListeners() }
func (a fwtAdapter) ListenerCount() int                     { return a.t.ListenerCount() }

type wptAdapter struct{ t *wpt.Transform }

func (a wptAdapter) Update(samples []float64) (any, error) {
	if err := a.t.Update(samples); err != nil {
		return nil, err
	}
	return a.t.CurrentCoefficients()
}

func (a wptAdapter) CurrentCoefficients() (any, error) { return a.t.CurrentCoefficients() }
func (a wptAdapter) Reset()                            { a.t.Reset() }
func (a wptAdapter) AddListener(l streaming.Listener)   { a.t.AddListener(l) }
func (a wptAdapter) RemoveListener(l streaming.Listener) {
	a.t.RemoveListener(l)
}
func (a wptAdapter) ClearListeners()    { a.t.ClearListeners() }
func (a wptAdapter) ListenerCount() int { return a.t.ListenerCount() }

type cwtAdapter struct{ t *cwt.Transform }

func (a cwtAdapter) Update(samples []float64) (any, error) {
	if err := a.t.Update(samples); err != nil {
		return nil, err
	}
	return a.t.Coefficients()
}

func (a cwtAdapter) CurrentCoefficients() (any, error)   { return a.t.Coefficients() }
func (a cwtAdapter) Reset()                              { a.t.Reset() }
func (a cwtAdapter) AddListener(l streaming.Listener)    { a.t.AddListener(l) }
func (a cwtAdapter) RemoveListener(l streaming.Listener) { a.t.RemoveListener(l) }
func (a cwtAdapter) ClearListeners()                     { a.t.ClearListeners() }
func (a cwtAdapter) ListenerCount() int                  { return a.t.ListenerCount() }

type stftAdapter struct{ t *stft.Transform }

func (a stftAdapter) Update(samples []float64) (any, error) {
	if err := a.t.Update(samples); err != nil {
		return nil, err
	}
	return a.t.Bins()
}

func (a stftAdapter) CurrentCoefficients() (any, error)   { return a.t.Bins() }
func (a stftAdapter) Reset()                              { a.t.Reset() }
func (a stftAdapter) AddListener(l streaming.Listener)    { a.t.AddListener(l) }
func (a stftAdapter) RemoveListener(l streaming.Listener) { a.t.RemoveListener(l) }
func (a stftAdapter) ClearListeners()                     { a.t.ClearListeners() }
func (a stftAdapter) ListenerCount() int                  { return a.t.ListenerCount() }
