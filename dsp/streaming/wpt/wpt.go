package wpt

import (
	"github.com/cwbudde/algo-wavelet/dsp/core"
	"github.com/cwbudde/algo-wavelet/dsp/streaming"
	"github.com/cwbudde/algo-wavelet/dsp/streaming/errs"
	"github.com/cwbudde/algo-wavelet/dsp/wavelet"
)

// Transform is a streaming WPT: a full binary tree of decimated
// decompositions over a power-of-two window. packets[j] holds 2^j
// packets of length effective/2^j.
type Transform struct {
	base      *streaming.Base
	wv        wavelet.Wavelet
	level     int
	effective int

	packets [][][]float64
}

// New constructs a streaming WPT at the given level over cfg's window,
// rounding the configured capacity up to the next power of two.
func New(wv wavelet.Wavelet, level int, cfg streaming.Config) (*Transform, error) {
	if wv == nil {
		return nil, errs.Invalid("wpt: wavelet must not be nil")
	}
	effective := nextPowerOfTwo(cfg.WindowCapacity)
	maxLevel := log2Floor(effective)
	if level < 1 || level > maxLevel {
		return nil, errs.Invalid("wpt: level must be in [1, %d] for buffer size %d, got %d", maxLevel, effective, level)
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

// allocate (re)sizes the packet tree, reusing each packet's backing storage
// via dsp/core.EnsureLen and zeroing it with dsp/core.Zero rather than
// discarding and reallocating on every Reset.
func (t *Transform) allocate() {
	if len(t.packets) != t.level+1 {
		t.packets = make([][][]float64, t.level+1)
	}
	for j := 0; j <= t.level; j++ {
		count := 1 << uint(j)
		if len(t.packets[j]) != count {
			t.packets[j] = make([][]float64, count)
		}
		packetLen := t.effective / count
		for p := 0; p < count; p++ {
			t.packets[j][p] = core.EnsureLen(t.packets[j][p], packetLen)
			core.Zero(t.packets[j][p])
		}
	}
}

// EffectiveBufferSize returns the power-of-two window capacity actually in
// use.
func (t *Transform) EffectiveBufferSize() int { return t.effective }

// Level returns the decomposition depth L.
func (t *Transform) Level() int { return t.level }

// Update appends samples and recomputes (WPT has no incremental path;
// INCREMENTAL strategy degrades to FULL).
func (t *Transform) Update(samples []float64) error {
	if _, err := t.base.AppendMany(samples); err != nil {
		return err
	}
	if t.base.Config().Strategy != streaming.Lazy {
		t.recompute()
		t.base.MarkComputed()
	}
	return nil
}

// CurrentCoefficients returns defensive copies of every packet at the
// deepest decomposition level, in packet-index order.
func (t *Transform) CurrentCoefficients() ([][]float64, error) {
	return t.AllPacketsAtLevel(t.level)
}

// Packet returns a defensive copy of the packet at (level, index).
func (t *Transform) Packet(level, index int) ([]float64, error) {
	if err := t.validateLevelIndex(level, index); err != nil {
		return nil, err
	}
	t.ensureFresh()
	return append([]float64(nil), t.packets[level][index]...), nil
}

// AllPacketsAtLevel returns defensive copies of every packet at the given
// level, in packet-index order.
func (t *Transform) AllPacketsAtLevel(level int) ([][]float64, error) {
	if level < 0 || level > t.level {
		return nil, errs.Invalid("wpt: level out of [0, %d]: %d", t.level, level)
	}
	t.ensureFresh()
	out := make([][]float64, len(t.packets[level]))
	for i, p := range t.packets[level] {
		out[i] = append([]float64(nil), p...)
	}
	return out, nil
}

// PacketEnergies returns the sum-of-squares energy of every packet at the
// given level. Parseval's relation holds: the sum over this slice equals
// the window's total energy to within ~1% relative.
func (t *Transform) PacketEnergies(level int) ([]float64, error) {
	if level < 0 || level > t.level {
		return nil, errs.Invalid("wpt: level out of [0, %d]: %d", t.level, level)
	}
	t.ensureFresh()
	out := make([]float64, len(t.packets[level]))
	for i, p := range t.packets[level] {
		var e float64
		for _, x := range p {
			e += x * x
		}
		out[i] = e
	}
	return out, nil
}

// PacketPath returns, for every level 0..L, the index of the packet whose
// dyadic time block contains timeIndex.
func (t *Transform) PacketPath(timeIndex int) ([]int, error) {
	if timeIndex < 0 || timeIndex >= t.effective {
		return nil, errs.Invalid("wpt: time index out of [0, %d): %d", t.effective, timeIndex)
	}
	path := make([]int, t.level+1)
	for j := 0; j <= t.level; j++ {
		count := 1 << uint(j)
		packetLen := t.effective / count
		path[j] = timeIndex / packetLen
	}
	return path, nil
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

func (t *Transform) ensureFresh() {
	if t.base.IsStale() {
		t.recompute()
		t.base.MarkComputed()
	}
}

func (t *Transform) validateLevelIndex(level, index int) error {
	if level < 0 || level > t.level {
		return errs.Invalid("wpt: level out of [0, %d]: %d", t.level, level)
	}
	if index < 0 || index >= (1<<uint(level)) {
		return errs.Invalid("wpt: packet index out of [0, %d): %d", 1<<uint(level), index)
	}
	return nil
}

func (t *Transform) recompute() {
	buf := t.base.Window().ToLinearArray()
	copy(t.packets[0][0], buf)
	for i := len(buf); i < t.effective; i++ {
		t.packets[0][0][i] = 0
	}
	h, g := t.wv.ScalingFilter(), t.wv.WaveletFilter()
	for j := 1; j <= t.level; j++ {
		parents := t.packets[j-1]
		for p, parent := range parents {
			approx := t.packets[j][2*p]
			detail := t.packets[j][2*p+1]
			decimatedDWTStep(approx, detail, parent, h, g)
		}
	}
}

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
