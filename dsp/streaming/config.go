package streaming

import "github.com/cwbudde/algo-wavelet/dsp/streaming/errs"

// UpdateStrategy selects how a streaming transform recomputes its
// coefficients in response to newly appended samples.
type UpdateStrategy int

const (
	// Full recomputes every coefficient from the entire window on every
	// update. Simplest, most expensive; always numerically exact.
	Full UpdateStrategy = iota

	// Incremental updates only the coefficients affected by the newest
	// sample(s), where the transform supports it. Falls back to Full when
	// no incremental path exists for the current configuration.
	Incremental

	// Lazy defers recomputation until an accessor actually reads a
	// coefficient, then recomputes (fully or incrementally, per the
	// transform's capability) exactly once before returning it.
	Lazy
)

func (s UpdateStrategy) String() string {
	switch s {
	case Full:
		return "full"
	case Incremental:
		return "incremental"
	case Lazy:
		return "lazy"
	default:
		return "unknown"
	}
}

// AutoMaxLevel requests that MaxLevel be derived from WindowCapacity as
// floor(log2(buffer_size)) instead of being fixed up front.
const AutoMaxLevel = -1

// Config holds the settings shared by every streaming transform.
type Config struct {
	// WindowCapacity is the number of samples retained by the circular
	// window backing the transform.
	WindowCapacity int

	// SamplingRate in Hz, used by transforms that report frequencies
	// (CWT, STFT).
	SamplingRate float64

	// Strategy selects the recompute discipline applied on each update.
	Strategy UpdateStrategy

	// MaxLevel bounds the decomposition depth a multilevel transform
	// (MODWT, FWT, WPT) may use. AutoMaxLevel (-1) derives it from
	// WindowCapacity as floor(log2(buffer_size)); otherwise it must be in
	// [0, floor(log2(buffer_size))]. Transforms that take an explicit
	// level constructor argument (modwt.New, fwt.New, wpt.New) validate
	// that argument against this same bound; MaxLevel exists so callers
	// that don't want to compute floor(log2(N)) themselves can ask for
	// EffectiveMaxLevel() instead.
	MaxLevel int

	// CacheIntermediateResults enables retaining per-level intermediate
	// coefficients (rather than only the deepest level) so repeated
	// reads of shallower levels don't force recomputation. Transforms
	// that always retain every level (MODWT, WPT) treat this as a no-op.
	CacheIntermediateResults bool

	// ParallelProcessingEnabled allows a transform to evaluate
	// independent units of work (CWT scale rows, WPT sibling packets)
	// concurrently instead of sequentially.
	ParallelProcessingEnabled bool

	// UpdateBatchSize hints the preferred number of samples a caller
	// should accumulate before calling Update, amortizing per-call
	// overhead. Transforms do not enforce it; Update accepts any batch
	// size.
	UpdateBatchSize int
}

// EffectiveMaxLevel resolves MaxLevel against WindowCapacity: AutoMaxLevel
// becomes floor(log2(WindowCapacity)), otherwise MaxLevel is returned
// unchanged.
func (c Config) EffectiveMaxLevel() int {
	if c.MaxLevel == AutoMaxLevel {
		return log2Floor(c.WindowCapacity)
	}
	return c.MaxLevel
}

func log2Floor(n int) int {
	l := 0
	for n > 1 {
		n >>= 1
		l++
	}
	return l
}

// Option mutates a Config.
type Option func(*Config)

// DefaultConfig returns a Config with a modest window and Full recompute,
// the always-correct baseline every transform falls back to.
func DefaultConfig() Config {
	return Config{
		WindowCapacity:            256,
		SamplingRate:              48000,
		Strategy:                  Full,
		MaxLevel:                  AutoMaxLevel,
		CacheIntermediateResults:  true,
		ParallelProcessingEnabled: false,
		UpdateBatchSize:           1,
	}
}

// WithWindowCapacity sets the circular window's fixed capacity.
func WithWindowCapacity(capacity int) Option {
	return func(cfg *Config) {
		if capacity > 0 {
			cfg.WindowCapacity = capacity
		}
	}
}

// WithSamplingRate sets the sampling rate used for frequency reporting.
func WithSamplingRate(samplingRate float64) Option {
	return func(cfg *Config) {
		if samplingRate > 0 {
			cfg.SamplingRate = samplingRate
		}
	}
}

// WithStrategy sets the update strategy.
func WithStrategy(strategy UpdateStrategy) Option {
	return func(cfg *Config) {
		cfg.Strategy = strategy
	}
}

// WithMaxLevel sets the decomposition-depth bound. Pass AutoMaxLevel to
// derive it from WindowCapacity instead.
func WithMaxLevel(maxLevel int) Option {
	return func(cfg *Config) {
		cfg.MaxLevel = maxLevel
	}
}

// WithCacheIntermediateResults toggles retaining per-level intermediate
// coefficients.
func WithCacheIntermediateResults(enabled bool) Option {
	return func(cfg *Config) {
		cfg.CacheIntermediateResults = enabled
	}
}

// WithParallelProcessingEnabled toggles concurrent evaluation of
// independent units of work, where a transform supports it.
func WithParallelProcessingEnabled(enabled bool) Option {
	return func(cfg *Config) {
		cfg.ParallelProcessingEnabled = enabled
	}
}

// WithUpdateBatchSize sets the preferred Update batch size hint.
func WithUpdateBatchSize(size int) Option {
	return func(cfg *Config) {
		if size > 0 {
			cfg.UpdateBatchSize = size
		}
	}
}

// ApplyOptions applies zero or more options to DefaultConfig and validates
// the result.
func ApplyOptions(opts ...Option) (Config, error) {
	cfg := DefaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports whether the config's fields are self-consistent.
func (c Config) Validate() error {
	if c.WindowCapacity <= 0 {
		return errs.Invalid("window capacity must be > 0: %d", c.WindowCapacity)
	}
	if c.SamplingRate <= 0 {
		return errs.Invalid("sampling rate must be > 0: %v", c.SamplingRate)
	}
	if c.MaxLevel != AutoMaxLevel {
		maxAllowed := log2Floor(c.WindowCapacity)
		if c.MaxLevel < 0 || c.MaxLevel > maxAllowed {
			return errs.Invalid("max level must be %d (auto) or in [0, %d] for buffer size %d, got %d",
				AutoMaxLevel, maxAllowed, c.WindowCapacity, c.MaxLevel)
		}
	}
	if c.UpdateBatchSize < 0 {
		return errs.Invalid("update batch size must be >= 0: %d", c.UpdateBatchSize)
	}
	return nil
}
