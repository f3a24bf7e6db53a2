package streaming

import (
	"sync/atomic"

	"github.com/cwbudde/algo-wavelet/dsp/streaming/ring"
)

// Base is the shared state embedded by every streaming transform: the
// circular sample window, configuration, listener dispatch, and the
// monotonic counters backing the coefficient cache's freshness check.
//
// Base is not itself a capability interface; transforms expose the
// subsets of Updatable, Resetable, Observable, and Snapshotable that make
// sense for their algorithm, typically by forwarding to the embedded Base
// methods of the same name.
type Base struct {
	window    *ring.Window
	cfg       Config
	listeners listenerSet

	dirty      uint64
	computedAt uint64
	bufferFull bool
}

// NewBase constructs a Base from a validated Config.
func NewBase(cfg Config) (*Base, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	w, err := ring.New(cfg.WindowCapacity)
	if err != nil {
		return nil, err
	}
	return &Base{window: w, cfg: cfg}, nil
}

// Config returns the transform's configuration.
func (b *Base) Config() Config { return b.cfg }

// Window exposes the backing circular window for transform implementations.
func (b *Base) Window() *ring.Window { return b.window }

// Append appends one sample to the window, marks the cache dirty, and
// fires OnUpdate to registered listeners. BufferFull in the resulting
// UpdateEvent is true only the first time the window reaches capacity.
func (b *Base) Append(x float64) UpdateEvent {
	b.window.AppendOne(x)
	return b.afterAppend()
}

// AppendMany appends xs in order and notifies listeners once for the
// whole batch, matching the spec's totally-ordered per-update (not
// per-sample) notification contract for bulk append paths.
func (b *Base) AppendMany(xs []float64) (UpdateEvent, error) {
	if err := b.window.AppendMany(xs); err != nil {
		return UpdateEvent{}, err
	}
	return b.afterAppend(), nil
}

func (b *Base) afterAppend() UpdateEvent {
	atomic.AddUint64(&b.dirty, 1)
	justFilled := false
	if !b.bufferFull && b.window.Size() >= b.window.Capacity() {
		b.bufferFull = true
		justFilled = true
	}
	event := UpdateEvent{
		DirtyCount: atomic.LoadUint64(&b.dirty),
		BufferFull: justFilled,
	}
	b.listeners.dispatch(event)
	return event
}

// MarkComputed records that the cache has been brought up to date with the
// current dirty count; IsStale reports false until the next Append.
func (b *Base) MarkComputed() {
	atomic.StoreUint64(&b.computedAt, atomic.LoadUint64(&b.dirty))
}

// IsStale reports whether samples have been appended since the last
// MarkComputed call.
func (b *Base) IsStale() bool {
	return atomic.LoadUint64(&b.computedAt) != atomic.LoadUint64(&b.dirty)
}

// DirtyCount returns the monotonic update counter.
func (b *Base) DirtyCount() uint64 { return atomic.LoadUint64(&b.dirty) }

// Reset clears the window and freshness counters, allowing BufferFull to
// fire again on a subsequent fill.
func (b *Base) Reset() {
	b.window.Clear()
	atomic.StoreUint64(&b.dirty, 0)
	atomic.StoreUint64(&b.computedAt, 0)
	b.bufferFull = false
}

// AddListener registers l for update notifications.
func (b *Base) AddListener(l Listener) { b.listeners.Add(l) }

// RemoveListener unregisters l.
func (b *Base) RemoveListener(l Listener) { b.listeners.Remove(l) }

// ClearListeners unregisters every listener.
func (b *Base) ClearListeners() { b.listeners.Clear() }

// ListenerCount returns the number of registered listeners.
func (b *Base) ListenerCount() int { return b.listeners.Count() }

// Updatable is implemented by transforms that accept new samples.
type Updatable interface {
	Append(x float64) error
	AppendMany(xs []float64) error
}

// Resetable is implemented by transforms that can clear accumulated state.
type Resetable interface {
	Reset()
}

// Observable is implemented by transforms that notify listeners on update.
type Observable interface {
	AddListener(l Listener)
	RemoveListener(l Listener)
	ClearListeners()
	ListenerCount() int
}

// Snapshotable is implemented by transforms whose coefficients can be read
// out as an immutable point-in-time copy.
type Snapshotable interface {
	// Snapshot returns the transform's current coefficients, recomputing
	// first if the cache is stale.
	Snapshot() (any, error)
}
