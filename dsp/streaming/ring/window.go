package ring

import (
	"github.com/cwbudde/algo-wavelet/dsp/streaming/errs"
)

// Window is a fixed-capacity circular buffer of the most recently observed
// samples. Appending past capacity overwrites the oldest sample.
//
// Window is not safe for concurrent use; callers must serialize access to
// one instance, matching the single-consumer contract of the streaming
// transforms built on it.
type Window struct {
	buf     []float64
	head    int // index one past the most recently written sample
	size    int // current number of valid samples, <= capacity
	wrapped bool
}

// New returns an empty Window with the given fixed capacity.
func New(capacity int) (*Window, error) {
	if capacity <= 0 {
		return nil, errs.Invalid("window capacity must be > 0: %d", capacity)
	}
	return &Window{buf: make([]float64, capacity)}, nil
}

// Capacity returns the fixed capacity.
func (w *Window) Capacity() int { return len(w.buf) }

// Size returns the current number of valid samples (<= Capacity).
func (w *Window) Size() int { return w.size }

// HasWrapped reports whether an append has ever overwritten a slot.
func (w *Window) HasWrapped() bool { return w.wrapped }

// AppendOne writes one sample at the head, advancing it modulo capacity.
func (w *Window) AppendOne(x float64) {
	cap := len(w.buf)
	w.buf[w.head] = x
	w.head = (w.head + 1) % cap
	if w.size < cap {
		w.size++
	} else {
		w.wrapped = true
	}
}

// AppendMany appends xs in order. For small inputs it falls back to
// element-wise appends; for |xs| >= capacity only the last capacity
// elements are materialized via two block copies (prefix/wrap-suffix);
// otherwise at most two block copies are performed into the ring.
func (w *Window) AppendMany(xs []float64) error {
	if xs == nil {
		return errs.Invalid("append_many: samples must not be nil")
	}
	cap := len(w.buf)
	n := len(xs)

	if n == 0 {
		return nil
	}

	const smallThreshold = 8
	if n < smallThreshold {
		for _, x := range xs {
			w.AppendOne(x)
		}
		return nil
	}

	if n >= cap {
		// Only the last `cap` samples survive; they fully overwrite the
		// buffer in at most two contiguous block copies.
		tail := xs[n-cap:]
		firstLen := cap - w.head
		if firstLen > cap {
			firstLen = cap
		}
		copy(w.buf[w.head:], tail[:firstLen])
		copy(w.buf[:w.head], tail[firstLen:])
		// head position is unchanged: a full-buffer overwrite ends exactly
		// where it started.
		if w.size+n > cap {
			w.wrapped = true
		}
		w.size = cap
		return nil
	}

	// n < cap: at most two block copies, one up to the end of the backing
	// array and a wrap-around remainder.
	firstLen := cap - w.head
	if firstLen > n {
		firstLen = n
	}
	copy(w.buf[w.head:w.head+firstLen], xs[:firstLen])
	remaining := n - firstLen
	if remaining > 0 {
		copy(w.buf[:remaining], xs[firstLen:])
	}

	newHead := (w.head + n) % cap
	if w.size+n > cap {
		w.wrapped = true
	}
	if w.size+n >= cap {
		w.size = cap
	} else {
		w.size += n
	}
	w.head = newHead
	return nil
}

// Get returns the sample at recency index i (0 = most recently written).
func (w *Window) Get(i int) (float64, error) {
	if i < 0 || i >= w.size {
		return 0, errs.OutOfBounds("get index %d out of range [0, %d)", i, w.size)
	}
	cap := len(w.buf)
	idx := (w.head - 1 - i + cap*2) % cap
	return w.buf[idx], nil
}

// GetLast returns the most recently written sample.
func (w *Window) GetLast() (float64, error) {
	if w.size == 0 {
		return 0, errs.IllegalState("get_last on empty window")
	}
	v, _ := w.Get(0)
	return v, nil
}

// ToLinearArray returns a new array ordered oldest-to-newest.
func (w *Window) ToLinearArray() []float64 {
	out := make([]float64, w.size)
	w.writeLinearInto(out)
	return out
}

// Head returns the physical slot index the next AppendOne will write to.
func (w *Window) Head() int { return w.head }

// PhysicalStart returns the physical slot index holding the oldest valid
// sample — the same rotation point ToLinearArray/writeLinearInto read
// from. Unwritten slots (before the window first fills) start at 0.
func (w *Window) PhysicalStart() int {
	cap := len(w.buf)
	return (w.head - w.size + cap*2) % cap
}

// RawInto copies the backing storage verbatim into dst (len(dst) ==
// Capacity()), in physical-slot order rather than ToLinearArray's
// oldest-to-newest rotation. A given physical slot keeps its identity
// across calls — appending only overwrites the slots actually written —
// unlike ToLinearArray's view, which re-indexes every retained sample on
// every append. Callers that need an incremental diff of what changed
// between two appends should track Head() and slot identity directly
// instead of re-deriving the linear view.
func (w *Window) RawInto(dst []float64) {
	copy(dst, w.buf)
}

// writeLinearInto fills dst (len(dst) == w.size) oldest-to-newest.
func (w *Window) writeLinearInto(dst []float64) {
	cap := len(w.buf)
	start := (w.head - w.size + cap*2) % cap
	firstLen := cap - start
	if firstLen > w.size {
		firstLen = w.size
	}
	copy(dst[:firstLen], w.buf[start:start+firstLen])
	if firstLen < w.size {
		copy(dst[firstLen:], w.buf[:w.size-firstLen])
	}
}

// Window extracts `length` samples ending `offset` samples before the
// newest sample (offset=0 means the slice ends at the newest sample).
// Where not enough history exists, the result is zero-padded on the left.
func (w *Window) Window(offset, length int) ([]float64, error) {
	if offset < 0 {
		return nil, errs.Invalid("window offset must be >= 0: %d", offset)
	}
	if length <= 0 {
		return nil, errs.Invalid("window length must be > 0: %d", length)
	}

	out := make([]float64, length)
	// out[length-1] corresponds to recency index `offset`,
	// out[length-1-k] corresponds to recency index `offset+k`.
	for k := 0; k < length; k++ {
		recency := offset + (length - 1 - k)
		if recency >= w.size {
			continue // left-zero-padded
		}
		v, _ := w.Get(recency)
		out[k] = v
	}
	return out, nil
}

// Clear resets the window to empty, preserving capacity, and re-arms the
// wrap flag (callers that track "buffer full" notifications should treat a
// Clear as eligible to refire it, matching Reset semantics at the
// streaming-transform layer).
func (w *Window) Clear() {
	for i := range w.buf {
		w.buf[i] = 0
	}
	w.head = 0
	w.size = 0
	w.wrapped = false
}
