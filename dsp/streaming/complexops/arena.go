package complexops

// Arena is a per-caller scratch buffer for converting between []complex128
// and split real/imag []float64 representations, amortizing allocation
// across repeated calls of similar size. It is not safe for concurrent
// use: the spec's concurrency model makes arenas per-thread by
// construction, requiring no internal locking.
type Arena struct {
	re, im []float64
}

const (
	arenaGrowthFactor    = 1.5
	arenaCapacityLimit   = 65536
	arenaShrinkThreshold = 4096
	arenaShrinkDivisor   = 4
)

// Acquire returns real/imaginary scratch slices of length n, reusing the
// arena's backing arrays when they are already large enough and growing
// them by 1.5x (capped at arenaCapacityLimit) otherwise. The arena shrinks
// its backing arrays when a request is smaller than a quarter of the
// current capacity and that capacity exceeds arenaShrinkThreshold — a
// distinct, much smaller threshold than the growth cap, so an arena that
// grew large but never all the way to arenaCapacityLimit still releases
// memory once calls shrink back down, instead of pinning it indefinitely.
func (a *Arena) Acquire(n int) (re, im []float64) {
	if cap(a.re) < n {
		newCap := n
		grown := int(float64(cap(a.re)) * arenaGrowthFactor)
		if grown > newCap {
			newCap = grown
		}
		if newCap > arenaCapacityLimit && n <= arenaCapacityLimit {
			newCap = arenaCapacityLimit
		}
		a.re = make([]float64, newCap)
		a.im = make([]float64, newCap)
	} else if cap(a.re) > arenaShrinkThreshold && n < cap(a.re)/arenaShrinkDivisor {
		a.re = make([]float64, n)
		a.im = make([]float64, n)
	}
	return a.re[:n], a.im[:n]
}

// Release drops the arena's backing arrays, returning them to the garbage
// collector. Long-running pooled goroutines that own an Arena should call
// Release when finished, matching the arena-clear hook the spec calls for
// in place of Go's lack of OS-thread-affinity primitives.
func (a *Arena) Release() {
	a.re = nil
	a.im = nil
}

// ToSplit unpacks a into the arena's scratch buffers, reusing them across
// calls instead of allocating fresh real/imag arrays each time.
func (a *Arena) ToSplit(src []complex128) (re, im []float64) {
	re, im = a.Acquire(len(src))
	for i, v := range src {
		re[i] = real(v)
		im[i] = imag(v)
	}
	return re, im
}

// FromSplit packs re/im back into dst.
func (a *Arena) FromSplit(dst []complex128, re, im []float64) {
	for i := range dst {
		dst[i] = complex(re[i], im[i])
	}
}
