package modwt

import (
	"math"
	"sync"

	"github.com/cwbudde/algo-wavelet/dsp/streaming/errs"
)

// levelFilter holds the à-trous-dilated, √2-normalized scaling and wavelet
// filters for one decomposition level.
type levelFilter struct {
	h []float64 // scaling filter at this level
	g []float64 // wavelet filter at this level
}

// filterCacheKey identifies one cached entry.
type filterCacheKey struct {
	wavelet string
	level   int
}

// filterCache is a write-once/read-many store of per-(wavelet, level)
// dilated filters. Once an entry is populated it is never mutated, so
// reads never block once the entry exists; only a miss takes the write
// lock.
type filterCache struct {
	mu      sync.RWMutex
	entries map[filterCacheKey]levelFilter
	baseH   []float64
	baseG   []float64
	name    string
}

func newFilterCache(name string, baseH, baseG []float64) *filterCache {
	return &filterCache{
		entries: make(map[filterCacheKey]levelFilter),
		baseH:   baseH,
		baseG:   baseG,
		name:    name,
	}
}

// get returns the dilated filters for level j (1-indexed), computing and
// caching them on first request.
func (c *filterCache) get(level int) (levelFilter, error) {
	if level < 1 {
		return levelFilter{}, errs.Invalid("modwt filter level must be >= 1: %d", level)
	}
	key := filterCacheKey{wavelet: c.name, level: level}

	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()
	if ok {
		return entry, nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if entry, ok := c.entries[key]; ok {
		return entry, nil
	}
	entry = dilateFilters(c.baseH, c.baseG, level)
	c.entries[key] = entry
	return entry, nil
}

// precompute warms the cache for levels 1..L.
func (c *filterCache) precompute(maxLevel int) error {
	for j := 1; j <= maxLevel; j++ {
		if _, err := c.get(j); err != nil {
			return err
		}
	}
	return nil
}

// clear empties the cache, forcing recomputation on next access.
func (c *filterCache) clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[filterCacheKey]levelFilter)
}

// dilateFilters builds the level-j scaling/wavelet filters from the base
// filters by algorithme-à-trous dilation with zero-insertion at stride
// 2^(j-1). Each level's dilated filter is the base filter divided by √2
// once; because level j filters the level j-1 approximation, the
// equivalent filter after j levels carries the 2^(-j/2) normalization.
func dilateFilters(baseH, baseG []float64, level int) levelFilter {
	stride := 1 << uint(level-1)
	norm := 1 / math.Sqrt2

	dilate := func(base []float64) []float64 {
		length := (len(base)-1)*stride + 1
		out := make([]float64, length)
		for i, v := range base {
			out[i*stride] = v * norm
		}
		return out
	}

	return levelFilter{h: dilate(baseH), g: dilate(baseG)}
}
