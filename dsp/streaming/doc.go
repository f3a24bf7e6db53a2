// Package streaming provides the shared update/notification core reused by
// every streaming transform (modwt, fwt, wpt, cwt, stft): a circular sample
// window, an update-strategy-aware recompute scheduler, a coefficient
// freshness cache, and a panic-safe observer dispatch list.
//
// Individual transforms embed [Base] and implement the incremental or
// full-recompute step appropriate to their algorithm; this package owns
// only the parts common to all of them.
package streaming
