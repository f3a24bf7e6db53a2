// Package cwt implements the streaming Continuous Wavelet Transform: a
// complex coefficient matrix [scales][time] evaluated either directly
// (truncated-support convolution) or via cached FFTs, with an incremental
// strategy that shifts the existing columns and recomputes only the
// columns within one kernel-support width of either window edge.
package cwt
