// Package kernel provides continuous wavelet kernels consumed by the
// streaming CWT transform (dsp/streaming/cwt).
//
// Each [Kernel] is a pure mathematical function: it has no dependency on
// the streaming core and carries no state beyond its shape parameters.
package kernel
