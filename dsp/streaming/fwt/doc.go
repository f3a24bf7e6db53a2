// Package fwt implements the streaming Fast Wavelet Transform: a
// full-recompute decimated pyramid over a power-of-two window, producing
// the flat coefficient vector [A_L, D_L, ..., D_1] and supporting partial
// and full reconstruction.
package fwt
