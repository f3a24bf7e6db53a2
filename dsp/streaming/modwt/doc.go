// Package modwt implements the streaming Maximal-Overlap Discrete Wavelet
// Transform: an undecimated decomposition whose per-level filters are
// derived from a base wavelet by algorithme-a-trous dilation, supporting a
// true O(window) incremental update in addition to full recompute and
// multiresolution-analysis (MRA) reconstruction.
package modwt
