// Package stft implements the streaming Short-Time Fourier Transform: a
// sliding-DFT variant with a true O(N) per-sample incremental recurrence,
// and a power-of-two FFT variant, both maintaining N complex bins over the
// sliding window with optional Hann windowing and derived spectra.
package stft
