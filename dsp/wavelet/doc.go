// Package wavelet provides the discrete wavelet filter-pair catalogue
// consumed by the streaming MODWT/FWT/WPT transforms.
//
// Each [Wavelet] exposes a scaling filter (low-pass, "h") and a wavelet
// filter (high-pass, "g") as normalized FIR impulse responses. The
// streaming transforms in dsp/streaming/* treat a Wavelet purely as a pair
// of coefficient tables; no transform logic lives in this package.
package wavelet
