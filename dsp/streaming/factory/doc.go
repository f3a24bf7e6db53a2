// Package factory constructs a concrete streaming transform from a
// TransformKind and wraps it behind the uniform Transform interface, so a
// caller that only knows "give me a streaming MODWT of this wavelet" does
// not need to import every transform package directly.
//
// It lives apart from dsp/streaming itself because each concrete transform
// package (modwt, fwt, wpt, cwt, stft) imports dsp/streaming for Base and
// Config; dsp/streaming constructing them in turn would be an import cycle.
package factory
