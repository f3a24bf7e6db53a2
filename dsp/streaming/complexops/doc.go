// Package complexops implements the element-wise complex bulk operations
// shared by the streaming transforms that carry complex coefficients (CWT,
// STFT): add, subtract, multiply, scalar-multiply, conjugate, magnitude,
// and multiply-accumulate.
//
// Two back ends are provided. [StandardOps] operates directly on
// []complex128. [SplitOps] operates on separate real/imaginary []float64
// arrays dispatched through internal/vecmath's SIMD-selected primitives,
// which is friendlier to auto-vectorization than an array of structs.
// [Arena] converts between the two representations with a per-caller
// scratch buffer so the conversion costs at most one allocation per
// capacity-growth step, not one per call.
package complexops
