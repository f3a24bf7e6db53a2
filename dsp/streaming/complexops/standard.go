package complexops

import "math"

// standardOps implements Ops directly on []complex128, the simplest
// correct reference back end.
type standardOps struct{}

func (standardOps) Name() string { return "standard" }

func (standardOps) Add(dst, a, b []complex128) {
	for i := range dst {
		dst[i] = a[i] + b[i]
	}
}

func (standardOps) Sub(dst, a, b []complex128) {
	for i := range dst {
		dst[i] = a[i] - b[i]
	}
}

func (standardOps) Mul(dst, a, b []complex128) {
	for i := range dst {
		dst[i] = a[i] * b[i]
	}
}

func (standardOps) ScalarMul(dst, a []complex128, scalar complex128) {
	for i := range dst {
		dst[i] = a[i] * scalar
	}
}

func (standardOps) Conj(dst, a []complex128) {
	for i := range dst {
		dst[i] = complex(real(a[i]), -imag(a[i]))
	}
}

func (standardOps) Magnitude(dst []float64, a []complex128) {
	for i, v := range a {
		re, im := real(v), imag(v)
		dst[i] = math.Sqrt(re*re + im*im)
	}
}

func (standardOps) MulAccumulate(dst, a, b []complex128) {
	for i := range dst {
		dst[i] += a[i] * b[i]
	}
}
