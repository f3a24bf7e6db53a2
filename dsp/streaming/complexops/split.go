package complexops

import "github.com/cwbudde/algo-wavelet/internal/vecmath"

// splitOps implements Ops by unpacking []complex128 into separate
// real/imaginary []float64 arrays and dispatching through
// internal/vecmath's SIMD-selected block primitives, then repacking. The
// unpack/repack cost is paid once per call, and fresh real/imaginary
// arrays are allocated on every call (no [Arena] is used here).
type splitOps struct{}

func (splitOps) Name() string { return "split" }

func unpack(a []complex128) (re, im []float64) {
	re = make([]float64, len(a))
	im = make([]float64, len(a))
	for i, v := range a {
		re[i] = real(v)
		im[i] = imag(v)
	}
	return re, im
}

func pack(dst []complex128, re, im []float64) {
	for i := range dst {
		dst[i] = complex(re[i], im[i])
	}
}

func (splitOps) Add(dst, a, b []complex128) {
	aRe, aIm := unpack(a)
	bRe, bIm := unpack(b)
	outRe := make([]float64, len(dst))
	outIm := make([]float64, len(dst))
	vecmath.AddBlock(outRe, aRe, bRe)
	vecmath.AddBlock(outIm, aIm, bIm)
	pack(dst, outRe, outIm)
}

func (splitOps) Sub(dst, a, b []complex128) {
	aRe, aIm := unpack(a)
	bRe, bIm := unpack(b)
	negRe := make([]float64, len(dst))
	negIm := make([]float64, len(dst))
	vecmath.ScaleBlock(negRe, bRe, -1)
	vecmath.ScaleBlock(negIm, bIm, -1)
	outRe := make([]float64, len(dst))
	outIm := make([]float64, len(dst))
	vecmath.AddBlock(outRe, aRe, negRe)
	vecmath.AddBlock(outIm, aIm, negIm)
	pack(dst, outRe, outIm)
}

// Mul computes complex multiplication (ac-bd) + (ad+bc)i via four
// real-array element-wise multiplies composed from vecmath's MulBlock.
func (splitOps) Mul(dst, a, b []complex128) {
	aRe, aIm := unpack(a)
	bRe, bIm := unpack(b)
	n := len(dst)
	ac := make([]float64, n)
	bd := make([]float64, n)
	ad := make([]float64, n)
	bc := make([]float64, n)
	vecmath.MulBlock(ac, aRe, bRe)
	vecmath.MulBlock(bd, aIm, bIm)
	vecmath.MulBlock(ad, aRe, bIm)
	vecmath.MulBlock(bc, aIm, bRe)

	outRe := make([]float64, n)
	outIm := make([]float64, n)
	negBd := make([]float64, n)
	vecmath.ScaleBlock(negBd, bd, -1)
	vecmath.AddBlock(outRe, ac, negBd)
	vecmath.AddBlock(outIm, ad, bc)
	pack(dst, outRe, outIm)
}

func (splitOps) ScalarMul(dst, a []complex128, scalar complex128) {
	aRe, aIm := unpack(a)
	sr, si := real(scalar), imag(scalar)
	n := len(dst)
	arSr := make([]float64, n)
	aiSi := make([]float64, n)
	arSi := make([]float64, n)
	aiSr := make([]float64, n)
	vecmath.ScaleBlock(arSr, aRe, sr)
	vecmath.ScaleBlock(aiSi, aIm, si)
	vecmath.ScaleBlock(arSi, aRe, si)
	vecmath.ScaleBlock(aiSr, aIm, sr)

	outRe := make([]float64, n)
	outIm := make([]float64, n)
	negAiSi := make([]float64, n)
	vecmath.ScaleBlock(negAiSi, aiSi, -1)
	vecmath.AddBlock(outRe, arSr, negAiSi)
	vecmath.AddBlock(outIm, arSi, aiSr)
	pack(dst, outRe, outIm)
}

func (splitOps) Conj(dst, a []complex128) {
	aRe, aIm := unpack(a)
	negIm := make([]float64, len(dst))
	vecmath.ScaleBlock(negIm, aIm, -1)
	pack(dst, aRe, negIm)
}

func (splitOps) Magnitude(dst []float64, a []complex128) {
	aRe, aIm := unpack(a)
	vecmath.Magnitude(dst, aRe, aIm)
}

func (splitOps) MulAccumulate(dst, a, b []complex128) {
	prod := make([]complex128, len(dst))
	splitOps{}.Mul(prod, a, b)
	prodRe, prodIm := unpack(prod)
	dstRe, dstIm := unpack(dst)
	outRe := make([]float64, len(dst))
	outIm := make([]float64, len(dst))
	vecmath.AddBlock(outRe, dstRe, prodRe)
	vecmath.AddBlock(outIm, dstIm, prodIm)
	pack(dst, outRe, outIm)
}
