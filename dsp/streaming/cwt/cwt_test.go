package cwt

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-wavelet/dsp/streaming"
	"github.com/cwbudde/algo-wavelet/dsp/wavelet/kernel"
	"github.com/cwbudde/algo-wavelet/internal/testutil"
)

func realParts(c []complex128) []float64 {
	out := make([]float64, len(c))
	for i, v := range c {
		out[i] = real(v)
	}
	return out
}

func smallCfg(capacity int, strategy streaming.UpdateStrategy) streaming.Config {
	cfg, _ := streaming.ApplyOptions(
		streaming.WithWindowCapacity(capacity),
		streaming.WithStrategy(strategy),
		streaming.WithSamplingRate(1000),
	)
	return cfg
}

func TestNewLinearScalesRange(t *testing.T) {
	s, err := NewLinearScales(1, 9, 5)
	if err != nil {
		t.Fatal(err)
	}
	want := []float64{1, 3, 5, 7, 9}
	for i, w := range want {
		if math.Abs(s.At(i)-w) > 1e-12 {
			t.Errorf("At(%d) = %v, want %v", i, s.At(i), w)
		}
	}
}

func TestNewLogScalesConstantRatio(t *testing.T) {
	s, err := NewLogScales(1, 16, 5)
	if err != nil {
		t.Fatal(err)
	}
	ratio := s.At(1) / s.At(0)
	for i := 1; i < s.Len(); i++ {
		got := s.At(i) / s.At(i-1)
		if math.Abs(got-ratio) > 1e-13 {
			t.Errorf("ratio at %d = %v, want %v (constant geometric ratio)", i, got, ratio)
		}
	}
}

func TestScaleRangeValidation(t *testing.T) {
	if _, err := NewLinearScales(0, 10, 4); err == nil {
		t.Fatal("expected error for s_min <= 0")
	}
	if _, err := NewLinearScales(5, 5, 4); err == nil {
		t.Fatal("expected error for s_min >= s_max")
	}
	if _, err := NewLinearScales(1, 10, 1); err == nil {
		t.Fatal("expected error for K < 2")
	}
}

func TestNewRejectsNilKernel(t *testing.T) {
	scales, _ := NewLinearScales(1, 10, 4)
	if _, err := New(nil, scales, smallCfg(32, streaming.Full)); err == nil {
		t.Fatal("expected error for nil kernel")
	}
}

func TestScalogramShapeAndNonNegative(t *testing.T) {
	scales, _ := NewLinearScales(2, 8, 4)
	tr, err := New(kernel.Morlet(6), scales, smallCfg(32, streaming.Full))
	if err != nil {
		t.Fatal(err)
	}
	samples := testutil.DeterministicSine(1000.0/8, 1000, 1, 32)
	if err := tr.Update(samples); err != nil {
		t.Fatal(err)
	}
	scalogram := tr.Scalogram()
	if len(scalogram) != 4 {
		t.Fatalf("scalogram rows = %d, want 4", len(scalogram))
	}
	for k, row := range scalogram {
		if len(row) != 32 {
			t.Fatalf("scalogram row %d length = %d, want 32", k, len(row))
		}
		testutil.RequireFinite(t, row)
		for i, v := range row {
			if v < 0 {
				t.Fatalf("scalogram[%d][%d] = %v, magnitude must be >= 0", k, i, v)
			}
		}
	}
}

func TestIncrementalAgreesWithFullOnDirectPath(t *testing.T) {
	// Window size below the FFT threshold, so both FULL and INCREMENTAL
	// evaluate via the same direct-convolution path and must agree
	// tightly; above the threshold FULL switches to the FFT path, whose
	// circular-wrap boundary handling legitimately differs from direct
	// truncated-support evaluation at columns outside the incremental
	// window, so that comparison is not attempted here.
	scales, _ := NewLinearScales(2, 6, 3)
	const capacity = 32

	trFull, _ := New(kernel.MexicanHat(), scales, smallCfg(capacity, streaming.Full))
	trInc, _ := New(kernel.MexicanHat(), scales, smallCfg(capacity, streaming.Incremental))

	samples := testutil.DeterministicSine(1000.0/6, 1000, 1, capacity)
	if err := trFull.Update(samples); err != nil {
		t.Fatal(err)
	}
	if err := trInc.Update(samples); err != nil {
		t.Fatal(err)
	}

	extra := []float64{0.3, -0.2, 0.5}
	for _, x := range extra {
		if err := trFull.Update([]float64{x}); err != nil {
			t.Fatal(err)
		}
		if err := trInc.Update([]float64{x}); err != nil {
			t.Fatal(err)
		}
	}

	const tol = 1e-9
	for k := 0; k < scales.Len(); k++ {
		fullRow, err := trFull.CoefficientsAtScale(k)
		if err != nil {
			t.Fatal(err)
		}
		incRow, err := trInc.CoefficientsAtScale(k)
		if err != nil {
			t.Fatal(err)
		}
		testutil.RequireFinite(t, realParts(incRow))
		for i := range fullRow {
			diff := fullRow[i] - incRow[i]
			if math.Sqrt(real(diff)*real(diff)+imag(diff)*imag(diff)) > tol {
				t.Fatalf("scale %d index %d: full=%v incremental=%v", k, i, fullRow[i], incRow[i])
			}
		}
	}
}

func TestCoefficientsAtScaleAndTimeBounds(t *testing.T) {
	scales, _ := NewLinearScales(2, 6, 3)
	tr, _ := New(kernel.Morlet(6), scales, smallCfg(16, streaming.Full))
	if err := tr.Update(make([]float64, 16)); err != nil {
		t.Fatal(err)
	}
	if _, err := tr.CoefficientsAtScale(-1); err == nil {
		t.Fatal("expected error for negative scale index")
	}
	if _, err := tr.CoefficientsAtScale(3); err == nil {
		t.Fatal("expected error for scale index == K")
	}
	if _, err := tr.CoefficientsAtTime(-1); err == nil {
		t.Fatal("expected error for negative time index")
	}
	if _, err := tr.CoefficientsAtTime(16); err == nil {
		t.Fatal("expected error for time index == N")
	}
}

func TestResetZeroesCoefficients(t *testing.T) {
	scales, _ := NewLinearScales(2, 6, 3)
	tr, _ := New(kernel.Morlet(6), scales, smallCfg(16, streaming.Full))
	samples := make([]float64, 16)
	for i := range samples {
		samples[i] = float64(i)
	}
	if err := tr.Update(samples); err != nil {
		t.Fatal(err)
	}
	tr.Reset()
	for _, row := range tr.Scalogram() {
		for _, v := range row {
			if v != 0 {
				t.Fatalf("expected all-zero scalogram after reset, got %v", v)
			}
		}
	}
}

func TestCoefficientsMatchesPerScaleRows(t *testing.T) {
	scales, _ := NewLinearScales(2, 6, 3)
	tr, err := New(kernel.Morlet(6), scales, smallCfg(16, streaming.Full))
	if err != nil {
		t.Fatal(err)
	}
	samples := make([]float64, 16)
	for i := range samples {
		samples[i] = math.Sin(2 * math.Pi * float64(i) / 5)
	}
	if err := tr.Update(samples); err != nil {
		t.Fatal(err)
	}
	full, err := tr.Coefficients()
	if err != nil {
		t.Fatal(err)
	}
	if len(full) != scales.Len() {
		t.Fatalf("Coefficients rows = %d, want %d", len(full), scales.Len())
	}
	for k := 0; k < scales.Len(); k++ {
		row, err := tr.CoefficientsAtScale(k)
		if err != nil {
			t.Fatal(err)
		}
		for i := range row {
			if full[k][i] != row[i] {
				t.Fatalf("scale %d index %d: Coefficients=%v CoefficientsAtScale=%v", k, i, full[k][i], row[i])
			}
		}
	}
}
