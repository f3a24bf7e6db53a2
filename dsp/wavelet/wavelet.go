package wavelet

import "fmt"

// Wavelet describes a discrete wavelet filter pair: a scaling (low-pass)
// filter and a wavelet (high-pass) filter, both normalized so their
// coefficients sum in quadrature to 1 (||h||^2 = 1).
type Wavelet interface {
	// Name identifies the wavelet, used as part of filter-cache keys.
	Name() string

	// ScalingFilter returns the low-pass impulse response h.
	// Callers must not mutate the returned slice.
	ScalingFilter() []float64

	// WaveletFilter returns the high-pass impulse response g.
	// Callers must not mutate the returned slice.
	WaveletFilter() []float64
}

// filterPair is the common Wavelet implementation for every concrete
// wavelet below: a name plus a pre-derived quadrature-mirror filter pair.
type filterPair struct {
	name string
	h    []float64
	g    []float64
}

func (f *filterPair) Name() string            { return f.name }
func (f *filterPair) ScalingFilter() []float64 { return f.h }
func (f *filterPair) WaveletFilter() []float64 { return f.g }

// qmf derives the high-pass wavelet filter from the low-pass scaling
// filter via the quadrature-mirror relation g[k] = (-1)^k * h[N-1-k].
func qmf(h []float64) []float64 {
	n := len(h)
	g := make([]float64, n)
	for k := 0; k < n; k++ {
		sign := 1.0
		if k%2 != 0 {
			sign = -1
		}
		g[k] = sign * h[n-1-k]
	}
	return g
}

func newFilterPair(name string, h []float64) *filterPair {
	return &filterPair{name: name, h: h, g: qmf(h)}
}

// Haar returns the Haar wavelet (2-tap Daubechies db1).
func Haar() Wavelet {
	const s = 0.7071067811865476 // 1/sqrt(2)
	return newFilterPair("haar", []float64{s, s})
}

// daubechiesTaps holds literal scaling-filter coefficients for the
// supported Daubechies orders, indexed by number of taps.
var daubechiesTaps = map[int][]float64{
	4: {
		0.48296291314453414,
		0.83651630373780790,
		0.22414386804201338,
		-0.12940952255126038,
	},
	6: {
		0.33267055295008261,
		0.80689150931109257,
		0.45987750211849157,
		-0.13501102001025458,
		-0.08544127388202666,
		0.03522629188570953,
	},
	8: {
		0.23037781330889650,
		0.71484657055291565,
		0.63088076792959099,
		-0.02798376941685985,
		-0.18703481171909308,
		0.03084138183556090,
		0.03288301166698294,
		-0.01059740178506903,
	},
	10: {
		0.16010239797419291,
		0.60382926979718967,
		0.72430852843777292,
		0.13842814590132074,
		-0.24229488706619015,
		-0.03224486958502952,
		0.07757149384006515,
		-0.00624149021301011,
		-0.01258075199908199,
		0.00333572528547377,
	},
	12: {
		0.11154074335008017,
		0.49462389039845307,
		0.75113390802109535,
		0.31525035170919762,
		-0.22626469396516913,
		-0.12976686756709563,
		0.09750160558707936,
		0.02752286553001629,
		-0.03158203931748602,
		0.00055384220116149,
		0.00477725751094551,
		-0.00107730108499558,
	},
}

// Daubechies returns the Daubechies wavelet with the given number of
// filter taps (one of 4, 6, 8, 10, 12; taps = 2*order). An unsupported
// tap count returns a nil Wavelet and a non-nil error.
func Daubechies(taps int) (Wavelet, error) {
	h, ok := daubechiesTaps[taps]
	if !ok {
		return nil, fmt.Errorf("wavelet: unsupported daubechies tap count %d (supported: 4, 6, 8, 10, 12)", taps)
	}
	cp := make([]float64, len(h))
	copy(cp, h)
	return newFilterPair(fmt.Sprintf("db%d", taps/2), cp), nil
}

// symletTaps holds literal scaling-filter coefficients for the supported
// Symlet orders, indexed by number of taps. Symlets are near-symmetric
// variants of the Daubechies family.
var symletTaps = map[int][]float64{
	4: { // sym2 coincides with db2
		0.48296291314453414,
		0.83651630373780790,
		0.22414386804201338,
		-0.12940952255126038,
	},
	8: { // sym4
		-0.07576571478927333,
		-0.02963552764599851,
		0.49761866763201545,
		0.80373875180591614,
		0.29785779560527736,
		-0.09921954357684722,
		-0.01260396726203783,
		0.03222310060404270,
	},
	12: { // sym6
		0.01540410932703369,
		0.00349071208467914,
		-0.11799011114819057,
		-0.04831174740356757,
		0.49105594192321837,
		0.78764114836636546,
		0.33792942172317088,
		-0.07263752278647850,
		-0.02106029251096794,
		0.04472490177067434,
		0.00176771733318964,
		-0.00782158910122603,
	},
}

// Symlet returns the Symlet wavelet with the given number of filter taps
// (one of 4, 8, 12). An unsupported tap count returns a nil Wavelet and a
// non-nil error.
func Symlet(taps int) (Wavelet, error) {
	h, ok := symletTaps[taps]
	if !ok {
		return nil, fmt.Errorf("wavelet: unsupported symlet tap count %d (supported: 4, 8, 12)", taps)
	}
	cp := make([]float64, len(h))
	copy(cp, h)
	return newFilterPair(fmt.Sprintf("sym%d", taps/2), cp), nil
}

// coifletTaps holds literal scaling-filter coefficients for the supported
// Coiflet orders, indexed by number of taps.
var coifletTaps = map[int][]float64{
	6: { // coif1
		-0.01565572813546454,
		-0.07273261951252645,
		0.38486484686420286,
		0.85257202021225542,
		0.33789766245780922,
		-0.07273261951252645,
	},
	12: { // coif2
		-0.00072054944536956,
		-0.00182320887091007,
		0.00561143481936817,
		0.02368017194688821,
		-0.05943441864675478,
		-0.07648859907816116,
		0.41700518442169120,
		0.81272363544201720,
		0.38611006682116222,
		-0.06737255472196302,
		-0.04146493678175915,
		0.01638733646380719,
	},
}

// Coiflet returns the Coiflet wavelet with the given number of filter taps
// (one of 6, 12). An unsupported tap count returns a nil Wavelet and a
// non-nil error.
func Coiflet(taps int) (Wavelet, error) {
	h, ok := coifletTaps[taps]
	if !ok {
		return nil, fmt.Errorf("wavelet: unsupported coiflet tap count %d (supported: 6, 12)", taps)
	}
	cp := make([]float64, len(h))
	copy(cp, h)
	name := "coif1"
	if taps == 12 {
		name = "coif2"
	}
	return newFilterPair(name, cp), nil
}
