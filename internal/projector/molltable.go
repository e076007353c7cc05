package projector

import (
	"math"
	"sort"
	"sync"

	"skyproj/internal/mathutil"
)

// The Mollweide auxiliary angle A solves 2A + sin 2A = π sin(lat). It is
// solved once on a 1° latitude grid and interpolated afterwards. The table
// is shared by every Mollweide projector and never changes once built.
var (
	mollOnce sync.Once
	mollLat  []float64
	mollAux  []float64
)

const mollNewtonIter = 10

func mollTable() (lat, aux []float64) {
	mollOnce.Do(buildMollTable)
	return mollLat, mollAux
}

func buildMollTable() {
	// -89°..+89° inclusive, then the poles.
	lat := make([]float64, 0, 181)
	aux := make([]float64, 0, 181)
	lat = append(lat, -math.Pi/2)
	aux = append(aux, -math.Pi/2)
	for d := 1; d < 180; d++ {
		l := mathutil.Deg2Rad(float64(d) - 90)
		lat = append(lat, l)
		aux = append(aux, newtonRoot(mollF, mollDF, l, l, mollNewtonIter))
	}
	lat = append(lat, math.Pi/2)
	aux = append(aux, math.Pi/2)
	mollLat, mollAux = lat, aux
}

// newtonRoot runs a fixed number of Newton steps from x0. arg is passed
// through to f and df unchanged.
func newtonRoot(f, df func(x, arg float64) float64, x0, arg float64, niter int) float64 {
	x := x0
	for i := 0; i < niter; i++ {
		x -= f(x, arg) / df(x, arg)
	}
	return x
}

func mollF(a, lat float64) float64 {
	return 2*a + math.Sin(2*a) - math.Pi*math.Sin(lat)
}

func mollDF(a, _ float64) float64 {
	return 2 * (1 + math.Cos(2*a))
}

// lininterp interpolates Y at x over ascending X. The bracketing index is
// clamped to [1, len-1], so x at or beyond the ends uses the end segments.
func lininterp(X, Y []float64, x float64) float64 {
	if math.IsNaN(x) {
		return math.NaN()
	}
	idx := sort.SearchFloat64s(X, x)
	if idx < 1 {
		idx = 1
	}
	if idx > len(X)-1 {
		idx = len(X) - 1
	}
	return Y[idx-1] + (Y[idx]-Y[idx-1])/(X[idx]-X[idx-1])*(x-X[idx-1])
}

// mollAuxAngle returns the interpolated auxiliary angle for lat in radians.
func mollAuxAngle(lat float64) float64 {
	X, Y := mollTable()
	return lininterp(X, Y, lat)
}
