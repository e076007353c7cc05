package projector

import (
	"errors"
	"fmt"
)

// ErrLengthMismatch is returned when paired coordinate slices differ in length.
var ErrLengthMismatch = errors.New("projector: coordinate slices differ in length")

// IJ2XYSlices converts paired pixel indices to plane coordinates.
// Pixels outside the projection domain give NaN.
func IJ2XYSlices(p Projector, i, j []int) (x, y []float64, err error) {
	if len(i) != len(j) {
		return nil, nil, fmt.Errorf("%w: %d indices i, %d indices j", ErrLengthMismatch, len(i), len(j))
	}
	x = make([]float64, len(i))
	y = make([]float64, len(i))
	for k := range i {
		if x[k], y[k], err = p.IJ2XY(i[k], j[k]); err != nil {
			return nil, nil, err
		}
	}
	return x, y, nil
}

// XY2IJSlices converts paired plane coordinates to pixel indices.
func XY2IJSlices(p Projector, x, y []float64) ([]Index, error) {
	if len(x) != len(y) {
		return nil, fmt.Errorf("%w: %d x, %d y", ErrLengthMismatch, len(x), len(y))
	}
	out := make([]Index, len(x))
	for k := range x {
		idx, err := p.XY2IJ(x[k], y[k])
		if err != nil {
			return nil, err
		}
		out[k] = idx
	}
	return out, nil
}
