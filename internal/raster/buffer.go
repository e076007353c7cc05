package raster

import "math"

// FloatBuffer holds a projected map as a flat row-major slice. Pixels the
// projection never reached hold -inf.
type FloatBuffer struct {
	Width  int
	Height int
	Pix    []float64 // len = W*H, initialized to -inf
}

// NewFloatBuffer allocates a buffer filled with the -inf sentinel.
func NewFloatBuffer(w, h int) *FloatBuffer {
	n := w * h
	pix := make([]float64, n)
	for i := range pix {
		pix[i] = math.Inf(-1)
	}
	return &FloatBuffer{
		Width:  w,
		Height: h,
		Pix:    pix,
	}
}

// At returns the value at row i, column j.
func (b *FloatBuffer) At(i, j int) float64 {
	return b.Pix[i*b.Width+j]
}

// Set stores v at row i, column j.
func (b *FloatBuffer) Set(i, j int, v float64) {
	b.Pix[i*b.Width+j] = v
}

// IsBlank reports whether v is the not-rendered sentinel.
func IsBlank(v float64) bool {
	return math.IsInf(v, -1)
}

// Coverage counts rendered and blank pixels.
func (b *FloatBuffer) Coverage() (rendered, blank int) {
	for _, v := range b.Pix {
		if IsBlank(v) {
			blank++
		} else {
			rendered++
		}
	}
	return rendered, blank
}

// Range returns min and max over finite pixels. ok is false when no pixel
// holds a finite value.
func (b *FloatBuffer) Range() (lo, hi float64, ok bool) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, v := range b.Pix {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return lo, hi, lo <= hi
}
