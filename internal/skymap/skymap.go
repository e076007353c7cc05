// Package skymap holds full-sky maps pixelized on an equirectangular
// (plate carrée) grid: Width columns of equal longitude, Height rows of
// equal latitude. Column 0 starts at longitude -180°, row 0 at the north
// pole.
package skymap

import (
	"fmt"
	"math"

	"skyproj/internal/mathutil"
)

// Map is a pixelized sky map. Values is row-major, len = Width*Height.
type Map struct {
	Width  int
	Height int
	Values []float64
}

// New allocates a zero map.
func New(w, h int) (*Map, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("skymap: size %dx%d must be positive", w, h)
	}
	return &Map{Width: w, Height: h, Values: make([]float64, w*h)}, nil
}

// FromFunc fills a map by evaluating f at each pixel center (degrees).
func FromFunc(w, h int, f func(lon, lat float64) float64) (*Map, error) {
	m, err := New(w, h)
	if err != nil {
		return nil, err
	}
	for r := 0; r < h; r++ {
		for c := 0; c < w; c++ {
			lon, lat := m.PixCenter(r*w + c)
			m.Values[r*w+c] = f(lon, lat)
		}
	}
	return m, nil
}

// Npix is the number of pixels.
func (m *Map) Npix() int {
	return m.Width * m.Height
}

// PixCenter returns the (lon, lat) in degrees of pixel p.
func (m *Map) PixCenter(p int) (lon, lat float64) {
	r, c := p/m.Width, p%m.Width
	lon = -180 + (float64(c)+0.5)*360/float64(m.Width)
	lat = 90 - (float64(r)+0.5)*180/float64(m.Height)
	return lon, lat
}

// LonLat2Pix returns the pixel containing (lon, lat) in degrees.
func (m *Map) LonLat2Pix(lon, lat float64) int {
	if math.IsNaN(lon) || math.IsNaN(lat) {
		return 0
	}
	u := math.Mod(lon+180, 360)
	if u < 0 {
		u += 360
	}
	c := int(u / 360 * float64(m.Width))
	if c >= m.Width {
		c = m.Width - 1
	}
	r := int((90 - lat) / 180 * float64(m.Height))
	if r < 0 {
		r = 0
	}
	if r >= m.Height {
		r = m.Height - 1
	}
	return r*m.Width + c
}

// Vec2Pix returns the pixel containing the direction of v.
func (m *Map) Vec2Pix(v mathutil.Vec3) int {
	return m.LonLat2Pix(mathutil.Vec2LonLat(v))
}

// Vec2PixSlices is the vectorized form, usable as projector.Vec2PixFunc.
func (m *Map) Vec2PixSlices(x, y, z []float64) []int {
	pix := make([]int, len(x))
	for k := range x {
		pix[k] = m.Vec2Pix(mathutil.Vec3{x[k], y[k], z[k]})
	}
	return pix
}
