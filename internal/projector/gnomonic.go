package projector

import (
	"fmt"
	"math"

	"skyproj/internal/mathutil"
)

// Gnomonic plane defaults.
const (
	DefaultGnomonicXSize = 200
	DefaultGnomonicReso  = 1.5 // arcmin per pixel
)

// Gnomonic is the tangent-plane projection. Only the hemisphere facing the
// tangent point (local x > 0) has an image.
type Gnomonic struct {
	base
}

// NewGnomonic builds a gnomonic projector. Missing plane fields default to
// a 200×200 image at 1.5 arcmin per pixel; YSize defaults to XSize.
func NewGnomonic(cfg Config) (*Gnomonic, error) {
	plane := PlaneInfo{}
	if cfg.Plane != nil {
		plane = *cfg.Plane
	}
	if plane.XSize == 0 {
		plane.XSize = DefaultGnomonicXSize
	}
	if plane.YSize == 0 {
		plane.YSize = plane.XSize
	}
	if plane.Reso == 0 {
		plane.Reso = DefaultGnomonicReso
	}
	if plane.XSize < 0 || plane.YSize < 0 || plane.Reso < 0 {
		return nil, fmt.Errorf("projector: gnomonic plane %dx%d reso %g must be positive",
			plane.XSize, plane.YSize, plane.Reso)
	}

	b, err := newBase(cfg, &plane)
	if err != nil {
		return nil, err
	}
	return &Gnomonic{base: b}, nil
}

func (g *Gnomonic) Name() string { return "Gnomonic" }

func (g *Gnomonic) Vec2XY(v mathutil.Vec3, direct bool) (x, y float64) {
	if !direct {
		v = g.rot.Apply(v)
	}
	// Written so that NaN components fall on the masked side too.
	if !(v[0] > 0) {
		return math.NaN(), math.NaN()
	}
	return g.flip * v[1] / v[0], v[2] / v[0]
}

func (g *Gnomonic) XY2Vec(x, y float64, direct bool) mathutil.Vec3 {
	r := 1 / math.Sqrt(1+x*x+y*y)
	v := mathutil.Vec3{r, g.flip * r * x, r * y}
	if !direct {
		v = g.rot.Inverse(v)
	}
	return v
}

func (g *Gnomonic) Ang2XY(theta, phi float64, lonlat, direct bool) (x, y float64) {
	return g.Vec2XY(dirToVec(theta, phi, lonlat), direct)
}

func (g *Gnomonic) XY2Ang(x, y float64, lonlat, direct bool) (theta, phi float64) {
	return vecToDir(g.XY2Vec(x, y, direct), lonlat)
}

// pixel returns the plane step in radians and the image center.
func (g *Gnomonic) pixel() (dx, xc, yc float64, err error) {
	p, err := g.requirePlane()
	if err != nil {
		return 0, 0, 0, err
	}
	dx = mathutil.ArcminToRad(p.Reso)
	xc = 0.5 * float64(p.XSize-1)
	yc = 0.5 * float64(p.YSize-1)
	return dx, xc, yc, nil
}

// XY2IJ rounds to the nearest pixel, ties to even. Indices are not
// clipped to the image: positions off the edge give indices off the edge.
// Non-finite positions are invalid.
func (g *Gnomonic) XY2IJ(x, y float64) (Index, error) {
	dx, xc, yc, err := g.pixel()
	if err != nil {
		return Index{}, err
	}
	if !isFinite(x) || !isFinite(y) {
		return Index{}, nil
	}
	return Index{
		I:     int(math.RoundToEven(yc - y/dx)),
		J:     int(math.RoundToEven(xc + x/dx)),
		Valid: true,
	}, nil
}

func (g *Gnomonic) IJ2XY(i, j int) (x, y float64, err error) {
	dx, xc, yc, err := g.pixel()
	if err != nil {
		return 0, 0, err
	}
	return (float64(j) - xc) * dx, (yc - float64(i)) * dx, nil
}

// Grid covers the whole image; every gnomonic pixel is valid.
func (g *Gnomonic) Grid() (*Grid, error) {
	dx, xc, yc, err := g.pixel()
	if err != nil {
		return nil, err
	}
	rows, cols := g.plane.YSize, g.plane.XSize
	grid := newGrid(rows, cols)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			k := i*cols + j
			grid.X[k] = (float64(j) - xc) * dx
			grid.Y[k] = (yc - float64(i)) * dx
			grid.Valid[k] = true
		}
	}
	return grid, nil
}

// Extent spans the centers of the corner pixels.
func (g *Gnomonic) Extent() (Extent, error) {
	p, err := g.requirePlane()
	if err != nil {
		return Extent{}, err
	}
	left, top, _ := g.IJ2XY(0, 0)
	right, bottom, _ := g.IJ2XY(p.YSize-1, p.XSize-1)
	return Extent{Left: left, Right: right, Bottom: bottom, Top: top}, nil
}

// FOV is twice the angle from the center to the top-left pixel.
func (g *Gnomonic) FOV() float64 {
	x, y, err := g.IJ2XY(0, 0)
	if err != nil {
		return g.base.FOV()
	}
	v := g.XY2Vec(x, y, true)
	return 2 * math.Acos(v[0])
}

func newGrid(rows, cols int) *Grid {
	n := rows * cols
	return &Grid{
		Rows:  rows,
		Cols:  cols,
		X:     make([]float64, n),
		Y:     make([]float64, n),
		Valid: make([]bool, n),
	}
}

func dirToVec(a, b float64, lonlat bool) mathutil.Vec3 {
	if lonlat {
		return mathutil.LonLat2Vec(a, b)
	}
	return mathutil.Dir2Vec(a, b)
}

func vecToDir(v mathutil.Vec3, lonlat bool) (float64, float64) {
	if lonlat {
		return mathutil.Vec2LonLat(v)
	}
	return mathutil.Vec2Dir(v)
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
