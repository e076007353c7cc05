package projector

import (
	"fmt"
	"math"

	"skyproj/internal/mathutil"
)

// DefaultMollweideXSize is the image width when none is configured.
const DefaultMollweideXSize = 800

// Mollweide is the equal-area full-sky projection. The plane is the
// ellipse x²/4 + y² ≤ 1; the image is XSize wide and XSize/2 high.
type Mollweide struct {
	base
}

// NewMollweide builds a Mollweide projector. A nil Plane gives the default
// 800 pixel width; a Plane with XSize 0 leaves the projector without
// image information. YSize and Reso are ignored.
func NewMollweide(cfg Config) (*Mollweide, error) {
	mollTable()

	var plane *PlaneInfo
	switch {
	case cfg.Plane == nil:
		plane = &PlaneInfo{XSize: DefaultMollweideXSize, YSize: DefaultMollweideXSize / 2}
	case cfg.Plane.XSize != 0:
		if cfg.Plane.XSize < 4 {
			return nil, fmt.Errorf("projector: mollweide xsize %d must be at least 4", cfg.Plane.XSize)
		}
		plane = &PlaneInfo{XSize: cfg.Plane.XSize, YSize: cfg.Plane.XSize / 2}
	}

	b, err := newBase(cfg, plane)
	if err != nil {
		return nil, err
	}
	return &Mollweide{base: b}, nil
}

func (m *Mollweide) Name() string { return "Mollweide" }

func (m *Mollweide) Vec2XY(v mathutil.Vec3, direct bool) (x, y float64) {
	if !direct {
		v = m.rot.Apply(v)
	}
	if v.IsNaN() {
		return math.NaN(), math.NaN()
	}
	theta, phi := mathutil.Vec2Dir(v)
	phi = mathutil.WrapPi(phi)
	a := mollAuxAngle(math.Pi/2 - theta)
	return m.flip * 2 / math.Pi * phi * math.Cos(a), math.Sin(a)
}

func insideEllipse(x, y float64) bool {
	// false for NaN as well
	return x*x/4+y*y <= 1
}

func (m *Mollweide) XY2Vec(x, y float64, direct bool) mathutil.Vec3 {
	if !insideEllipse(x, y) {
		return mathutil.NaNVec3()
	}
	s := math.Sqrt((1 - y) * (1 + y))
	a := math.Asin(y)
	z := 2 / math.Pi * (a + y*s)
	phi := m.flip * math.Pi / 2 * x / math.Max(s, 1e-6)
	sz := math.Sqrt((1 - z) * (1 + z))
	v := mathutil.Vec3{sz * math.Cos(phi), sz * math.Sin(phi), z}
	if !direct {
		v = m.rot.Inverse(v)
	}
	return v
}

func (m *Mollweide) Ang2XY(theta, phi float64, lonlat, direct bool) (x, y float64) {
	return m.Vec2XY(dirToVec(theta, phi, lonlat), direct)
}

func (m *Mollweide) XY2Ang(x, y float64, lonlat, direct bool) (theta, phi float64) {
	return vecToDir(m.XY2Vec(x, y, direct), lonlat)
}

// center returns the image center in pixels.
func (m *Mollweide) center() (xc, yc float64, err error) {
	p, err := m.requirePlane()
	if err != nil {
		return 0, 0, err
	}
	return float64(p.XSize-1) / 2, float64(p.YSize-1) / 2, nil
}

func (m *Mollweide) XY2IJ(x, y float64) (Index, error) {
	xc, yc, err := m.center()
	if err != nil {
		return Index{}, err
	}
	if !insideEllipse(x, y) {
		return Index{}, nil
	}
	return Index{
		I:     int(math.RoundToEven(yc - y*yc)),
		J:     int(math.RoundToEven(x*xc/2 + xc)),
		Valid: true,
	}, nil
}

// IJ2XY returns NaN for pixels outside the ellipse.
func (m *Mollweide) IJ2XY(i, j int) (x, y float64, err error) {
	xc, yc, err := m.center()
	if err != nil {
		return 0, 0, err
	}
	y = (yc - float64(i)) / yc
	x = 2 * (float64(j) - xc) / xc
	if !insideEllipse(x, y) {
		return math.NaN(), math.NaN(), nil
	}
	return x, y, nil
}

// Grid masks pixels outside the ellipse. Their coordinates are kept.
func (m *Mollweide) Grid() (*Grid, error) {
	xc, yc, err := m.center()
	if err != nil {
		return nil, err
	}
	rows, cols := m.plane.YSize, m.plane.XSize
	grid := newGrid(rows, cols)
	for i := 0; i < rows; i++ {
		y := (yc - float64(i)) / yc
		for j := 0; j < cols; j++ {
			k := i*cols + j
			x := 2 * (float64(j) - xc) / xc
			grid.X[k], grid.Y[k] = x, y
			grid.Valid[k] = insideEllipse(x, y)
		}
	}
	return grid, nil
}

func (m *Mollweide) Extent() (Extent, error) {
	return Extent{Left: -2, Right: 2, Bottom: -1, Top: 1}, nil
}
