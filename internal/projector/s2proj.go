package projector

import (
	"github.com/golang/geo/r2"
	"github.com/golang/geo/r3"
	"github.com/golang/geo/s1"
	"github.com/golang/geo/s2"

	"skyproj/internal/mathutil"
)

// S2Plane converts between s2 points or lat/lngs and positions on a
// projector's plane. Points outside the projection domain give NaN.
type S2Plane struct {
	p Projector
}

// AsS2 wraps p.
func AsS2(p Projector) *S2Plane {
	return &S2Plane{p: p}
}

// Project converts a point on the sphere to a plane position.
func (s *S2Plane) Project(pt s2.Point) r2.Point {
	x, y := s.p.Vec2XY(mathutil.Vec3{pt.X, pt.Y, pt.Z}, false)
	return r2.Point{X: x, Y: y}
}

// Unproject converts a plane position to a point on the sphere.
func (s *S2Plane) Unproject(pt r2.Point) s2.Point {
	v := s.p.XY2Vec(pt.X, pt.Y, false)
	return s2.Point{Vector: r3.Vector{X: v[0], Y: v[1], Z: v[2]}}
}

func (s *S2Plane) FromLatLng(ll s2.LatLng) r2.Point {
	return s.Project(s2.PointFromLatLng(ll))
}

func (s *S2Plane) ToLatLng(pt r2.Point) s2.LatLng {
	return s2.LatLngFromPoint(s.Unproject(pt))
}

// CenterLatLng returns the projection center as an s2.LatLng.
func CenterLatLng(p Projector) s2.LatLng {
	lon, lat := p.Center(true)
	return s2.LatLngFromDegrees(lat, lon).Normalized()
}

// AngularPixelSize estimates the sky angle covered by one image pixel at
// the projection center.
func AngularPixelSize(p Projector) (s1.Angle, error) {
	pl := p.PlaneInfo()
	if pl == nil {
		return 0, ErrNoPlaneInfo
	}
	i, j := pl.YSize/2, pl.XSize/2
	x0, y0, err := p.IJ2XY(i, j)
	if err != nil {
		return 0, err
	}
	x1, y1, err := p.IJ2XY(i, j+1)
	if err != nil {
		return 0, err
	}
	a := p.XY2Vec(x0, y0, true)
	b := p.XY2Vec(x1, y1, true)
	return s1.Angle(mathutil.AngDist(a, b)) * s1.Radian, nil
}
