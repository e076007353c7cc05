package projector

import (
	"math"
	"testing"

	"github.com/golang/geo/r2"
	"github.com/golang/geo/s2"

	"skyproj/internal/mathutil"
	"skyproj/internal/rotator"
)

func TestS2Plane_RoundTrip(t *testing.T) {
	g, _ := NewGnomonic(Config{Rot: []rotator.Euler{{Lon: 10, Lat: 20}}})
	proj := AsS2(g)

	ll := s2.LatLngFromDegrees(25, 15)
	pt := proj.FromLatLng(ll)
	back := proj.ToLatLng(pt)
	if math.Abs(back.Lat.Degrees()-25) > 1e-9 || math.Abs(back.Lng.Degrees()-15) > 1e-9 {
		t.Errorf("ToLatLng(FromLatLng(25,15)) = %v", back)
	}

	center := proj.FromLatLng(CenterLatLng(g))
	if math.Abs(center.X) > 1e-12 || math.Abs(center.Y) > 1e-12 {
		t.Errorf("center projects to %v, want origin", center)
	}
}

func TestS2Plane_MaskedIsNaN(t *testing.T) {
	g, _ := NewGnomonic(Config{})
	pt := AsS2(g).Project(s2.PointFromLatLng(s2.LatLngFromDegrees(0, 180)))
	if !math.IsNaN(pt.X) || !math.IsNaN(pt.Y) {
		t.Errorf("antipode projects to %v, want NaN", pt)
	}
}

func TestS2Plane_Mollweide(t *testing.T) {
	m, _ := NewMollweide(Config{})
	plane := AsS2(m)

	// Astro flip puts lon 90 on the left half of the ellipse.
	pt := plane.FromLatLng(s2.LatLngFromDegrees(0, 90))
	if math.Abs(pt.X+1) > 1e-12 || math.Abs(pt.Y) > 1e-12 {
		t.Errorf("FromLatLng(0,90) = %v, want (-1,0)", pt)
	}
	ll := plane.ToLatLng(r2.Point{X: 0, Y: 0})
	if math.Abs(ll.Lat.Degrees()) > 1e-9 || math.Abs(ll.Lng.Degrees()) > 1e-9 {
		t.Errorf("ToLatLng(origin) = %v, want (0,0)", ll)
	}
	if u := plane.Unproject(r2.Point{X: 2, Y: 1}); !math.IsNaN(u.X) {
		t.Errorf("Unproject outside ellipse = %v, want NaN", u)
	}
}

func TestAngularPixelSize(t *testing.T) {
	g, _ := NewGnomonic(Config{Plane: &PlaneInfo{XSize: 101, Reso: 3}})
	a, err := AngularPixelSize(g)
	if err != nil {
		t.Fatal(err)
	}
	want := mathutil.ArcminToRad(3)
	if math.Abs(a.Radians()-want) > 1e-9 {
		t.Errorf("pixel size = %v rad, want %v", a.Radians(), want)
	}

	m, _ := NewMollweide(Config{Plane: &PlaneInfo{}})
	if _, err := AngularPixelSize(m); err == nil {
		t.Error("expected error without plane info")
	}
}
