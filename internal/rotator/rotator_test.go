package rotator

import (
	"errors"
	"math"
	"testing"

	"skyproj/internal/mathutil"
)

func vecClose(a, b mathutil.Vec3, tol float64) bool {
	return math.Abs(a[0]-b[0]) < tol && math.Abs(a[1]-b[1]) < tol && math.Abs(a[2]-b[2]) < tol
}

func TestParseCoord(t *testing.T) {
	tests := []struct {
		in   string
		want Coord
	}{
		{"", ""},
		{"C", Equatorial},
		{"q", Equatorial},
		{"Galactic", Galactic},
		{" e ", Ecliptic},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseCoord(tt.in)
			if err != nil {
				t.Fatalf("ParseCoord(%q) error: %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseCoord(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}

	if _, err := ParseCoord("X"); !errors.Is(err, ErrUnknownCoord) {
		t.Errorf("ParseCoord(X) error = %v, want ErrUnknownCoord", err)
	}
}

func TestNew_Errors(t *testing.T) {
	if _, err := New(nil, []string{"C", "G", "E"}); err == nil {
		t.Error("expected error for three coordinate systems")
	}
	if _, err := New(nil, []string{"C", ""}); err == nil {
		t.Error("expected error for half-empty coordinate pair")
	}
	if _, err := New(nil, []string{"Z"}); !errors.Is(err, ErrUnknownCoord) {
		t.Errorf("error = %v, want ErrUnknownCoord", err)
	}
}

func TestRotator_CenterOnXAxis(t *testing.T) {
	r := MustNew([]Euler{{Lon: 40, Lat: -20, Psi: 10}}, nil)
	got := r.Apply(mathutil.LonLat2Vec(40, -20))
	if !vecClose(got, mathutil.Vec3{1, 0, 0}, 1e-12) {
		t.Errorf("Apply(center) = %v, want (1,0,0)", got)
	}
}

func TestRotator_InverseUndoesApply(t *testing.T) {
	r := MustNew([]Euler{{Lon: 120, Lat: 33, Psi: -45}}, []string{"G", "E"})
	for _, v := range []mathutil.Vec3{
		{1, 0, 0},
		{0, 1, 0},
		mathutil.LonLat2Vec(10, 80),
		mathutil.LonLat2Vec(-170, -5),
	} {
		got := r.Inverse(r.Apply(v))
		if !vecClose(got, v, 1e-12) {
			t.Errorf("Inverse(Apply(%v)) = %v", v, got)
		}
	}

	theta, phi := r.InverseDir(r.ApplyDir(1.0, 2.0))
	if math.Abs(theta-1.0) > 1e-12 || math.Abs(phi-2.0) > 1e-12 {
		t.Errorf("InverseDir(ApplyDir(1,2)) = (%v,%v)", theta, phi)
	}
}

func TestRotator_CoordConversion(t *testing.T) {
	r := MustNew(nil, []string{"C", "G"})
	if r.CoordOut() != Galactic || r.CoordOutLabel() != "Galactic" {
		t.Errorf("CoordOut = %q (%q), want G (Galactic)", r.CoordOut(), r.CoordOutLabel())
	}
	// North celestial pole sits at galactic latitude ~27.13°.
	_, lat := mathutil.Vec2LonLat(r.Apply(mathutil.Vec3{0, 0, 1}))
	if math.Abs(lat-27.128) > 0.01 {
		t.Errorf("NCP galactic latitude = %.4f, want ~27.128", lat)
	}

	// Galactic -> ecliptic composed through equatorial must match the direct chain.
	ge := MustNew(nil, []string{"G", "E"})
	v := mathutil.LonLat2Vec(33, 12)
	want := mathutil.EquToEcl.MulVec3(mathutil.GalToEqu.MulVec3(v))
	if got := ge.Apply(v); !vecClose(got, want, 1e-12) {
		t.Errorf("G->E Apply = %v, want %v", got, want)
	}
}

func TestRotator_MatrixMatchesApply(t *testing.T) {
	r := MustNew([]Euler{{Lon: 40, Lat: -10, Psi: 15}}, []string{"C", "G"})
	if r.IsIdentity() {
		t.Fatal("rotated frame reported as identity")
	}
	v := mathutil.LonLat2Vec(-70, 35)
	if got, want := r.Matrix().MulVec3(v), r.Apply(v); !vecClose(got, want, 1e-15) {
		t.Errorf("Matrix()·v = %v, want %v", got, want)
	}
}

func TestRotator_SingleCoordIsIdentity(t *testing.T) {
	r := MustNew(nil, []string{"G"})
	if !r.IsIdentity() {
		t.Error("single coordinate system should not rotate")
	}
	if r.CoordOut() != Galactic {
		t.Errorf("CoordOut = %q, want G", r.CoordOut())
	}
}

func TestRotator_Equal(t *testing.T) {
	a := MustNew([]Euler{{Lon: 10, Lat: 20}}, []string{"C", "G"})
	b := MustNew([]Euler{{Lon: 10, Lat: 20}}, []string{"C", "G"})
	c := MustNew([]Euler{{Lon: 10, Lat: 21}}, []string{"C", "G"})
	d := MustNew([]Euler{{Lon: 10, Lat: 20}}, nil)

	if !a.Equal(b) {
		t.Error("identical rotators should be equal")
	}
	if a.Equal(c) {
		t.Error("different rotations should not be equal")
	}
	if a.Equal(d) {
		t.Error("different coordinate systems should not be equal")
	}
	if len(a.Rots()) != 1 || a.Rots()[0].Lat != 20 {
		t.Errorf("Rots() = %v", a.Rots())
	}
}
