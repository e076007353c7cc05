package mathutil

import (
	"math"
	"testing"
)

func TestEulerZYX_CarriesCenterToXAxis(t *testing.T) {
	tests := []struct {
		lon, lat, psi float64
	}{
		{0, 0, 0},
		{30, 10, 0},
		{-120, 45, 15},
		{266.4, -28.9, 90},
		{180, -89, 0},
	}
	for _, tt := range tests {
		m := EulerZYX(Deg2Rad(tt.lon), Deg2Rad(tt.lat), Deg2Rad(tt.psi))
		got := m.MulVec3(LonLat2Vec(tt.lon, tt.lat))
		if math.Abs(got[0]-1) > 1e-12 || math.Abs(got[1]) > 1e-12 || math.Abs(got[2]) > 1e-12 {
			t.Errorf("EulerZYX(%v,%v,%v) center -> %v, want (1,0,0)", tt.lon, tt.lat, tt.psi, got)
		}
	}
}

func TestFrameMatrices_AreOrthonormal(t *testing.T) {
	for name, m := range map[string]Mat3{"EquToGal": EquToGal, "EquToEcl": EquToEcl} {
		p := Mat3Mul(m.Transpose(), m)
		if !p.ApproxEqual(Mat3Identity(), 1e-8) {
			t.Errorf("%s^T %s != I: %v", name, name, p)
		}
		// Proper rotation: the images of x and y span the image of z.
		ex, ey, ez := m.MulVec3(Vec3{1, 0, 0}), m.MulVec3(Vec3{0, 1, 0}), m.MulVec3(Vec3{0, 0, 1})
		if d := ex.Cross(ey).Dot(ez); math.Abs(d-1) > 1e-8 {
			t.Errorf("%s handedness = %v, want 1", name, d)
		}
	}
}

func TestEquToGal_GalacticCenter(t *testing.T) {
	// Sgr A*: RA 266.405°, Dec -28.936° lies at l≈0, b≈0.
	g := EquToGal.MulVec3(LonLat2Vec(266.405, -28.936))
	lon, lat := Vec2LonLat(g)
	if AngleDist(lon, 0) > 0.1 || math.Abs(lat) > 0.1 {
		t.Errorf("galactic center at (l,b) = (%.3f, %.3f), want ~(0, 0)", lon, lat)
	}
}

func TestDirVecRoundTrip(t *testing.T) {
	for theta := 0.05; theta < math.Pi; theta += 0.3 {
		for phi := 0.0; phi < 2*math.Pi; phi += 0.4 {
			th, ph := Vec2Dir(Dir2Vec(theta, phi))
			if math.Abs(th-theta) > 1e-12 || math.Abs(ph-phi) > 1e-12 {
				t.Fatalf("Vec2Dir(Dir2Vec(%v,%v)) = (%v,%v)", theta, phi, th, ph)
			}
		}
	}
}

func TestVec2Dir_NaNPropagates(t *testing.T) {
	th, ph := Vec2Dir(NaNVec3())
	if !math.IsNaN(th) || !math.IsNaN(ph) {
		t.Errorf("Vec2Dir(NaN) = (%v,%v), want NaN", th, ph)
	}
}

func TestWrapPi(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{math.Pi / 2, math.Pi / 2},
		{3 * math.Pi / 2, -math.Pi / 2},
		{math.Pi, -math.Pi},
		{-math.Pi, -math.Pi},
	}
	for _, tt := range tests {
		if got := WrapPi(tt.in); math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("WrapPi(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
