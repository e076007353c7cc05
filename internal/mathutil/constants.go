package mathutil

import "math"

// Obliquity is the mean obliquity of the ecliptic at J2000, radians.
var Obliquity = Deg2Rad(23.4392911)

// Precomputed frame matrices. Each maps vectors expressed in the source
// frame into the destination frame.
var (
	// EquToGal: equatorial (ICRS/J2000) → galactic.
	EquToGal = Mat3{
		-0.0548755604162154, -0.8734370902348850, -0.4838350155487132,
		0.4941094278755837, -0.4448296299600112, 0.7469822444972189,
		-0.8676661490190047, -0.1980763734312015, 0.4559837761750669,
	}

	// GalToEqu is the inverse of EquToGal.
	GalToEqu = EquToGal.Transpose()

	// EquToEcl: equatorial → ecliptic, Rx(-ε).
	EquToEcl = RotX(-Obliquity)

	// EclToEqu is the inverse of EquToEcl.
	EclToEqu = EquToEcl.Transpose()
)

// WrapPi wraps an angle in radians into [-π, π).
func WrapPi(a float64) float64 {
	return WrapTwoPi(a+math.Pi) - math.Pi
}

// WrapTwoPi wraps an angle in radians into [0, 2π).
func WrapTwoPi(a float64) float64 {
	a = math.Mod(a, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	if a >= 2*math.Pi {
		a -= 2 * math.Pi
	}
	return a
}

// AngleDist returns the shortest angular distance between two angles in degrees (0–180).
func AngleDist(a, b float64) float64 {
	d := math.Mod(a-b, 360)
	if d < 0 {
		d += 360
	}
	if d > 180 {
		return 360 - d
	}
	return d
}
