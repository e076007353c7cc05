package mathutil

import "math"

// RotX returns a 3×3 rotation matrix around the X axis. Angle in radians.
func RotX(a float64) Mat3 {
	c, s := math.Cos(a), math.Sin(a)
	return Mat3{
		1, 0, 0,
		0, c, -s,
		0, s, c,
	}
}

// RotY returns a 3×3 rotation matrix around the Y axis.
func RotY(a float64) Mat3 {
	c, s := math.Cos(a), math.Sin(a)
	return Mat3{
		c, 0, s,
		0, 1, 0,
		-s, 0, c,
	}
}

// RotZ returns a 3×3 rotation matrix around the Z axis.
func RotZ(a float64) Mat3 {
	c, s := math.Cos(a), math.Sin(a)
	return Mat3{
		c, -s, 0,
		s, c, 0,
		0, 0, 1,
	}
}

// EulerZYX builds the pointing rotation for (lon, lat, psi) in radians:
// Rx(psi) @ Ry(lat) @ Rz(-lon). The direction (lon, lat) is carried onto
// the +X axis, then the frame is rolled by psi around it.
func EulerZYX(lon, lat, psi float64) Mat3 {
	return Mat3Mul(Mat3Mul(RotX(psi), RotY(lat)), RotZ(-lon))
}

// Deg2Rad converts degrees to radians.
func Deg2Rad(d float64) float64 {
	return d * math.Pi / 180
}

// Rad2Deg converts radians to degrees.
func Rad2Deg(r float64) float64 {
	return r * 180 / math.Pi
}

// ArcminToRad converts arcminutes to radians.
func ArcminToRad(a float64) float64 {
	return a / 60 * math.Pi / 180
}
