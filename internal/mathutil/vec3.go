package mathutil

import "math"

// Vec3 is a 3-component vector (value type, stack-allocated).
// On the unit sphere x points to (lon=0, lat=0), z to the north pole.
type Vec3 [3]float64

// NaNVec3 is the vector returned for points outside a projection's domain.
func NaNVec3() Vec3 {
	n := math.NaN()
	return Vec3{n, n, n}
}

func (a Vec3) Dot(b Vec3) float64 {
	return a[0]*b[0] + a[1]*b[1] + a[2]*b[2]
}

func (a Vec3) Cross(b Vec3) Vec3 {
	return Vec3{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
}

func (v Vec3) Len() float64 {
	return math.Sqrt(v[0]*v[0] + v[1]*v[1] + v[2]*v[2])
}

func (v Vec3) Normalize() Vec3 {
	l := v.Len()
	if l < 1e-12 {
		return Vec3{}
	}
	return Vec3{v[0] / l, v[1] / l, v[2] / l}
}

// IsNaN reports whether any component is NaN.
func (v Vec3) IsNaN() bool {
	return math.IsNaN(v[0]) || math.IsNaN(v[1]) || math.IsNaN(v[2])
}
