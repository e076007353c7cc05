package mathutil

import "math"

// Dir2Vec converts colatitude theta and azimuth phi (radians) to a unit vector.
func Dir2Vec(theta, phi float64) Vec3 {
	st := math.Sin(theta)
	return Vec3{st * math.Cos(phi), st * math.Sin(phi), math.Cos(theta)}
}

// LonLat2Vec converts longitude and latitude in degrees to a unit vector.
func LonLat2Vec(lon, lat float64) Vec3 {
	return Dir2Vec(math.Pi/2-Deg2Rad(lat), Deg2Rad(lon))
}

// Vec2Dir returns (theta, phi) in radians, phi wrapped into [0, 2π).
// The vector need not be normalized. NaN components propagate.
func Vec2Dir(v Vec3) (theta, phi float64) {
	r := math.Hypot(v[0], v[1])
	theta = math.Atan2(r, v[2])
	phi = WrapTwoPi(math.Atan2(v[1], v[0]))
	return theta, phi
}

// Vec2LonLat returns longitude in [0, 360) and latitude in [-90, 90], degrees.
func Vec2LonLat(v Vec3) (lon, lat float64) {
	theta, phi := Vec2Dir(v)
	return Rad2Deg(phi), 90 - Rad2Deg(theta)
}

// DirToLonLat converts (theta, phi) radians to (lon, lat) degrees.
func DirToLonLat(theta, phi float64) (lon, lat float64) {
	return Rad2Deg(phi), 90 - Rad2Deg(theta)
}

// LonLatToDir converts (lon, lat) degrees to (theta, phi) radians.
func LonLatToDir(lon, lat float64) (theta, phi float64) {
	return math.Pi/2 - Deg2Rad(lat), Deg2Rad(lon)
}

// AngDist returns the great-circle angle between two vectors in radians.
func AngDist(a, b Vec3) float64 {
	return math.Atan2(a.Cross(b).Len(), a.Dot(b))
}
