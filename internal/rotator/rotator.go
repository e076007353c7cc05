// Package rotator composes pointing rotations and celestial coordinate
// system changes into a single 3×3 matrix applied to unit vectors.
//
// A Rotator first converts from the input coordinate system to the output
// one, then applies each Euler rotation in order. Inverse applies the
// transpose, carrying vectors back into the input frame.
package rotator

import (
	"errors"
	"fmt"
	"strings"

	"skyproj/internal/mathutil"
)

// ErrUnknownCoord is returned for coordinate system names that cannot be parsed.
var ErrUnknownCoord = errors.New("rotator: unknown coordinate system")

// Coord names a celestial coordinate system. The empty Coord means "none".
type Coord string

const (
	Equatorial Coord = "C"
	Galactic   Coord = "G"
	Ecliptic   Coord = "E"
)

// Label returns the human-readable name, or "" for no coordinate system.
func (c Coord) Label() string {
	switch c {
	case Equatorial:
		return "Equatorial"
	case Galactic:
		return "Galactic"
	case Ecliptic:
		return "Ecliptic"
	}
	return ""
}

// ParseCoord accepts single letters (C/Q, G, E) or full names, any case.
// The empty string parses to the empty Coord.
func ParseCoord(s string) (Coord, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return "", nil
	case "c", "q", "equatorial", "celestial", "icrs":
		return Equatorial, nil
	case "g", "galactic":
		return Galactic, nil
	case "e", "ecliptic":
		return Ecliptic, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownCoord, s)
}

// Euler is a pointing rotation in degrees. The direction (Lon, Lat) is
// carried onto the +X axis and the frame is then rolled by Psi around it.
type Euler struct {
	Lon, Lat, Psi float64
}

func (e Euler) matrix() mathutil.Mat3 {
	return mathutil.EulerZYX(mathutil.Deg2Rad(e.Lon), mathutil.Deg2Rad(e.Lat), mathutil.Deg2Rad(e.Psi))
}

// Rotator is immutable after construction.
type Rotator struct {
	rots     []Euler
	coordIn  Coord
	coordOut Coord
	matrix   mathutil.Mat3
}

// New builds a Rotator from zero or more Euler rotations and a coordinate
// list of zero, one or two names. One name fixes the output system without
// any conversion; two names convert from the first to the second.
func New(rots []Euler, coord []string) (*Rotator, error) {
	if len(coord) > 2 {
		return nil, fmt.Errorf("rotator: coord takes at most 2 systems, got %d", len(coord))
	}
	parsed := make([]Coord, len(coord))
	for i, s := range coord {
		c, err := ParseCoord(s)
		if err != nil {
			return nil, err
		}
		parsed[i] = c
	}

	r := &Rotator{
		rots:   append([]Euler(nil), rots...),
		matrix: mathutil.Mat3Identity(),
	}
	switch len(parsed) {
	case 1:
		r.coordIn, r.coordOut = parsed[0], parsed[0]
	case 2:
		r.coordIn, r.coordOut = parsed[0], parsed[1]
		if (r.coordIn == "") != (r.coordOut == "") {
			return nil, fmt.Errorf("rotator: coord pair %q must name both systems or neither", coord)
		}
		r.matrix = convMatrix(r.coordIn, r.coordOut)
	}
	for _, e := range r.rots {
		r.matrix = mathutil.Mat3Mul(e.matrix(), r.matrix)
	}
	return r, nil
}

// MustNew is like New but panics on error. Intended for literals in tests
// and package-level defaults.
func MustNew(rots []Euler, coord []string) *Rotator {
	r, err := New(rots, coord)
	if err != nil {
		panic(err)
	}
	return r
}

// convMatrix maps vectors from one system to another through equatorial.
func convMatrix(from, to Coord) mathutil.Mat3 {
	if from == to {
		return mathutil.Mat3Identity()
	}
	toEqu := mathutil.Mat3Identity()
	switch from {
	case Galactic:
		toEqu = mathutil.GalToEqu
	case Ecliptic:
		toEqu = mathutil.EclToEqu
	}
	fromEqu := mathutil.Mat3Identity()
	switch to {
	case Galactic:
		fromEqu = mathutil.EquToGal
	case Ecliptic:
		fromEqu = mathutil.EquToEcl
	}
	return mathutil.Mat3Mul(fromEqu, toEqu)
}

// Apply rotates v forward.
func (r *Rotator) Apply(v mathutil.Vec3) mathutil.Vec3 {
	return r.matrix.MulVec3(v)
}

// Inverse rotates v backward.
func (r *Rotator) Inverse(v mathutil.Vec3) mathutil.Vec3 {
	return r.matrix.Transpose().MulVec3(v)
}

// ApplyDir rotates a (theta, phi) direction forward.
func (r *Rotator) ApplyDir(theta, phi float64) (float64, float64) {
	return mathutil.Vec2Dir(r.Apply(mathutil.Dir2Vec(theta, phi)))
}

// InverseDir rotates a (theta, phi) direction backward.
func (r *Rotator) InverseDir(theta, phi float64) (float64, float64) {
	return mathutil.Vec2Dir(r.Inverse(mathutil.Dir2Vec(theta, phi)))
}

// Matrix returns the composed forward matrix.
func (r *Rotator) Matrix() mathutil.Mat3 {
	return r.matrix
}

// Rots returns a copy of the Euler rotations in application order.
func (r *Rotator) Rots() []Euler {
	return append([]Euler(nil), r.rots...)
}

// CoordIn is the coordinate system vectors are expected in.
func (r *Rotator) CoordIn() Coord {
	return r.coordIn
}

// CoordOut is the coordinate system vectors are rotated into.
func (r *Rotator) CoordOut() Coord {
	return r.coordOut
}

// CoordOutLabel is the display name of CoordOut.
func (r *Rotator) CoordOutLabel() string {
	return r.coordOut.Label()
}

// IsIdentity reports whether Apply leaves vectors unchanged.
func (r *Rotator) IsIdentity() bool {
	return r.matrix.IsIdentity()
}

// Equal reports whether both rotators rotate identically and resolve to
// the same coordinate systems.
func (r *Rotator) Equal(o *Rotator) bool {
	if r == nil || o == nil {
		return r == o
	}
	return r.coordIn == o.coordIn && r.coordOut == o.coordOut &&
		r.matrix.ApproxEqual(o.matrix, 1e-12)
}
