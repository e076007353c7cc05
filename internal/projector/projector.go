package projector

import (
	"errors"
	"fmt"
	"math"
	"reflect"

	"skyproj/internal/mathutil"
	"skyproj/internal/rotator"
)

var (
	// ErrNoPlaneInfo is returned by index conversions when the projector
	// was built without plane discretization.
	ErrNoPlaneInfo = errors.New("projector: no projection plane array information")

	// ErrFlipConv is returned for a flip convention other than astro or geo.
	ErrFlipConv = errors.New("projector: flipconv must be 'astro', 'geo' or empty for default")
)

// Flip conventions. Astro puts east on the left, geo on the right.
const (
	FlipAstro = "astro"
	FlipGeo   = "geo"
)

// PlaneInfo discretizes the projection plane into an image.
// Reso is in arcminutes per pixel and only used by Gnomonic.
type PlaneInfo struct {
	XSize int
	YSize int
	Reso  float64
}

func (p *PlaneInfo) absent() bool {
	return p.XSize == 0 && p.YSize == 0 && p.Reso == 0
}

// Config is shared by all projection constructors.
type Config struct {
	// Rot points the projection: Rot[0] (Lon, Lat) becomes the center.
	Rot []rotator.Euler
	// Coord is the coordinate system of the plane: one name, or a pair
	// whose second element is kept.
	Coord []string
	// FlipConv is FlipAstro, FlipGeo or empty for astro.
	FlipConv string
	// Plane overrides the projection's default discretization. A non-nil
	// Plane with every field zero leaves the projector without one.
	Plane *PlaneInfo
}

// Index is an image pixel. Valid is false for plane positions outside the
// projection domain.
type Index struct {
	I, J  int
	Valid bool
}

// Extent is the bounding box of the drawn plane region.
type Extent struct {
	Left, Right, Bottom, Top float64
}

// Grid holds the plane coordinates of every image pixel, row-major.
// Valid is false where the projection is undefined.
type Grid struct {
	Rows, Cols int
	X, Y       []float64
	Valid      []bool
}

// Vec2PixFunc maps unit vectors, given as parallel component slices,
// to pixel indices of a sky map.
type Vec2PixFunc func(x, y, z []float64) []int

// Projector is implemented by Gnomonic and Mollweide.
//
// lonlat selects (longitude, latitude) in degrees instead of
// (colatitude, azimuth) in radians. direct skips the rotation between the
// map frame and the projection's local frame.
type Projector interface {
	Name() string

	Ang2XY(theta, phi float64, lonlat, direct bool) (x, y float64)
	Vec2XY(v mathutil.Vec3, direct bool) (x, y float64)
	XY2Ang(x, y float64, lonlat, direct bool) (theta, phi float64)
	XY2Vec(x, y float64, direct bool) mathutil.Vec3

	XY2IJ(x, y float64) (Index, error)
	IJ2XY(i, j int) (x, y float64, err error)
	Grid() (*Grid, error)

	Extent() (Extent, error)
	FOV() float64
	Center(lonlat bool) (float64, float64)
	MkCoord(coord string) (from, to string)

	Rotator() *rotator.Rotator
	CoordSys() rotator.Coord
	CoordSysLabel() string
	PlaneInfo() *PlaneInfo
	Flip() float64
}

// base carries the state and behavior common to every projection.
type base struct {
	rot      *rotator.Rotator
	coordSys rotator.Coord
	flip     float64
	plane    *PlaneInfo
}

func newBase(cfg Config, plane *PlaneInfo) (base, error) {
	var b base

	rot, err := rotator.New(cfg.Rot, nil)
	if err != nil {
		return b, fmt.Errorf("projector: rotation: %w", err)
	}
	b.rot = rot

	cs, err := rotator.New(nil, cfg.Coord)
	if err != nil {
		return b, fmt.Errorf("projector: coord: %w", err)
	}
	b.coordSys = cs.CoordOut()

	if b.flip, err = parseFlip(cfg.FlipConv); err != nil {
		return b, err
	}

	if plane != nil && !plane.absent() {
		p := *plane
		b.plane = &p
	}
	return b, nil
}

func parseFlip(conv string) (float64, error) {
	switch conv {
	case "", FlipAstro:
		return -1, nil
	case FlipGeo:
		return 1, nil
	}
	return 0, fmt.Errorf("%w: got %q", ErrFlipConv, conv)
}

func (b *base) Rotator() *rotator.Rotator { return b.rot }
func (b *base) CoordSys() rotator.Coord   { return b.coordSys }
func (b *base) CoordSysLabel() string     { return b.coordSys.Label() }
func (b *base) Flip() float64             { return b.flip }

// PlaneInfo returns a copy of the discretization, or nil.
func (b *base) PlaneInfo() *PlaneInfo {
	if b.plane == nil {
		return nil
	}
	p := *b.plane
	return &p
}

// FOV is the full sphere unless a projection knows better.
func (b *base) FOV() float64 {
	return 2 * math.Pi
}

// Center returns the pointing of the first rotation, as (theta, phi) in
// radians or (lon, lat) in degrees.
func (b *base) Center(lonlat bool) (float64, float64) {
	var lon, lat float64
	if rots := b.rot.Rots(); len(rots) > 0 {
		lon, lat = rots[0].Lon, rots[0].Lat
	}
	if lonlat {
		return lon, lat
	}
	return mathutil.LonLatToDir(lon, lat)
}

// MkCoord pairs the caller's coordinate system with the projector's.
func (b *base) MkCoord(coord string) (from, to string) {
	cs := string(b.coordSys)
	switch {
	case cs == "":
		return coord, coord
	case coord == "":
		return cs, cs
	}
	return coord, cs
}

func (b *base) requirePlane() (*PlaneInfo, error) {
	if b.plane == nil {
		return nil, ErrNoPlaneInfo
	}
	return b.plane, nil
}

// Equal reports whether a and b are the same kind of projection with the
// same rotation and coordinate system.
func Equal(a, b Projector) bool {
	if a == nil || b == nil {
		return a == b
	}
	if reflect.TypeOf(a) != reflect.TypeOf(b) {
		return false
	}
	return a.Rotator().Equal(b.Rotator()) && a.CoordSys() == b.CoordSys()
}
