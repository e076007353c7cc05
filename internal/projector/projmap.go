package projector

import (
	"errors"
	"fmt"

	"skyproj/internal/raster"
	"skyproj/internal/rotator"
)

// ErrPixelOutOfRange is returned when vec2pix yields an index outside the map.
var ErrPixelOutOfRange = errors.New("projector: pixel index out of map range")

// Projmap resamples a pixelized sky map onto the projection plane.
//
// Each valid plane pixel is turned into a unit vector, rotated from the
// projection's coordinate system back into the map's (coord, reconciled by
// MkCoord, with the optional extra rotation rot), and looked up through
// vec2pix. Pixels outside the projection domain keep the -inf sentinel.
func Projmap(p Projector, m []float64, vec2pix Vec2PixFunc, rot []rotator.Euler, coord string) (*raster.FloatBuffer, error) {
	grid, err := p.Grid()
	if err != nil {
		return nil, err
	}

	from, to := p.MkCoord(coord)
	var cs []string
	if from != "" || to != "" {
		cs = []string{from, to}
	}
	r, err := rotator.New(rot, cs)
	if err != nil {
		return nil, fmt.Errorf("projector: projmap rotation: %w", err)
	}

	ident := r.IsIdentity()

	img := raster.NewFloatBuffer(grid.Cols, grid.Rows)

	n := 0
	for _, ok := range grid.Valid {
		if ok {
			n++
		}
	}
	where := make([]int, 0, n)
	vx := make([]float64, 0, n)
	vy := make([]float64, 0, n)
	vz := make([]float64, 0, n)
	for k, ok := range grid.Valid {
		if !ok {
			continue
		}
		v := p.XY2Vec(grid.X[k], grid.Y[k], false)
		if !ident {
			v = r.Inverse(v)
		}
		where = append(where, k)
		vx = append(vx, v[0])
		vy = append(vy, v[1])
		vz = append(vz, v[2])
	}
	if n == 0 {
		return img, nil
	}

	pix := vec2pix(vx, vy, vz)
	if len(pix) != n {
		return nil, fmt.Errorf("projector: vec2pix returned %d indices for %d vectors", len(pix), n)
	}
	for k, ip := range pix {
		if ip < 0 || ip >= len(m) {
			return nil, fmt.Errorf("%w: %d not in [0,%d)", ErrPixelOutOfRange, ip, len(m))
		}
		img.Pix[where[k]] = m[ip]
	}
	return img, nil
}
