package main

import (
	"flag"
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/golang/geo/r2"

	"skyproj/internal/config"
	"skyproj/internal/mathutil"
	"skyproj/internal/projector"
)

func main() {
	proj := flag.String("proj", config.ProjMollweide, "Projection: gnomonic or mollweide")
	lon := flag.Float64("lon", 0, "Center longitude in degrees")
	lat := flag.Float64("lat", 0, "Center latitude in degrees")
	psi := flag.Float64("psi", 0, "Rotation about the line of sight in degrees")
	coord := flag.String("coord", "", "Coordinate system C, G or E, or a pair such as G,C")
	flip := flag.String("flip", "", "astro or geo (default: astro)")
	xsize := flag.Int("xsize", 0, "Image width in pixels")
	ysize := flag.Int("ysize", 0, "Image height in pixels (gnomonic)")
	reso := flag.Float64("reso", 0, "Resolution in arcmin per pixel (gnomonic)")
	pixI := flag.Int("i", -1, "Pixel row to inspect (default: corners and center)")
	pixJ := flag.Int("j", -1, "Pixel column to inspect")
	flag.Parse()

	view := config.View{
		Name:       *proj,
		Projection: *proj,
		Rot:        []float64{*lon, *lat, *psi},
		FlipConv:   *flip,
		XSize:      *xsize,
		YSize:      *ysize,
		Reso:       *reso,
	}
	if *coord != "" {
		view.Coord = strings.Split(*coord, ",")
	}

	p, err := view.Projector()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Projection: %s\n", p.Name())
	fmt.Printf("Coord: %s\n", p.CoordSysLabel())
	clon, clat := p.Center(true)
	fmt.Printf("Center: lon=%.4f lat=%.4f (%v)\n", clon, clat, projector.CenterLatLng(p))
	fmt.Printf("FOV: %.4f deg\n", mathutil.Rad2Deg(p.FOV()))
	if ps, err := projector.AngularPixelSize(p); err == nil {
		fmt.Printf("Pixel: %.4f arcmin\n", ps.Degrees()*60)
	}
	if rot := p.Rotator(); !rot.IsIdentity() {
		m := rot.Matrix()
		fmt.Println("Rotation:")
		for r := 0; r < 3; r++ {
			fmt.Printf("  [%+.6f %+.6f %+.6f]\n", m[r*3], m[r*3+1], m[r*3+2])
		}
	}

	plane := p.PlaneInfo()
	if plane == nil {
		fmt.Println("Plane: none")
		return
	}
	fmt.Printf("Plane: %dx%d reso=%g\n", plane.XSize, plane.YSize, plane.Reso)

	ext, err := p.Extent()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Extent: x[%.6f, %.6f] y[%.6f, %.6f]\n", ext.Left, ext.Right, ext.Bottom, ext.Top)

	// Sample the corners, edge midpoints and center unless a pixel is given.
	lastI, lastJ := plane.YSize-1, plane.XSize-1
	is := []int{0, 0, lastI / 2, lastI / 2, lastI, lastI}
	js := []int{0, lastJ, lastJ / 2, 0, lastJ / 2, lastJ}
	if *pixI >= 0 && *pixJ >= 0 {
		is, js = []int{*pixI}, []int{*pixJ}
	}
	px, py, err := projector.IJ2XYSlices(p, is, js)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	sky := projector.AsS2(p)
	fmt.Println("--- pixel -> sky ---")
	for k := range is {
		x, y := px[k], py[k]
		if math.IsNaN(x) {
			fmt.Printf("  (%d,%d): outside\n", is[k], js[k])
			continue
		}
		ll := sky.ToLatLng(r2.Point{X: x, Y: y})
		fmt.Printf("  (%d,%d): x=%+.6f y=%+.6f -> lon=%.4f lat=%.4f\n",
			is[k], js[k], x, y, ll.Lng.Degrees(), ll.Lat.Degrees())
	}
}
