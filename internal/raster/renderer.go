package raster

import (
	"fmt"
	"image"
	"math"
	"sort"
)

// Colormap names.
const (
	ColormapGrey = "grey"
	ColormapHeat = "heat"
)

// Scale names.
const (
	ScaleLinear = "linear"
	ScaleHist   = "hist"
)

// ColorOptions controls how map values become colors. Min and Max are
// taken from the data when NaN.
type ColorOptions struct {
	Colormap string
	Scale    string
	Min      float64
	Max      float64
}

// DefaultColorOptions scales the full data range linearly in grey.
func DefaultColorOptions() ColorOptions {
	return ColorOptions{
		Colormap: ColormapGrey,
		Scale:    ScaleLinear,
		Min:      math.NaN(),
		Max:      math.NaN(),
	}
}

// Validate rejects unknown colormap and scale names.
func (o ColorOptions) Validate() error {
	switch o.Colormap {
	case ColormapGrey, ColormapHeat:
	default:
		return fmt.Errorf("raster: unknown colormap %q", o.Colormap)
	}
	switch o.Scale {
	case ScaleLinear, ScaleHist:
	default:
		return fmt.Errorf("raster: unknown scale %q", o.Scale)
	}
	return nil
}

// Render converts a projected map to an NRGBA image. Blank pixels are
// fully transparent, NaN pixels are drawn in a neutral grey.
func Render(b *FloatBuffer, opts ColorOptions) (*image.NRGBA, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	lo, hi, ok := b.Range()
	if !math.IsNaN(opts.Min) {
		lo = opts.Min
	}
	if !math.IsNaN(opts.Max) {
		hi = opts.Max
	}

	norm := linearNorm(lo, hi)
	if opts.Scale == ScaleHist && ok {
		norm = histNorm(b.Pix)
	}
	cmap := greyRamp
	if opts.Colormap == ColormapHeat {
		cmap = heatRamp
	}

	img := image.NewNRGBA(image.Rect(0, 0, b.Width, b.Height))
	for y := 0; y < b.Height; y++ {
		off := y * img.Stride
		for x := 0; x < b.Width; x++ {
			v := b.Pix[y*b.Width+x]
			i := off + x*4
			switch {
			case IsBlank(v):
				// alpha stays 0
			case math.IsNaN(v):
				img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = 128, 128, 128, 255
			default:
				r, g, bl := cmap(norm(v))
				img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = r, g, bl, 255
			}
		}
	}
	return img, nil
}

func linearNorm(lo, hi float64) func(float64) float64 {
	span := hi - lo
	return func(v float64) float64 {
		if span <= 0 {
			return 0.5
		}
		return clamp01((v - lo) / span)
	}
}

// histNorm maps each value to its rank among the finite pixels.
func histNorm(pix []float64) func(float64) float64 {
	vals := make([]float64, 0, len(pix))
	for _, v := range pix {
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			vals = append(vals, v)
		}
	}
	sort.Float64s(vals)
	n := float64(len(vals))
	return func(v float64) float64 {
		if n <= 1 {
			return 0.5
		}
		k := sort.SearchFloat64s(vals, v)
		return clamp01(float64(k) / (n - 1))
	}
}

func clamp01(t float64) float64 {
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}

func greyRamp(t float64) (uint8, uint8, uint8) {
	g := uint8(t*255 + 0.5)
	return g, g, g
}

// heatRamp runs blue → white → red.
func heatRamp(t float64) (uint8, uint8, uint8) {
	if t < 0.5 {
		s := t * 2
		return uint8(s*255 + 0.5), uint8(s*255 + 0.5), 255
	}
	s := (1 - t) * 2
	return 255, uint8(s*255 + 0.5), uint8(s*255 + 0.5)
}
