// Package postprocess reduces supersampled renders to their output size.
package postprocess

import (
	"image"

	"golang.org/x/image/draw"
)

// Downsample reduces a supersampled render to w×h with CatmullRom
// filtering. draw scales NRGBA sources in premultiplied space, so the
// transparent background outside the projection does not darken its rim.
// An image already no larger than w×h is returned as is.
func Downsample(img *image.NRGBA, w, h int) *image.NRGBA {
	b := img.Bounds()
	if b.Dx() <= w && b.Dy() <= h {
		return img
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return unpremultiply(dst)
}

func unpremultiply(src *image.RGBA) *image.NRGBA {
	out := image.NewNRGBA(src.Bounds())
	for i := 0; i+3 < len(src.Pix); i += 4 {
		a := src.Pix[i+3]
		out.Pix[i+3] = a
		if a <= 1 {
			continue
		}
		inv := 255 / float64(a)
		for c := 0; c < 3; c++ {
			out.Pix[i+c] = clamp8(float64(src.Pix[i+c]) * inv)
		}
	}
	return out
}

func clamp8(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v + 0.5)
}
