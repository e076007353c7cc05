package skymap

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ftrvxmtrx/tga"
)

// decoders picks the decoder by file extension. The TGA format has no
// magic number, so image.Decode cannot sniff it reliably.
var decoders = map[string]func(io.Reader) (image.Image, error){
	".png":  png.Decode,
	".jpg":  jpeg.Decode,
	".jpeg": jpeg.Decode,
	".tga":  tga.Decode,
}

// Load reads a PNG, JPEG or TGA equirectangular image and returns its
// luminance in [0, 1] as a sky map.
func Load(path string) (*Map, error) {
	ext := strings.ToLower(filepath.Ext(path))
	decode, ok := decoders[ext]
	if !ok {
		return nil, fmt.Errorf("skymap: %s: unsupported image extension %q", path, ext)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("skymap: read %s: %w", path, err)
	}

	img, err := decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("skymap: decode %s: %w", path, err)
	}

	return FromImage(img)
}

// FromImage converts any image to a luminance map.
func FromImage(src image.Image) (*Map, error) {
	b := src.Bounds()
	m, err := New(b.Dx(), b.Dy())
	if err != nil {
		return nil, err
	}

	switch img := src.(type) {
	case *image.Gray:
		// Fast path: no color conversion
		for y := 0; y < m.Height; y++ {
			off := y * img.Stride
			for x := 0; x < m.Width; x++ {
				m.Values[y*m.Width+x] = float64(img.Pix[off+x]) / 255
			}
		}
	default:
		for y := 0; y < m.Height; y++ {
			for x := 0; x < m.Width; x++ {
				g := color.Gray16Model.Convert(src.At(b.Min.X+x, b.Min.Y+y)).(color.Gray16)
				m.Values[y*m.Width+x] = float64(g.Y) / 0xffff
			}
		}
	}
	return m, nil
}
