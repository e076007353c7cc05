package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"skyproj/internal/projector"
	"skyproj/internal/raster"
	"skyproj/internal/rotator"
)

// ErrUnknownProjection is returned for a view naming no known projection.
var ErrUnknownProjection = errors.New("config: unknown projection")

// Projection names accepted in views.
const (
	ProjGnomonic  = "gnomonic"
	ProjMollweide = "mollweide"
)

// Output formats.
const (
	FormatWebP = "webp"
	FormatPNG  = "png"
)

// View describes one image to render from the sky map.
type View struct {
	Name       string    `json:"name"`
	Projection string    `json:"projection"`
	Rot        []float64 `json:"rot,omitempty"`   // lon, lat[, psi] in degrees
	Coord      []string  `json:"coord,omitempty"` // plane system, or map→plane pair
	FlipConv   string    `json:"flipconv,omitempty"`
	XSize      int       `json:"xsize,omitempty"`
	YSize      int       `json:"ysize,omitempty"`
	Reso       float64   `json:"reso,omitempty"` // arcmin per pixel
}

// Config holds all configurable paths and render settings.
type Config struct {
	// Paths
	MapFile   string `json:"map_file"`
	MapCoord  string `json:"map_coord"`
	OutputDir string `json:"output_dir"`

	// Render settings
	Format      string   `json:"format"`
	Supersample int      `json:"supersample"`
	Workers     int      `json:"workers"`
	Colormap    string   `json:"colormap"`
	Scale       string   `json:"scale"`
	Min         *float64 `json:"min,omitempty"`
	Max         *float64 `json:"max,omitempty"`

	Views []View `json:"views"`
}

// Load reads a JSON config file and returns Config.
// Fields not set in the file keep their zero values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	return cfg, nil
}

// Flags holds CLI flag values that override config file settings.
type Flags struct {
	MapFile     string
	OutputDir   string
	Format      string
	Supersample int
	Workers     int
	Colormap    string
}

// Resolve fills in any empty fields with defaults.
// CLI flags take priority when non-zero/non-empty.
func (c *Config) Resolve(flags Flags) {
	// CLI flags override config file
	if flags.MapFile != "" {
		c.MapFile = flags.MapFile
	}
	if flags.OutputDir != "" {
		c.OutputDir = flags.OutputDir
	}
	if flags.Format != "" {
		c.Format = flags.Format
	}
	if flags.Supersample > 0 {
		c.Supersample = flags.Supersample
	}
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}
	if flags.Colormap != "" {
		c.Colormap = flags.Colormap
	}

	if c.OutputDir == "" {
		c.OutputDir = "renders"
	}
	c.OutputDir = filepath.Clean(c.OutputDir)

	// Defaults for render settings
	c.Format = strings.ToLower(c.Format)
	if c.Format == "" {
		c.Format = FormatWebP
	}
	if c.Supersample <= 0 {
		c.Supersample = 1
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
	if c.Colormap == "" {
		c.Colormap = raster.ColormapGrey
	}
	if c.Scale == "" {
		c.Scale = raster.ScaleLinear
	}

	// A config with no views renders one full-sky Mollweide.
	if len(c.Views) == 0 {
		c.Views = []View{{Name: "mollweide", Projection: ProjMollweide}}
	}
	for i := range c.Views {
		v := &c.Views[i]
		v.Projection = strings.ToLower(v.Projection)
		if v.Name == "" {
			v.Name = fmt.Sprintf("%s-%d", v.Projection, i)
		}
	}
}

// Validate checks settings that Resolve cannot default.
func (c *Config) Validate() error {
	switch c.Format {
	case FormatWebP, FormatPNG:
	default:
		return fmt.Errorf("config: unknown format %q", c.Format)
	}
	if err := c.ColorOptions().Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	seen := make(map[string]bool, len(c.Views))
	for _, v := range c.Views {
		if seen[v.Name] {
			return fmt.Errorf("config: duplicate view name %q", v.Name)
		}
		seen[v.Name] = true
		if _, err := v.Projector(); err != nil {
			return fmt.Errorf("config: view %q: %w", v.Name, err)
		}
	}
	return nil
}

// ColorOptions builds raster options from the config.
func (c *Config) ColorOptions() raster.ColorOptions {
	opts := raster.ColorOptions{
		Colormap: c.Colormap,
		Scale:    c.Scale,
		Min:      math.NaN(),
		Max:      math.NaN(),
	}
	if c.Min != nil {
		opts.Min = *c.Min
	}
	if c.Max != nil {
		opts.Max = *c.Max
	}
	return opts
}

// Projector builds the projector the view describes.
func (v View) Projector() (projector.Projector, error) {
	pcfg := projector.Config{
		Coord:    v.Coord,
		FlipConv: v.FlipConv,
	}
	if len(v.Rot) > 0 {
		if len(v.Rot) > 3 {
			return nil, fmt.Errorf("rot takes at most 3 angles, got %d", len(v.Rot))
		}
		var e rotator.Euler
		angles := []*float64{&e.Lon, &e.Lat, &e.Psi}
		for k, a := range v.Rot {
			*angles[k] = a
		}
		pcfg.Rot = []rotator.Euler{e}
	}
	if v.XSize != 0 || v.YSize != 0 || v.Reso != 0 {
		pcfg.Plane = &projector.PlaneInfo{XSize: v.XSize, YSize: v.YSize, Reso: v.Reso}
	}
	// Mollweide sizes from XSize alone; without it the default width applies.
	if v.Projection == ProjMollweide && v.XSize == 0 {
		pcfg.Plane = nil
	}

	var (
		p   projector.Projector
		err error
	)
	switch v.Projection {
	case ProjGnomonic:
		p, err = projector.NewGnomonic(pcfg)
	case ProjMollweide:
		p, err = projector.NewMollweide(pcfg)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownProjection, v.Projection)
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}
