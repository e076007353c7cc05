package batch

import (
	"context"
	"fmt"
	"image"
	"image/png"
	"io"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"skyproj/internal/config"
	"skyproj/internal/mathutil"
	"skyproj/internal/metrics"
	"skyproj/internal/postprocess"
	"skyproj/internal/projector"
	"skyproj/internal/raster"
	"skyproj/internal/skymap"

	"github.com/HugoSmits86/nativewebp"
)

// Config holds all shared resources for a batch run.
type Config struct {
	MapFile     string
	MapCoord    string
	OutputDir   string
	Maps        *skymap.Cache
	Colors      raster.ColorOptions
	Format      string
	Supersample int
	Workers     int
	Logger      *slog.Logger
}

// FromConfig builds a batch config from a resolved job config.
func FromConfig(cfg config.Config, maps *skymap.Cache, logger *slog.Logger) Config {
	return Config{
		MapFile:     cfg.MapFile,
		MapCoord:    cfg.MapCoord,
		OutputDir:   cfg.OutputDir,
		Maps:        maps,
		Colors:      cfg.ColorOptions(),
		Format:      cfg.Format,
		Supersample: cfg.Supersample,
		Workers:     cfg.Workers,
		Logger:      logger,
	}
}

// Result holds the outcome of rendering one view.
type Result struct {
	Name    string
	Success bool
	Error   string
	Entry   ManifestEntry
}

// Run renders all views using a worker pool. Views not yet started when
// ctx is cancelled are reported as failed.
func Run(ctx context.Context, cfg Config, views []config.View) []Result {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	workers := cfg.Workers
	if workers <= 0 {
		workers = 1
	}

	total := len(views)
	results := make([]Result, total)
	var processed atomic.Int64

	start := time.Now()

	// Progress reporter
	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(2 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				if p := processed.Load(); p > 0 {
					rate := float64(p) / time.Since(start).Seconds()
					logger.Info("progress", "done", p, "total", total, "views_per_sec", rate)
				}
			}
		}
	}()

	// Worker pool
	viewChan := make(chan int, workers*2)
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range viewChan {
				if err := ctx.Err(); err != nil {
					results[idx] = Result{Name: views[idx].Name, Error: err.Error()}
				} else {
					results[idx] = processView(cfg, logger, views[idx])
				}
				processed.Add(1)
			}
		}()
	}

	// Send work
	for i := range views {
		viewChan <- i
	}
	close(viewChan)

	wg.Wait()
	close(done)
	metrics.SetMapsLoaded(cfg.Maps.Len())

	return results
}

func processView(cfg Config, logger *slog.Logger, view config.View) Result {
	start := time.Now()
	res, err := renderView(cfg, view)
	if err != nil {
		metrics.ObserveRender(view.Projection, false, time.Since(start))
		logger.Error("render failed", "view", view.Name, "projection", view.Projection, "err", err)
		return Result{Name: view.Name, Error: err.Error()}
	}
	metrics.ObserveRender(view.Projection, true, time.Since(start))
	logger.Debug("rendered", "view", view.Name, "image", res.Entry.Image,
		"elapsed", time.Since(start), "coverage", res.Entry.Coverage)
	return res
}

func renderView(cfg Config, view config.View) (Result, error) {
	m, err := cfg.Maps.Get(cfg.MapFile)
	if err != nil {
		return Result{}, err
	}

	p, err := view.Projector()
	if err != nil {
		return Result{}, err
	}
	plane := p.PlaneInfo()
	if plane == nil {
		return Result{}, projector.ErrNoPlaneInfo
	}

	// Supersampling renders the same field of view on a finer grid.
	render := p
	if ss := cfg.Supersample; ss > 1 {
		fine := view
		fine.XSize = plane.XSize * ss
		fine.YSize = plane.YSize * ss
		fine.Reso = plane.Reso / float64(ss)
		if render, err = fine.Projector(); err != nil {
			return Result{}, err
		}
	}

	buf, err := projector.Projmap(render, m.Values, m.Vec2PixSlices, nil, cfg.MapCoord)
	if err != nil {
		return Result{}, err
	}
	rendered, blank := buf.Coverage()
	metrics.AddPlanePixels(view.Projection, rendered, blank)

	img, err := raster.Render(buf, cfg.Colors)
	if err != nil {
		return Result{}, err
	}
	if cfg.Supersample > 1 {
		img = postprocess.Downsample(img, plane.XSize, plane.YSize)
	}

	rel := view.Name + "." + cfg.Format
	outPath := filepath.Join(cfg.OutputDir, rel)
	if err := os.MkdirAll(filepath.Dir(outPath), 0755); err != nil {
		return Result{}, err
	}
	if err := writeImage(outPath, cfg.Format, img); err != nil {
		return Result{}, err
	}

	ext, err := p.Extent()
	if err != nil {
		return Result{}, err
	}
	lon, lat := p.Center(true)
	coverage := 0.0
	if n := rendered + blank; n > 0 {
		coverage = float64(rendered) / float64(n)
	}

	return Result{
		Name:    view.Name,
		Success: true,
		Entry: ManifestEntry{
			Name:       view.Name,
			Projection: p.Name(),
			Coord:      p.CoordSysLabel(),
			Width:      plane.XSize,
			Height:     plane.YSize,
			Extent:     [4]float64{ext.Left, ext.Right, ext.Bottom, ext.Top},
			FOVDeg:     mathutil.Rad2Deg(p.FOV()),
			CenterLon:  lon,
			CenterLat:  lat,
			Coverage:   math.Round(coverage*1e4) / 1e4,
			Image:      rel,
		},
	}, nil
}

func writeImage(path, format string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := encode(f, format, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func encode(w io.Writer, format string, img image.Image) error {
	switch format {
	case config.FormatWebP:
		if err := nativewebp.Encode(w, img, nil); err != nil {
			return fmt.Errorf("WebP encode: %w", err)
		}
		return nil
	case config.FormatPNG:
		if err := png.Encode(w, img); err != nil {
			return fmt.Errorf("PNG encode: %w", err)
		}
		return nil
	}
	return fmt.Errorf("unknown format %q", format)
}
