package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"skyproj/internal/batch"
	"skyproj/internal/config"
	"skyproj/internal/metrics"
	"skyproj/internal/skymap"
)

// demoMap is the cache key of the built-in synthetic sky.
const demoMap = "demo:dipole"

func main() {
	// CLI flags
	configFile := flag.String("config", "", "Path to config.json file")
	mapFile := flag.String("map", "", "Equirectangular sky map image (PNG, JPEG or TGA)")
	demo := flag.Bool("demo", false, "Render a built-in synthetic sky instead of -map")
	outputDir := flag.String("output", "", "Output directory (default: renders)")
	format := flag.String("format", "", "Output format: webp or png (default: webp)")
	colormap := flag.String("colormap", "", "Colormap: grey or heat (default: grey)")
	supersample := flag.Int("supersample", 0, "Supersampling factor (default: 1)")
	workers := flag.Int("workers", 0, "Number of worker goroutines (default: NumCPU)")
	metricsAddr := flag.String("metrics-addr", "", "Serve Prometheus metrics on this address, e.g. :9090")
	verbose := flag.Bool("v", false, "Debug logging")

	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	// Load config
	var cfg config.Config
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			logger.Error("loading config", "err", err)
			os.Exit(1)
		}
	}

	// CLI flags override config file
	cfg.Resolve(config.Flags{
		MapFile:     *mapFile,
		OutputDir:   *outputDir,
		Format:      *format,
		Supersample: *supersample,
		Workers:     *workers,
		Colormap:    *colormap,
	})

	maps := skymap.NewCache()
	if *demo {
		m, err := skymap.FromFunc(720, 360, dipole)
		if err != nil {
			logger.Error("building demo map", "err", err)
			os.Exit(1)
		}
		maps.Put(demoMap, m)
		cfg.MapFile = demoMap
	}

	if cfg.MapFile == "" {
		logger.Error("no sky map: use -map, -demo or map_file in config.json")
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid config", "err", err)
		os.Exit(1)
	}

	if *metricsAddr != "" {
		go serveMetrics(logger, *metricsAddr)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logger.Info("rendering",
		"map", cfg.MapFile,
		"views", len(cfg.Views),
		"workers", cfg.Workers,
		"supersample", cfg.Supersample,
		"output", cfg.OutputDir,
	)

	start := time.Now()
	results := batch.Run(ctx, batch.FromConfig(cfg, maps, logger), cfg.Views)

	// Count results
	success, failed := 0, 0
	for _, r := range results {
		if r.Success {
			success++
		} else {
			failed++
		}
	}
	logger.Info("done", "rendered", success, "failed", failed, "elapsed", time.Since(start).Round(time.Millisecond))

	// Write manifest
	manifestPath := filepath.Join(cfg.OutputDir, "manifest.json")
	if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
		logger.Warn("manifest dir", "err", err)
	} else if err := batch.WriteManifest(manifestPath, results); err != nil {
		logger.Warn("manifest write failed", "err", err)
	} else {
		logger.Info("manifest", "path", manifestPath)
	}

	if failed > 0 {
		os.Exit(1)
	}
}

func serveMetrics(logger *slog.Logger, addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler())
	logger.Info("metrics listening", "addr", addr)
	if err := http.ListenAndServe(addr, mux); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("metrics server", "err", fmt.Errorf("serve %s: %w", addr, err))
	}
}

// dipole is a smooth test sky: a dipole toward (lon 264°, lat 48°) over a
// band brighter near the equator.
func dipole(lon, lat float64) float64 {
	const dlon, dlat = 264 * math.Pi / 180, 48 * math.Pi / 180
	l, b := lon*math.Pi/180, lat*math.Pi/180
	cos := math.Sin(b)*math.Sin(dlat) + math.Cos(b)*math.Cos(dlat)*math.Cos(l-dlon)
	return cos + 2*math.Exp(-b*b/0.02)
}
