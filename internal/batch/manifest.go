package batch

import (
	"encoding/json"
	"os"
)

// ManifestEntry represents one rendered view in the output manifest.
type ManifestEntry struct {
	Name       string     `json:"name"`
	Projection string     `json:"projection"`
	Coord      string     `json:"coord"`
	Width      int        `json:"width"`
	Height     int        `json:"height"`
	Extent     [4]float64 `json:"extent"`
	FOVDeg     float64    `json:"fov_deg"`
	CenterLon  float64    `json:"center_lon"`
	CenterLat  float64    `json:"center_lat"`
	Coverage   float64    `json:"coverage"`
	Image      string     `json:"image"`
}

// WriteManifest writes the successful results as manifest.json.
func WriteManifest(path string, results []Result) error {
	entries := make([]ManifestEntry, 0, len(results))
	for _, r := range results {
		if r.Success {
			entries = append(entries, r.Entry)
		}
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
