package mapview

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// TileLayer describes one tile provider for the rendered map.
type TileLayer struct {
	Name        string `json:"name" yaml:"name"`
	URL         string `json:"url" yaml:"url"`
	Attribution string `json:"attribution" yaml:"attribution"`
}

// Validate rejects layers the display layer cannot initialize: a layer needs
// a URL template, and any non-OSM layer must carry an attribution string.
func (t TileLayer) Validate() error {
	if t.URL == "" {
		return fmt.Errorf("tile layer %q has no url template", t.Name)
	}
	if t.Attribution == "" && t.Name != fallbackLayerName {
		return fmt.Errorf("tile layer %q has no attribution", t.Name)
	}
	return nil
}

const fallbackLayerName = "OpenStreetMap"

// Catalog holds the preferred tile layer and the always-valid fallback.
type Catalog struct {
	Preferred TileLayer `yaml:"preferred"`
	Fallback  TileLayer `yaml:"fallback"`
}

// DefaultCatalog returns the built-in providers: Stamen Toner tiles as the
// preferred layer and plain OpenStreetMap as the fallback.
func DefaultCatalog() Catalog {
	return Catalog{
		Preferred: TileLayer{
			Name:        "Stamen Toner",
			URL:         "https://stamen-tiles.a.ssl.fastly.net/toner/{z}/{x}/{y}.png",
			Attribution: "Map tiles by Stamen Design, under CC BY 3.0.",
		},
		Fallback: TileLayer{
			Name:        fallbackLayerName,
			URL:         "https://tile.openstreetmap.org/{z}/{x}/{y}.png",
			Attribution: "&copy; OpenStreetMap contributors",
		},
	}
}

// LoadCatalog reads a tile catalog from a YAML file, filling missing layers
// from the defaults. An empty path returns the defaults unchanged.
func LoadCatalog(path string) (Catalog, error) {
	catalog := DefaultCatalog()
	if path == "" {
		return catalog, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return Catalog{}, fmt.Errorf("read tile config: %w", err)
	}

	var fileCatalog Catalog
	if err := yaml.Unmarshal(raw, &fileCatalog); err != nil {
		return Catalog{}, fmt.Errorf("parse tile config: %w", err)
	}

	if fileCatalog.Preferred.URL != "" || fileCatalog.Preferred.Name != "" {
		catalog.Preferred = fileCatalog.Preferred
	}
	if fileCatalog.Fallback.URL != "" {
		catalog.Fallback = fileCatalog.Fallback
	}

	return catalog, nil
}
