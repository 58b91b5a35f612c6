// Package mapview builds the terminal map artifact: a primary marker, a
// radius circle and a clustered set of nearby-address markers on a tile
// layer, with a fallback provider when the preferred layer fails validation.
package mapview

import (
	"context"

	"addressradar/internal/geo"
	"addressradar/internal/geocode"
	"addressradar/platform/logger"
)

// The zoom level every map is rendered at.
const defaultZoom = 17

// Marker is one point on the map with a popup.
type Marker struct {
	Coord geo.Coordinate `json:"coord"`
	Popup string         `json:"popup"`
	Color string         `json:"color"`
	Icon  string         `json:"icon"`
}

// Circle is the unfilled search-radius circle around the primary marker.
type Circle struct {
	Center       geo.Coordinate `json:"center"`
	RadiusMeters int            `json:"radiusMeters"`
	Color        string         `json:"color"`
	Fill         bool           `json:"fill"`
}

// View is the rendered map document handed to the display layer. It is a
// terminal artifact: nothing mutates it after Build returns.
type View struct {
	Center  geo.Coordinate `json:"center"`
	Zoom    int            `json:"zoom"`
	Tiles   TileLayer      `json:"tiles"`
	Warning string         `json:"warning,omitempty"`
	Primary Marker         `json:"primary"`
	Circle  Circle         `json:"circle"`
	Cluster []Marker       `json:"cluster"`
}

// Placement is one nearby address to place inside the cluster layer. Coord
// is nil for commercial-service records, which arrive as addresses and are
// re-geocoded one call per record during Build.
type Placement struct {
	Label string
	Coord *geo.Coordinate
}

// Builder assembles map views from a tile catalog.
type Builder struct {
	catalog Catalog
	log     *logger.Logger
}

// NewBuilder creates a view builder over the given tile catalog.
func NewBuilder(catalog Catalog, log *logger.Logger) *Builder {
	return &Builder{catalog: catalog, log: log}
}

// Build assembles the map view: the distinguished primary marker with an
// info popup, the unfilled radius circle, and one clustered marker per
// placement. Placements without a coordinate are re-geocoded through
// geocoder; a failed re-geocode skips that marker and never fails the view.
func (b *Builder) Build(ctx context.Context, primaryLabel string, center geo.Coordinate, radius int, placements []Placement, geocoder geocode.Geocoder) View {
	view := View{
		Center: center,
		Zoom:   defaultZoom,
		Primary: Marker{
			Coord: center,
			Popup: primaryLabel,
			Color: "red",
			Icon:  "info-sign",
		},
		Circle: Circle{
			Center:       center,
			RadiusMeters: radius,
			Color:        "blue",
			Fill:         false,
		},
		Cluster: make([]Marker, 0, len(placements)),
	}

	view.Tiles = b.catalog.Preferred
	if err := view.Tiles.Validate(); err != nil {
		b.log.Warn("tile layer rejected, using fallback", "layer", view.Tiles.Name, "error", err)
		view.Tiles = b.catalog.Fallback
		view.Warning = "tile attribution error: switched to " + view.Tiles.Name + " tiles"
	}

	for _, p := range placements {
		coord := p.Coord
		if coord == nil {
			resolved, err := geocoder.Geocode(ctx, p.Label)
			if err != nil {
				b.log.Debug("skipping marker: re-geocode failed", "address", p.Label, "error", err)
				continue
			}
			coord = &resolved
		}
		view.Cluster = append(view.Cluster, Marker{
			Coord: *coord,
			Popup: p.Label,
			Color: "blue",
			Icon:  "home",
		})
	}

	return view
}
