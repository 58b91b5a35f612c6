// Package record holds the leaf types of the nearby-search bounded context.
// It exists so the backend subpackages and the parent nearby package can
// share these declarations without an import cycle; the nearby package
// re-exports them under their original names.
package record

import (
	"context"

	"addressradar/internal/geo"
)

// OSM address tag keys carried on open-data records.
const (
	TagHouseNumber = "addr:housenumber"
	TagStreet      = "addr:street"
	TagCity        = "addr:city"
	TagPostcode    = "addr:postcode"
)

// Record is one nearby address as returned by a search backend. Exactly one
// of the two shapes is populated: a plain vicinity string (commercial
// backend) or an OSM tag mapping with the node coordinate (open-data
// backend). Records are immutable once returned.
type Record struct {
	// Vicinity is the short-form display address from the commercial service.
	Vicinity string
	// Tags is the addr:* tag mapping of an OSM node.
	Tags map[string]string
	// Coord is the node location for open-data records. Commercial records
	// arrive without coordinates and must be re-geocoded before rendering.
	Coord *geo.Coordinate
}

// HasCoordinate reports whether the record carries its own location.
func (r Record) HasCoordinate() bool {
	return r.Coord != nil
}

// Searcher finds addresses within radius meters of center. Implementations
// report upstream failures as typed apperr errors and never retry; an empty
// slice with a nil error is the legitimate no-results outcome.
type Searcher interface {
	Search(ctx context.Context, center geo.Coordinate, radius int) ([]Record, error)
}
