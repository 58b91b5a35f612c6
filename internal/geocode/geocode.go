// Package geocode provides the address geocoding bounded context.
// This file defines the public interfaces exposed to other domains.
package geocode

import (
	"context"

	"addressradar/internal/geo"
)

// Geocoder resolves a free-text address into a coordinate.
// Other domains should depend on this interface, not the concrete client.
// A lookup that resolves to no location returns an apperr.KindNotFound error;
// transport and service failures surface as upstream error kinds. No retry or
// backoff is performed.
type Geocoder interface {
	Geocode(ctx context.Context, address string) (geo.Coordinate, error)
}
