// Package nearby provides the nearby-address search bounded context.
// This file defines the public interfaces exposed to other domains. The
// declarations live in the leaf record subpackage to avoid an import cycle
// with the backend subpackages and are re-exported here unchanged.
package nearby

import (
	"addressradar/internal/nearby/record"
)

// OSM address tag keys carried on open-data records.
const (
	TagHouseNumber = record.TagHouseNumber
	TagStreet      = record.TagStreet
	TagCity        = record.TagCity
	TagPostcode    = record.TagPostcode
)

// Record is one nearby address as returned by a search backend. Exactly one
// of the two shapes is populated: a plain vicinity string (commercial
// backend) or an OSM tag mapping with the node coordinate (open-data
// backend). Records are immutable once returned.
type Record = record.Record

// Searcher finds addresses within radius meters of center. Implementations
// report upstream failures as typed apperr errors and never retry; an empty
// slice with a nil error is the legitimate no-results outcome.
type Searcher = record.Searcher
