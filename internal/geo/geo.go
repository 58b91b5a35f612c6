// Package geo defines geographic value types shared by the domain modules.
package geo

import "fmt"

// Coordinate is an immutable latitude/longitude pair.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// String formats the coordinate as "lat,lng" the way the Google APIs expect.
func (c Coordinate) String() string {
	return fmt.Sprintf("%f,%f", c.Lat, c.Lng)
}

// Radius bounds for nearby searches, in meters. The same value flows to the
// search backend, the Overpass query text, and the rendered circle.
const (
	MinRadiusMeters = 100
	MaxRadiusMeters = 2000
)

// ValidRadius reports whether radius is within the accepted search range.
func ValidRadius(radius int) bool {
	return radius >= MinRadiusMeters && radius <= MaxRadiusMeters
}
