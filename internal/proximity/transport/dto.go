// Package transport defines the request and response DTOs for the proximity
// endpoints.
package transport

import "addressradar/internal/geo"

// NearbyRequest carries the query parameters of a nearby-address scan.
// Radius is bounded to the same [100, 2000] meter range the UI slider
// offers; zero means "use the configured default".
type NearbyRequest struct {
	Address string `form:"address" binding:"required,min=3" validate:"required,min=3"`
	Radius  int    `form:"radius" binding:"omitempty,min=100,max=2000" validate:"omitempty,min=100,max=2000"`
	Backend string `form:"backend" binding:"omitempty,oneof=places overpass" validate:"omitempty,oneof=places overpass"`
}

// NearbyResponse is the normalized, deduplicated address list for one scan.
// A zero Count with no error is the legitimate empty-result outcome,
// distinct from any failure.
type NearbyResponse struct {
	Query     string         `json:"query"`
	Postcode  string         `json:"postcode,omitempty"`
	Center    geo.Coordinate `json:"center"`
	Backend   string         `json:"backend"`
	Radius    int            `json:"radius"`
	Count     int            `json:"count"`
	Addresses []string       `json:"addresses"`
}
