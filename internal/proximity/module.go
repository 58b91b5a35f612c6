// Package proximity wires the nearby-address scan pipeline into the HTTP
// layer: geocoding, nearby search, normalization and the rendered map view.
package proximity

import (
	apphttp "addressradar/internal/http"
	"addressradar/internal/proximity/handler"
	"addressradar/internal/proximity/service"
)

// Module is the proximity bounded context module.
type Module struct {
	handler *handler.Handler
}

// NewModule creates and initializes the proximity module.
func NewModule(svc *service.Service) *Module {
	return &Module{handler: handler.New(svc)}
}

// Name returns the module's identifier for logging purposes.
func (m *Module) Name() string {
	return "proximity"
}

// RegisterRoutes mounts the proximity routes.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	group := ctx.V1.Group("/addresses")
	group.GET("/nearby", m.handler.Nearby)
	group.GET("/map", m.handler.MapDocument)

	// The interactive page lives outside the API prefix.
	ctx.Engine.GET("/map", m.handler.MapPage)
}

var _ apphttp.Module = (*Module)(nil)
