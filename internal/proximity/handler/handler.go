// Package handler exposes the proximity scan endpoints.
package handler

import (
	"net/http"

	"addressradar/internal/mapview"
	"addressradar/internal/proximity/service"
	"addressradar/internal/proximity/transport"
	"addressradar/platform/httpkit"

	"github.com/gin-gonic/gin"
)

const msgInvalidRequest = "address is required; radius must be within [100, 2000]"

// Handler handles HTTP requests for nearby-address scans.
type Handler struct {
	svc *service.Service
}

// New creates a new proximity handler.
func New(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

// Nearby returns the normalized nearby-address list.
// GET /api/v1/addresses/nearby?address=...&radius=...&backend=...
func (h *Handler) Nearby(c *gin.Context) {
	var req transport.NearbyRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}

	result, err := h.svc.Nearby(c.Request.Context(), req, c.GetHeader(httpkit.HeaderAPIKey))
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// MapDocument returns the map view as a JSON document.
// GET /api/v1/addresses/map?address=...&radius=...&backend=...
func (h *Handler) MapDocument(c *gin.Context) {
	var req transport.NearbyRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}

	view, err := h.svc.Map(c.Request.Context(), req, c.GetHeader(httpkit.HeaderAPIKey))
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, view)
}

// MapPage renders the map view as a Leaflet HTML page.
// GET /map?address=...&radius=...&backend=...
func (h *Handler) MapPage(c *gin.Context) {
	var req transport.NearbyRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}

	view, err := h.svc.Map(c.Request.Context(), req, c.GetHeader(httpkit.HeaderAPIKey))
	if httpkit.HandleError(c, err) {
		return
	}

	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(http.StatusOK)
	if err := mapview.RenderHTML(c.Writer, *view); err != nil {
		// Headers are already written; nothing more to send safely.
		_ = c.Error(err)
	}
}
