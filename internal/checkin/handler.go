package checkin

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/momo-deepdive/backend/internal/events"
	"github.com/momo-deepdive/backend/pkg/response"
)

// Handler exposes the scan service over plain HTTP for scanner clients
// that decode frames locally and post each hit.
type Handler struct {
	svc    *Service
	hub    *Hub
	logger *zap.Logger
}

// NewHandler creates a check-in handler.
func NewHandler(svc *Service, hub *Hub, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{svc: svc, hub: hub, logger: logger}
}

// ScanRequest is the body for POST /admin/events/:id/checkin/scan.
type ScanRequest struct {
	Payload string `json:"payload" binding:"required"`
}

// Scan handles a single decoded QR payload.
func (h *Handler) Scan(c *gin.Context) {
	e := events.ByID(c.Param("id"))
	if e == nil {
		response.NotFound(c, "event not found")
		return
	}
	var req ScanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "payload required")
		return
	}

	result, err := h.svc.Scan(c.Request.Context(), e.ID, req.Payload)
	if err != nil {
		h.logger.Error("scan failed", zap.Error(err), zap.String("event_id", e.ID))
		response.Internal(c, "scan failed, try again")
		return
	}
	if h.hub != nil && result.Outcome == OutcomeCheckedIn {
		h.hub.Broadcast(e.ID, "checked_in", result)
	}
	response.OK(c, result)
}
