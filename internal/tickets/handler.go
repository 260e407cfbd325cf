package tickets

import (
	"time"

	"github.com/gin-gonic/gin"
	qrcode "github.com/skip2/go-qrcode"
	"go.uber.org/zap"

	"github.com/momo-deepdive/backend/internal/events"
	"github.com/momo-deepdive/backend/internal/middleware"
	"github.com/momo-deepdive/backend/internal/models"
	"github.com/momo-deepdive/backend/internal/rsvps"
	"github.com/momo-deepdive/backend/pkg/response"
)

const qrImageSize = 512

// Handler serves a registered user's ticket renderings.
type Handler struct {
	rsvps   *rsvps.Repository
	baseURL string
	logger  *zap.Logger
}

// NewHandler creates a tickets handler. baseURL is the public site
// origin, used for the URL line in calendar files.
func NewHandler(repo *rsvps.Repository, baseURL string, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{rsvps: repo, baseURL: baseURL, logger: logger}
}

// ticketContext loads the event and the caller's registration, writing
// the error response itself when either is missing.
func (h *Handler) ticketContext(c *gin.Context) (*models.EventConfig, *models.RSVP) {
	e := events.ByID(c.Param("id"))
	if e == nil || !e.Revealed(time.Now()) {
		response.NotFound(c, "event not found")
		return nil, nil
	}
	uid := c.GetString(middleware.ContextUID)
	rsvp, err := h.rsvps.GetByEventAndUID(c.Request.Context(), e.ID, uid)
	if err != nil {
		h.logger.Error("load registration failed", zap.Error(err), zap.String("event_id", e.ID), zap.String("uid", uid))
		response.Internal(c, "failed to load registration")
		return nil, nil
	}
	if rsvp == nil {
		response.NotFound(c, "no registration for this event")
		return nil, nil
	}
	return e, rsvp
}

// Get handles GET /events/:id/ticket: the registration plus the
// payloads the client renders from it.
func (h *Handler) Get(c *gin.Context) {
	e, rsvp := h.ticketContext(c)
	if e == nil {
		return
	}
	response.OK(c, gin.H{
		"rsvp":         rsvp,
		"qr_payload":   QRPayload(e, rsvp.UID),
		"calendar_url": GoogleCalendarURL(e),
	})
}

// QRImage handles GET /events/:id/ticket/qr.png: the scannable code as
// a PNG.
func (h *Handler) QRImage(c *gin.Context) {
	e, rsvp := h.ticketContext(c)
	if e == nil {
		return
	}
	png, err := qrcode.Encode(QRPayload(e, rsvp.UID), qrcode.Medium, qrImageSize)
	if err != nil {
		h.logger.Error("qr encode failed", zap.Error(err), zap.String("event_id", e.ID))
		response.Internal(c, "failed to render code")
		return
	}
	c.Header("Cache-Control", "private, max-age=3600")
	c.Data(200, "image/png", png)
}

// ICSFile handles GET /events/:id/ticket/ticket.ics: the downloadable
// calendar attachment.
func (h *Handler) ICSFile(c *gin.Context) {
	e, _ := h.ticketContext(c)
	if e == nil {
		return
	}
	c.Header("Content-Disposition", `attachment; filename="event.ics"`)
	c.Data(200, "text/calendar; charset=utf-8", []byte(ICS(e, h.baseURL+"/events/"+e.ID)))
}
