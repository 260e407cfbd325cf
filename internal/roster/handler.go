package roster

import (
	"fmt"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/momo-deepdive/backend/internal/events"
	"github.com/momo-deepdive/backend/internal/models"
	"github.com/momo-deepdive/backend/internal/rsvps"
	"github.com/momo-deepdive/backend/pkg/response"
)

// Handler exposes the admin roster console endpoints.
type Handler struct {
	rsvps    *rsvps.Repository
	timezone *time.Location
	logger   *zap.Logger
}

// NewHandler creates a roster handler. timezone localizes CSV export
// timestamps; nil falls back to UTC.
func NewHandler(repo *rsvps.Repository, timezone *time.Location, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if timezone == nil {
		timezone = time.UTC
	}
	return &Handler{rsvps: repo, timezone: timezone, logger: logger}
}

func (h *Handler) loadEvent(c *gin.Context) *models.EventConfig {
	e := events.ByID(c.Param("id"))
	if e == nil {
		response.NotFound(c, "event not found")
		return nil
	}
	return e
}

func (h *Handler) snapshot(c *gin.Context, eventID string) ([]*models.RSVP, bool) {
	rows, err := h.rsvps.ListByEvent(c.Request.Context(), eventID)
	if err != nil {
		h.logger.Error("load roster failed", zap.Error(err), zap.String("event_id", eventID))
		response.Internal(c, "failed to load roster")
		return nil, false
	}
	return rows, true
}

// List handles GET /admin/events/:id/roster. Stats cover the whole
// roster; the ?q= filter narrows only the returned rows.
func (h *Handler) List(c *gin.Context) {
	e := h.loadEvent(c)
	if e == nil {
		return
	}
	rows, ok := h.snapshot(c, e.ID)
	if !ok {
		return
	}
	response.OK(c, gin.H{
		"stats": ComputeStats(rows),
		"rsvps": Filter(rows, c.Query("q")),
	})
}

// Export handles GET /admin/events/:id/roster/export: the flattened
// attendee CSV, honoring the same ?q= filter as the list.
func (h *Handler) Export(c *gin.Context) {
	e := h.loadEvent(c)
	if e == nil {
		return
	}
	rows, ok := h.snapshot(c, e.ID)
	if !ok {
		return
	}
	csv := ExportCSV(Filter(rows, c.Query("q")), h.timezone)
	filename := fmt.Sprintf("rsvps_export_%s.csv", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(200, "text/csv; charset=utf-8", []byte(csv))
}

// ManualCreateRequest is the body for POST /admin/events/:id/roster.
type ManualCreateRequest struct {
	Name  string                `json:"name" binding:"required"`
	Email string                `json:"email" binding:"required"`
	Type  models.AttendanceType `json:"type" binding:"required"`
}

// ManualCreate registers a walk-in without any auth step. The
// synthesized registrant id keeps the row scannable and exportable
// like any other.
func (h *Handler) ManualCreate(c *gin.Context) {
	e := h.loadEvent(c)
	if e == nil {
		return
	}
	var req ManualCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	if !req.Type.Valid() {
		response.BadRequest(c, "type must be in-person or online")
		return
	}

	uid := fmt.Sprintf("manual_%d", time.Now().Unix())
	rsvp := &models.RSVP{
		ID:        models.RSVPDocID(e.ID, uid),
		EventID:   e.ID,
		UID:       uid,
		UserName:  strings.TrimSpace(req.Name),
		UserEmail: strings.TrimSpace(req.Email),
		Type:      req.Type,
		Status:    models.StatusConfirmed,
		Attendees: []models.Attendee{{Name: strings.TrimSpace(req.Name), Email: strings.TrimSpace(req.Email), WhatsApp: ""}},
		IsManual:  true,
	}
	if err := h.rsvps.Upsert(c.Request.Context(), rsvp); err != nil {
		h.logger.Error("manual create failed", zap.Error(err), zap.String("event_id", e.ID))
		response.Internal(c, "failed to create registration")
		return
	}
	response.Created(c, rsvp)
}

// UpdateRequest is the body for PUT /admin/events/:id/roster/:rsvpID.
type UpdateRequest struct {
	Name       string                `json:"name" binding:"required"`
	Email      string                `json:"email" binding:"required"`
	Type       models.AttendanceType `json:"type" binding:"required"`
	Attendees  []models.Attendee     `json:"attendees"`
	AdminNotes string                `json:"admin_notes"`
	CheckedIn  bool                  `json:"checked_in"`
}

// Update rewrites a registration from the console edit form.
func (h *Handler) Update(c *gin.Context) {
	e := h.loadEvent(c)
	if e == nil {
		return
	}
	var req UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	if !req.Type.Valid() {
		response.BadRequest(c, "type must be in-person or online")
		return
	}
	rsvp := &models.RSVP{
		ID:         c.Param("rsvpID"),
		UserName:   req.Name,
		UserEmail:  req.Email,
		Type:       req.Type,
		Attendees:  req.Attendees,
		AdminNotes: req.AdminNotes,
		CheckedIn:  req.CheckedIn,
	}
	if rsvp.Attendees == nil {
		rsvp.Attendees = []models.Attendee{}
	}
	err := h.rsvps.Update(c.Request.Context(), rsvp)
	if err == rsvps.ErrNotFound {
		response.NotFound(c, "registration not found")
		return
	}
	if err != nil {
		h.logger.Error("update registration failed", zap.Error(err), zap.String("rsvp_id", rsvp.ID))
		response.Internal(c, "failed to update registration")
		return
	}
	response.OK(c, rsvp)
}

// NoteRequest is the body for PATCH /admin/events/:id/roster/:rsvpID/note.
type NoteRequest struct {
	Notes string `json:"notes"`
}

// UpdateNote saves the free-text operator note.
func (h *Handler) UpdateNote(c *gin.Context) {
	var req NoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request")
		return
	}
	id := c.Param("rsvpID")
	err := h.rsvps.UpdateNotes(c.Request.Context(), id, req.Notes)
	if err == rsvps.ErrNotFound {
		response.NotFound(c, "registration not found")
		return
	}
	if err != nil {
		h.logger.Error("update note failed", zap.Error(err), zap.String("rsvp_id", id))
		response.Internal(c, "failed to save note")
		return
	}
	response.OK(c, gin.H{"id": id, "admin_notes": req.Notes})
}

// ToggleCheckIn flips the attendance flag from the console list.
func (h *Handler) ToggleCheckIn(c *gin.Context) {
	id := c.Param("rsvpID")
	checkedIn, err := h.rsvps.ToggleCheckIn(c.Request.Context(), id)
	if err == rsvps.ErrNotFound {
		response.NotFound(c, "registration not found")
		return
	}
	if err != nil {
		h.logger.Error("toggle check-in failed", zap.Error(err), zap.String("rsvp_id", id))
		response.Internal(c, "failed to toggle check-in")
		return
	}
	response.OK(c, gin.H{"id": id, "checked_in": checkedIn})
}

// Delete removes a registration entirely.
func (h *Handler) Delete(c *gin.Context) {
	id := c.Param("rsvpID")
	err := h.rsvps.Delete(c.Request.Context(), id)
	if err == rsvps.ErrNotFound {
		response.NotFound(c, "registration not found")
		return
	}
	if err != nil {
		h.logger.Error("delete registration failed", zap.Error(err), zap.String("rsvp_id", id))
		response.Internal(c, "failed to delete registration")
		return
	}
	response.NoContent(c)
}
