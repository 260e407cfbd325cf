package rsvps

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/momo-deepdive/backend/internal/events"
	"github.com/momo-deepdive/backend/internal/middleware"
	"github.com/momo-deepdive/backend/internal/models"
	"github.com/momo-deepdive/backend/pkg/queue"
	"github.com/momo-deepdive/backend/pkg/response"
)

// Steps the RSVP flow resolves to. A user with a saved registration
// goes straight to their ticket; everyone else gets the decision form.
const (
	StepTicket   = "ticket"
	StepDecision = "decision"
)

// ProfileSource looks up the caller's stored profile and refreshes its
// activity marker. Satisfied by auth.Repository.
type ProfileSource interface {
	GetByUID(ctx context.Context, uid string) (*models.User, error)
	TouchLastSeen(ctx context.Context, uid string) error
}

// Handler handles guest-facing registration endpoints.
type Handler struct {
	repo      *Repository
	eventRepo *events.Repository
	profiles  ProfileSource
	queue     *queue.Queue
	logger    *zap.Logger
}

// NewHandler creates an RSVP handler. profiles and queue may be nil
// when activity tracking or confirmation emails are disabled.
func NewHandler(repo *Repository, eventRepo *events.Repository, profiles ProfileSource, q *queue.Queue, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{repo: repo, eventRepo: eventRepo, profiles: profiles, queue: q, logger: logger}
}

func (h *Handler) revealedEvent(c *gin.Context) *models.EventConfig {
	e := events.ByID(c.Param("id"))
	if e == nil || !e.Revealed(time.Now()) {
		response.NotFound(c, "event not found")
		return nil
	}
	return e
}

// Resolve handles GET /events/:id/rsvp: returns where the signed-in
// user is in the flow and their registration when one exists.
func (h *Handler) Resolve(c *gin.Context) {
	e := h.revealedEvent(c)
	if e == nil {
		return
	}
	uid := c.GetString(middleware.ContextUID)
	rsvp, err := h.repo.GetByEventAndUID(c.Request.Context(), e.ID, uid)
	if err != nil {
		h.logger.Error("resolve rsvp failed", zap.Error(err), zap.String("event_id", e.ID), zap.String("uid", uid))
		response.Internal(c, "failed to load registration")
		return
	}
	if rsvp == nil {
		response.OK(c, gin.H{"step": StepDecision})
		return
	}
	response.OK(c, gin.H{"step": StepTicket, "rsvp": rsvp})
}

// SaveRequest is the body for PUT /events/:id/rsvp.
type SaveRequest struct {
	Type      models.AttendanceType `json:"type" binding:"required"`
	Attendees []models.Attendee     `json:"attendees"`
}

func validateAttendees(attendees []models.Attendee) error {
	if len(attendees) == 0 {
		return fmt.Errorf("at least one attendee required")
	}
	for i, a := range attendees {
		if strings.TrimSpace(a.Name) == "" || strings.TrimSpace(a.Email) == "" || strings.TrimSpace(a.WhatsApp) == "" {
			return fmt.Errorf("attendee %d: name, email and whatsapp are all required", i+1)
		}
	}
	return nil
}

// Validate enforces the details-step rules. The attendee roster is
// required in both attendance modes; only the capacity check is
// specific to in-person parties.
func (r SaveRequest) Validate() error {
	if !r.Type.Valid() {
		return fmt.Errorf("type must be in-person or online")
	}
	return validateAttendees(r.Attendees)
}

// Save handles PUT /events/:id/rsvp: creates or replaces the signed-in
// user's registration. In-person parties are capacity checked against
// the seats the party would occupy.
func (h *Handler) Save(c *gin.Context) {
	e := h.revealedEvent(c)
	if e == nil {
		return
	}
	now := time.Now()
	if e.Status(now) == models.EventPast {
		response.Conflict(c, "event is over")
		return
	}

	var req SaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	ctx := c.Request.Context()
	uid := c.GetString(middleware.ContextUID)
	email := c.GetString(middleware.ContextUserEmail)

	rsvp := &models.RSVP{
		ID:        models.RSVPDocID(e.ID, uid),
		EventID:   e.ID,
		UID:       uid,
		UserEmail: email,
		Type:      req.Type,
		Status:    models.StatusConfirmed,
		Attendees: req.Attendees,
	}
	if len(req.Attendees) > 0 {
		rsvp.UserName = req.Attendees[0].Name
	}
	if h.profiles != nil {
		if u, err := h.profiles.GetByUID(ctx, uid); err == nil && u != nil {
			rsvp.UserPhoto = u.PhotoURL
		}
	}

	if req.Type == models.TypeInPerson {
		capacity := e.Capacity
		if override, ok, err := h.eventRepo.CapacityOverride(ctx, e.ID); err == nil && ok {
			capacity = override
		}
		taken, err := h.repo.InPersonHeadcount(ctx, e.ID)
		if err != nil {
			h.logger.Error("headcount failed", zap.Error(err), zap.String("event_id", e.ID))
			response.Internal(c, "failed to check capacity")
			return
		}
		// A resave replaces the user's existing party, so it frees
		// those seats first.
		if existing, err := h.repo.GetByEventAndUID(ctx, e.ID, uid); err == nil && existing != nil && existing.Type == models.TypeInPerson {
			taken -= existing.Headcount()
		}
		if taken+rsvp.Headcount() > capacity {
			response.Conflict(c, "event is fully booked")
			return
		}
	}

	if err := h.repo.Upsert(ctx, rsvp); err != nil {
		h.logger.Error("save rsvp failed", zap.Error(err), zap.String("id", rsvp.ID))
		response.Internal(c, "failed to save registration")
		return
	}

	if h.profiles != nil {
		if err := h.profiles.TouchLastSeen(ctx, uid); err != nil {
			h.logger.Warn("touch last_seen failed", zap.Error(err), zap.String("uid", uid))
		}
	}

	if h.queue != nil && email != "" {
		payload := queue.EmailPayload{
			EmailType:      queue.EmailConfirmation,
			RecipientEmail: email,
			Subject:        "Deine Anmeldung: " + e.Title,
			BodyText: fmt.Sprintf("Du bist angemeldet für %s am %s in %s. Dein Ticket findest du jederzeit auf der Event-Seite.",
				e.Title, e.StartsAt.Format("02.01.2006 15:04"), e.Location),
		}
		if err := h.queue.EnqueueEmail(ctx, payload); err != nil {
			h.logger.Warn("confirmation email enqueue failed", zap.Error(err), zap.String("id", rsvp.ID))
		}
	}

	response.OK(c, gin.H{"step": StepTicket, "rsvp": rsvp})
}

// Cancel handles DELETE /events/:id/rsvp.
func (h *Handler) Cancel(c *gin.Context) {
	e := h.revealedEvent(c)
	if e == nil {
		return
	}
	uid := c.GetString(middleware.ContextUID)
	err := h.repo.Delete(c.Request.Context(), models.RSVPDocID(e.ID, uid))
	if err == ErrNotFound {
		response.NotFound(c, "no registration to cancel")
		return
	}
	if err != nil {
		h.logger.Error("cancel rsvp failed", zap.Error(err), zap.String("event_id", e.ID), zap.String("uid", uid))
		response.Internal(c, "failed to cancel registration")
		return
	}
	response.OK(c, gin.H{"step": StepDecision})
}

// Access handles GET /events/:id/access: stream and replay references,
// visible only to registered users while the event is live or over.
func (h *Handler) Access(c *gin.Context) {
	e := h.revealedEvent(c)
	if e == nil {
		return
	}
	uid := c.GetString(middleware.ContextUID)
	rsvp, err := h.repo.GetByEventAndUID(c.Request.Context(), e.ID, uid)
	if err != nil {
		response.Internal(c, "failed to load registration")
		return
	}
	if rsvp == nil {
		response.Forbidden(c, "registration required")
		return
	}
	status := e.Status(time.Now())
	if status == models.EventUpcoming {
		response.OK(c, gin.H{"status": status})
		return
	}
	video := e.Video
	if video == nil {
		video = &models.VideoRefs{}
	}
	response.OK(c, gin.H{"status": status, "video": video, "assets": e.Assets})
}
