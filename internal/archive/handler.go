package archive

import (
	"context"
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/momo-deepdive/backend/internal/events"
	"github.com/momo-deepdive/backend/internal/middleware"
	"github.com/momo-deepdive/backend/internal/models"
	"github.com/momo-deepdive/backend/pkg/response"
)

// ProfileSource resolves a caller's stored profile so comments carry
// the author's name and photo. Satisfied by auth.Repository.
type ProfileSource interface {
	GetByUID(ctx context.Context, uid string) (*models.User, error)
}

// Handler exposes the gated archive feed.
type Handler struct {
	repo     *Repository
	gate     *Gate
	profiles ProfileSource
	logger   *zap.Logger
}

// NewHandler creates an archive handler. profiles may be nil.
func NewHandler(repo *Repository, gate *Gate, profiles ProfileSource, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{repo: repo, gate: gate, profiles: profiles, logger: logger}
}

// Access handles GET /archive/access: the binary gate verdict for the
// signed-in user.
func (h *Handler) Access(c *gin.Context) {
	uid := c.GetString(middleware.ContextUID)
	response.OK(c, gin.H{"granted": h.gate.Allows(c.Request.Context(), uid)})
}

func (h *Handler) guard(c *gin.Context) bool {
	uid := c.GetString(middleware.ContextUID)
	if c.GetString(middleware.ContextUserRole) == string(models.RoleAdmin) {
		return true
	}
	if !h.gate.Allows(c.Request.Context(), uid) {
		response.Forbidden(c, "archive access requires a confirmed registration")
		return false
	}
	return true
}

// ListComments handles GET /archive/events/:id/comments.
func (h *Handler) ListComments(c *gin.Context) {
	if !h.guard(c) {
		return
	}
	e := events.ByID(c.Param("id"))
	if e == nil {
		response.NotFound(c, "event not found")
		return
	}
	comments, err := h.repo.ListByEvent(c.Request.Context(), e.ID)
	if err != nil {
		h.logger.Error("list comments failed", zap.Error(err), zap.String("event_id", e.ID))
		response.Internal(c, "failed to load comments")
		return
	}
	response.OK(c, comments)
}

// CommentRequest is the body for POST /archive/events/:id/comments.
type CommentRequest struct {
	Body          string `json:"body" binding:"required"`
	ResourceTitle string `json:"resource_title"`
	ResourceURL   string `json:"resource_url"`
}

// CreateComment handles POST /archive/events/:id/comments.
func (h *Handler) CreateComment(c *gin.Context) {
	if !h.guard(c) {
		return
	}
	e := events.ByID(c.Param("id"))
	if e == nil {
		response.NotFound(c, "event not found")
		return
	}
	var req CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "body required")
		return
	}
	uid := c.GetString(middleware.ContextUID)
	cm := &models.Comment{
		EventID:       e.ID,
		UID:           uid,
		UserName:      c.GetString(middleware.ContextUserEmail),
		Body:          req.Body,
		ResourceTitle: req.ResourceTitle,
		ResourceURL:   req.ResourceURL,
	}
	if h.profiles != nil {
		if u, err := h.profiles.GetByUID(c.Request.Context(), uid); err == nil && u != nil {
			cm.UserName = u.Label()
			cm.UserPhoto = u.PhotoURL
		}
	}
	if err := h.repo.Create(c.Request.Context(), cm); err != nil {
		h.logger.Error("create comment failed", zap.Error(err), zap.String("event_id", e.ID))
		response.Internal(c, "failed to save comment")
		return
	}
	response.Created(c, cm)
}

// DeleteComment handles DELETE /admin/archive/comments/:commentID.
func (h *Handler) DeleteComment(c *gin.Context) {
	id, err := uuid.Parse(c.Param("commentID"))
	if err != nil {
		response.BadRequest(c, "invalid comment id")
		return
	}
	err = h.repo.Delete(c.Request.Context(), id)
	if errors.Is(err, ErrNotFound) {
		response.NotFound(c, "comment not found")
		return
	}
	if err != nil {
		response.Internal(c, "failed to delete comment")
		return
	}
	response.NoContent(c)
}
