package feedback

import (
	"context"
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/momo-deepdive/backend/internal/middleware"
	"github.com/momo-deepdive/backend/internal/models"
	"github.com/momo-deepdive/backend/pkg/response"
)

// ProfileSource resolves a caller's stored profile so inbox rows carry
// the author's name. Satisfied by auth.Repository.
type ProfileSource interface {
	GetByUID(ctx context.Context, uid string) (*models.User, error)
}

// Handler exposes the guest chat widget and the admin inbox over the
// same feedback collection.
type Handler struct {
	repo     *Repository
	seen     SeenStore
	profiles ProfileSource
	logger   *zap.Logger
}

// NewHandler creates a feedback handler. profiles may be nil.
func NewHandler(repo *Repository, seen SeenStore, profiles ProfileSource, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{repo: repo, seen: seen, profiles: profiles, logger: logger}
}

// SubmitRequest is the body for POST /feedback.
type SubmitRequest struct {
	Category string `json:"category"`
	Content  string `json:"content" binding:"required"`
}

// Submit handles a guest message. Each submission is an independent
// item, never appended to a prior one.
func (h *Handler) Submit(c *gin.Context) {
	var req SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "content required")
		return
	}
	if req.Category == "" {
		req.Category = "chat"
	}
	uid := c.GetString(middleware.ContextUID)
	email := c.GetString(middleware.ContextUserEmail)
	f := &models.Feedback{
		UID:       uid,
		UserName:  email,
		UserEmail: email,
		Category:  req.Category,
		Content:   req.Content,
	}
	if h.profiles != nil {
		if u, err := h.profiles.GetByUID(c.Request.Context(), uid); err == nil && u != nil {
			f.UserName = u.Label()
		}
	}
	if err := h.repo.Create(c.Request.Context(), f); err != nil {
		h.logger.Error("create feedback failed", zap.Error(err), zap.String("uid", f.UID))
		response.Internal(c, "failed to save message")
		return
	}
	response.Created(c, f)
}

// ListMine handles GET /feedback: the guest's chat history plus the
// unread badge count.
func (h *Handler) ListMine(c *gin.Context) {
	ctx := c.Request.Context()
	uid := c.GetString(middleware.ContextUID)

	items, err := h.repo.ListByUID(ctx, uid)
	if err != nil {
		h.logger.Error("list feedback failed", zap.Error(err), zap.String("uid", uid))
		response.Internal(c, "failed to load messages")
		return
	}

	answered := 0
	for _, f := range items {
		if f.AdminReply != nil {
			answered++
		}
	}
	// Marker errors degrade to "nothing unread" rather than failing
	// the whole history.
	seen := answered
	if n, err := h.seen.SeenCount(ctx, uid); err == nil {
		seen = n
	}
	response.OK(c, gin.H{"items": items, "unread": Unread(answered, seen)})
}

// MarkSeen handles POST /feedback/seen: the guest opened the widget,
// so the marker catches up to the current answered count.
func (h *Handler) MarkSeen(c *gin.Context) {
	ctx := c.Request.Context()
	uid := c.GetString(middleware.ContextUID)

	answered, err := h.repo.CountAnswered(ctx, uid)
	if err != nil {
		response.Internal(c, "failed to update marker")
		return
	}
	if err := h.seen.SetSeen(ctx, uid, answered); err != nil {
		h.logger.Warn("set seen marker failed", zap.Error(err), zap.String("uid", uid))
		response.Internal(c, "failed to update marker")
		return
	}
	response.OK(c, gin.H{"unread": 0})
}

// ListAll handles GET /admin/feedback.
func (h *Handler) ListAll(c *gin.Context) {
	items, err := h.repo.ListAll(c.Request.Context())
	if err != nil {
		h.logger.Error("list inbox failed", zap.Error(err))
		response.Internal(c, "failed to load inbox")
		return
	}
	response.OK(c, items)
}

func parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("feedbackID"))
	if err != nil {
		response.BadRequest(c, "invalid feedback id")
		return uuid.Nil, false
	}
	return id, true
}

// Get handles GET /admin/feedback/:feedbackID. Opening an item marks
// it read.
func (h *Handler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	f, err := h.repo.GetAndMarkRead(c.Request.Context(), id)
	if errors.Is(err, ErrNotFound) {
		response.NotFound(c, "feedback item not found")
		return
	}
	if err != nil {
		response.Internal(c, "failed to load item")
		return
	}
	response.OK(c, f)
}

// ReplyRequest is the body for PUT /admin/feedback/:feedbackID/reply.
type ReplyRequest struct {
	Reply string `json:"reply" binding:"required"`
}

// Reply handles the single-reply composition. A second reply replaces
// the first.
func (h *Handler) Reply(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req ReplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "reply required")
		return
	}
	f, err := h.repo.SetReply(c.Request.Context(), id, req.Reply)
	if errors.Is(err, ErrNotFound) {
		response.NotFound(c, "feedback item not found")
		return
	}
	if err != nil {
		h.logger.Error("set reply failed", zap.Error(err), zap.String("feedback_id", id.String()))
		response.Internal(c, "failed to save reply")
		return
	}
	response.OK(c, f)
}

// Delete handles DELETE /admin/feedback/:feedbackID.
func (h *Handler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	err := h.repo.Delete(c.Request.Context(), id)
	if errors.Is(err, ErrNotFound) {
		response.NotFound(c, "feedback item not found")
		return
	}
	if err != nil {
		response.Internal(c, "failed to delete item")
		return
	}
	response.NoContent(c)
}
