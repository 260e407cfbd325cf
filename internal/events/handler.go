package events

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/momo-deepdive/backend/internal/models"
	"github.com/momo-deepdive/backend/pkg/response"
	"github.com/momo-deepdive/backend/pkg/storage"
)

// HeadcountSource reports how many in-person seats an event's confirmed
// registrations already occupy.
type HeadcountSource interface {
	InPersonHeadcount(ctx context.Context, eventID string) (int, error)
}

// EventView is an event plus its runtime-derived fields.
type EventView struct {
	models.EventConfig
	Status     models.EventStatus `json:"status"`
	SeatsTaken int                `json:"seats_taken"`
	SeatsLeft  int                `json:"seats_left"`
}

// Handler handles event catalog HTTP endpoints.
type Handler struct {
	repo      *Repository
	headcount HeadcountSource
	s3        *storage.S3
	logger    *zap.Logger
}

// NewHandler creates an events handler. s3 may be nil when asset
// uploads are disabled.
func NewHandler(repo *Repository, headcount HeadcountSource, s3 *storage.S3, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{repo: repo, headcount: headcount, s3: s3, logger: logger}
}

func (h *Handler) view(ctx context.Context, e models.EventConfig, now time.Time) EventView {
	if capacity, ok, err := h.repo.CapacityOverride(ctx, e.ID); err == nil && ok {
		e.Capacity = capacity
	}
	taken := 0
	if n, err := h.headcount.InPersonHeadcount(ctx, e.ID); err == nil {
		taken = n
	}
	left := e.Capacity - taken
	if left < 0 {
		left = 0
	}
	return EventView{EventConfig: e, Status: e.Status(now), SeatsTaken: taken, SeatsLeft: left}
}

// List handles GET /events: revealed events only, newest first.
func (h *Handler) List(c *gin.Context) {
	now := time.Now()
	views := make([]EventView, 0)
	for _, e := range Revealed(now) {
		views = append(views, h.view(c.Request.Context(), e, now))
	}
	response.OK(c, views)
}

// GetByID handles GET /events/:id. Unrevealed events stay hidden from
// the public surface.
func (h *Handler) GetByID(c *gin.Context) {
	e := ByID(c.Param("id"))
	now := time.Now()
	if e == nil || !e.Revealed(now) {
		response.NotFound(c, "event not found")
		return
	}
	response.OK(c, h.view(c.Request.Context(), *e, now))
}

// UpdateCapacityRequest is the body for PATCH /admin/events/:id/capacity.
type UpdateCapacityRequest struct {
	Capacity int `json:"capacity" binding:"required,min=1"`
}

// UpdateCapacity handles PATCH /admin/events/:id/capacity.
func (h *Handler) UpdateCapacity(c *gin.Context) {
	e := ByID(c.Param("id"))
	if e == nil {
		response.NotFound(c, "event not found")
		return
	}
	var req UpdateCapacityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	if err := h.repo.SetCapacity(c.Request.Context(), e.ID, req.Capacity); err != nil {
		h.logger.Error("set capacity failed", zap.Error(err), zap.String("event_id", e.ID))
		response.Internal(c, "failed to update capacity")
		return
	}
	response.OK(c, gin.H{"event_id": e.ID, "capacity": req.Capacity})
}

// UploadAsset handles POST /admin/events/:id/assets: a multipart file
// stored public-read on S3 so the landing page can link it. With
// visibility=private the object stays unlisted and the response carries
// a time-limited download URL instead.
func (h *Handler) UploadAsset(c *gin.Context) {
	if h.s3 == nil {
		response.Internal(c, "asset storage not configured")
		return
	}
	e := ByID(c.Param("id"))
	if e == nil {
		response.NotFound(c, "event not found")
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, "file required")
		return
	}
	if fileHeader.Size > storage.MaxAssetFileSize {
		response.BadRequest(c, "file too large")
		return
	}
	if !storage.ValidateAssetFileType(fileHeader.Filename) {
		response.BadRequest(c, "unsupported file type")
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		response.Internal(c, "failed to read upload")
		return
	}
	defer f.Close()

	private := c.PostForm("visibility") == "private"
	key := storage.AssetKey(e.ID, fileHeader.Filename)
	contentType := storage.ContentTypeForFilename(fileHeader.Filename)
	url, err := h.s3.Upload(c.Request.Context(), h.s3.AssetsBucket(), key, contentType, f, fileHeader.Size, !private)
	if err != nil {
		h.logger.Error("asset upload failed", zap.Error(err), zap.String("event_id", e.ID), zap.String("key", key))
		response.Internal(c, "failed to upload asset")
		return
	}
	if private {
		url, err = h.s3.GeneratePresignedDownloadURL(c.Request.Context(), h.s3.AssetsBucket(), key, h.s3.PresignExpire())
		if err != nil {
			h.logger.Error("asset presign failed", zap.Error(err), zap.String("key", key))
			response.Internal(c, "failed to sign download URL")
			return
		}
	}
	response.Created(c, gin.H{"url": url, "key": key, "content_type": contentType, "private": private})
}

// DeleteAsset handles DELETE /admin/events/:id/assets?file=: removes a
// previously uploaded handout from the bucket.
func (h *Handler) DeleteAsset(c *gin.Context) {
	if h.s3 == nil {
		response.Internal(c, "asset storage not configured")
		return
	}
	e := ByID(c.Param("id"))
	if e == nil {
		response.NotFound(c, "event not found")
		return
	}
	filename := c.Query("file")
	if filename == "" {
		response.BadRequest(c, "file required")
		return
	}
	key := storage.AssetKey(e.ID, filename)
	if err := h.s3.DeleteObject(c.Request.Context(), h.s3.AssetsBucket(), key); err != nil {
		h.logger.Error("asset delete failed", zap.Error(err), zap.String("key", key))
		response.Internal(c, "failed to delete asset")
		return
	}
	response.OK(c, gin.H{"deleted": key})
}
