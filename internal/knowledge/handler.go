package knowledge

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/momo-deepdive/backend/internal/events"
	"github.com/momo-deepdive/backend/internal/models"
	"github.com/momo-deepdive/backend/pkg/response"
)

// MaxUploadSize caps knowledge file uploads at 100MB, the staging
// limit for a single request.
const MaxUploadSize = 100 * 1024 * 1024

// Handler exposes the admin file shelf.
type Handler struct {
	client *Client
	logger *zap.Logger
}

// NewHandler creates a knowledge handler.
func NewHandler(client *Client, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{client: client, logger: logger}
}

// shelfCounts tallies files per processing state so the shelf can show
// which uploads are still cooking or got rejected.
func shelfCounts(files []models.KnowledgeFile) (active, processing, failed int) {
	for _, f := range files {
		switch f.State {
		case models.FileActive:
			active++
		case models.FileProcessing:
			processing++
		case models.FileFailed:
			failed++
		}
	}
	return
}

// List handles GET /admin/knowledge/files.
func (h *Handler) List(c *gin.Context) {
	files, err := h.client.ListFiles(c.Request.Context())
	if err != nil {
		h.logger.Error("list knowledge files failed", zap.Error(err))
		response.Internal(c, "failed to list files")
		return
	}
	active, processing, failed := shelfCounts(files)
	response.OK(c, gin.H{"files": files, "active": active, "processing": processing, "failed": failed})
}

// Upload handles POST /admin/knowledge/files: the multipart file is
// staged to a temp file, forwarded to the file service, and the
// service's record is returned as-is.
func (h *Handler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, "file required")
		return
	}
	if fileHeader.Size > MaxUploadSize {
		response.BadRequest(c, "file too large")
		return
	}
	mimeType := fileHeader.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}

	src, err := fileHeader.Open()
	if err != nil {
		response.Internal(c, "failed to read upload")
		return
	}
	defer src.Close()

	tempPath := filepath.Join(os.TempDir(), fmt.Sprintf("upload-%d-%s", time.Now().UnixMilli(), filepath.Base(fileHeader.Filename)))
	dst, err := os.Create(tempPath)
	if err != nil {
		response.Internal(c, "failed to stage upload")
		return
	}
	defer os.Remove(tempPath)
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		response.Internal(c, "failed to stage upload")
		return
	}
	dst.Close()

	record, err := h.client.UploadFile(c.Request.Context(), tempPath, fileHeader.Filename, mimeType)
	if err != nil {
		h.logger.Error("knowledge upload failed", zap.Error(err), zap.String("file", fileHeader.Filename))
		response.Internal(c, "upload failed")
		return
	}
	response.Created(c, gin.H{"file": record})
}

// Ingest handles POST /admin/knowledge/ingest: accepts a text-like
// file plus an event id and returns a character-count stat.
func (h *Handler) Ingest(c *gin.Context) {
	eventID := c.PostForm("event_id")
	if eventID == "" || events.ByID(eventID) == nil {
		response.BadRequest(c, "valid event_id required")
		return
	}
	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, "file required")
		return
	}
	if fileHeader.Size > MaxUploadSize {
		response.BadRequest(c, "file too large")
		return
	}

	src, err := fileHeader.Open()
	if err != nil {
		response.Internal(c, "failed to read upload")
		return
	}
	defer src.Close()
	text, err := io.ReadAll(src)
	if err != nil {
		response.Internal(c, "failed to read upload")
		return
	}

	stats := Ingest(text)
	h.logger.Info("transcript ingested",
		zap.String("file", fileHeader.Filename), zap.String("event_id", eventID), zap.Int("chars", stats.Chars))
	response.OK(c, gin.H{"message": "transcript ingested to knowledge base", "stats": stats})
}
