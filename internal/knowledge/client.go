package knowledge

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/momo-deepdive/backend/internal/models"
)

// DefaultBaseURL is the generative-AI file service endpoint.
const DefaultBaseURL = "https://generativelanguage.googleapis.com"

// Client talks to the file service's REST API. The service owns the
// files entirely; we only list and upload.
type Client struct {
	apiKey  string
	baseURL string
	http    *http.Client
	logger  *zap.Logger
}

// NewClient creates a file service client. baseURL may be empty.
func NewClient(apiKey, baseURL string, logger *zap.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		apiKey:  apiKey,
		baseURL: baseURL,
		http:    &http.Client{Timeout: 2 * time.Minute},
		logger:  logger,
	}
}

type listResponse struct {
	Files         []models.KnowledgeFile `json:"files"`
	NextPageToken string                 `json:"nextPageToken"`
}

// ListFiles returns every file the service currently holds, following
// pagination.
func (c *Client) ListFiles(ctx context.Context) ([]models.KnowledgeFile, error) {
	files := make([]models.KnowledgeFile, 0)
	pageToken := ""
	for {
		url := fmt.Sprintf("%s/v1beta/files?key=%s&pageSize=100", c.baseURL, c.apiKey)
		if pageToken != "" {
			url += "&pageToken=" + pageToken
		}
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, err
		}
		resp, err := c.http.Do(req)
		if err != nil {
			return nil, fmt.Errorf("list files: %w", err)
		}
		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			return nil, err
		}
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("list files: status %d: %s", resp.StatusCode, body)
		}
		var page listResponse
		if err := json.Unmarshal(body, &page); err != nil {
			return nil, fmt.Errorf("decode file list: %w", err)
		}
		files = append(files, page.Files...)
		if page.NextPageToken == "" {
			return files, nil
		}
		pageToken = page.NextPageToken
	}
}

// UploadFile sends a staged file through the service's resumable
// upload protocol and returns the service's file record.
func (c *Client) UploadFile(ctx context.Context, path, displayName, mimeType string) (*models.KnowledgeFile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	info, err := f.Stat()
	if err != nil {
		return nil, err
	}

	// Phase 1: start the session; the service answers with the upload URL.
	meta, err := json.Marshal(map[string]interface{}{
		"file": map[string]string{"displayName": displayName},
	})
	if err != nil {
		return nil, err
	}
	startURL := fmt.Sprintf("%s/upload/v1beta/files?key=%s", c.baseURL, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, startURL, bytes.NewReader(meta))
	if err != nil {
		return nil, err
	}
	req.Header.Set("X-Goog-Upload-Protocol", "resumable")
	req.Header.Set("X-Goog-Upload-Command", "start")
	req.Header.Set("X-Goog-Upload-Header-Content-Length", strconv.FormatInt(info.Size(), 10))
	req.Header.Set("X-Goog-Upload-Header-Content-Type", mimeType)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("start upload: %w", err)
	}
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("start upload: status %d", resp.StatusCode)
	}
	uploadURL := resp.Header.Get("X-Goog-Upload-URL")
	if uploadURL == "" {
		return nil, fmt.Errorf("start upload: no upload URL in response")
	}

	// Phase 2: send the bytes and finalize in one shot.
	req, err = http.NewRequestWithContext(ctx, http.MethodPost, uploadURL, f)
	if err != nil {
		return nil, err
	}
	req.ContentLength = info.Size()
	req.Header.Set("X-Goog-Upload-Command", "upload, finalize")
	req.Header.Set("X-Goog-Upload-Offset", "0")

	resp, err = c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("upload bytes: %w", err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("upload bytes: status %d: %s", resp.StatusCode, body)
	}

	var out struct {
		File models.KnowledgeFile `json:"file"`
	}
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("decode upload response: %w", err)
	}
	c.logger.Info("knowledge file uploaded",
		zap.String("name", out.File.Name), zap.String("display_name", displayName), zap.String("state", out.File.State))
	return &out.File, nil
}
