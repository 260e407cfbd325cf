package knowledge

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// The file service speaks proto JSON: camelCase keys, sizeBytes as a
// decimal string. These bodies are shaped after real files.list and
// upload responses.
const listPageOne = `{
  "files": [
    {
      "name": "files/abc-123",
      "displayName": "transcript.txt",
      "mimeType": "text/plain",
      "sizeBytes": "2048",
      "createTime": "2026-02-12T19:05:00Z",
      "updateTime": "2026-02-12T19:05:02Z",
      "expirationTime": "2026-02-14T19:05:00Z",
      "sha256Hash": "ZmFrZWhhc2g=",
      "uri": "https://generativelanguage.googleapis.com/v1beta/files/abc-123",
      "state": "ACTIVE"
    }
  ],
  "nextPageToken": "page-2"
}`

const listPageTwo = `{
  "files": [
    {
      "name": "files/def-456",
      "displayName": "handout.pdf",
      "mimeType": "application/pdf",
      "sizeBytes": "10240",
      "state": "PROCESSING"
    }
  ]
}`

func TestListFilesDecodesServiceRecords(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1beta/files" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Query().Get("pageToken") == "page-2" {
			w.Write([]byte(listPageTwo))
			return
		}
		w.Write([]byte(listPageOne))
	}))
	defer srv.Close()

	client := NewClient("test-key", srv.URL, nil)
	files, err := client.ListFiles(context.Background())
	if err != nil {
		t.Fatalf("ListFiles: %v", err)
	}
	if len(files) != 2 {
		t.Fatalf("got %d files, want 2 across pages", len(files))
	}

	f := files[0]
	if f.Name != "files/abc-123" {
		t.Errorf("Name = %q", f.Name)
	}
	if f.DisplayName != "transcript.txt" {
		t.Errorf("DisplayName = %q, want transcript.txt", f.DisplayName)
	}
	if f.MimeType != "text/plain" {
		t.Errorf("MimeType = %q, want text/plain", f.MimeType)
	}
	if f.SizeBytes != 2048 {
		t.Errorf("SizeBytes = %d, want 2048", f.SizeBytes)
	}
	if f.SHA256Hash != "ZmFrZWhhc2g=" {
		t.Errorf("SHA256Hash = %q", f.SHA256Hash)
	}
	wantCreate := time.Date(2026, 2, 12, 19, 5, 0, 0, time.UTC)
	if !f.CreateTime.Equal(wantCreate) {
		t.Errorf("CreateTime = %v, want %v", f.CreateTime, wantCreate)
	}
	if f.State != "ACTIVE" {
		t.Errorf("State = %q, want ACTIVE", f.State)
	}

	if files[1].SizeBytes != 10240 {
		t.Errorf("page two SizeBytes = %d, want 10240", files[1].SizeBytes)
	}
	if files[1].State != "PROCESSING" {
		t.Errorf("page two State = %q, want PROCESSING", files[1].State)
	}
}

func TestUploadFileDecodesServiceRecord(t *testing.T) {
	var uploadURL string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/upload/v1beta/files":
			if r.Header.Get("X-Goog-Upload-Protocol") != "resumable" {
				t.Errorf("upload protocol header = %q", r.Header.Get("X-Goog-Upload-Protocol"))
			}
			w.Header().Set("X-Goog-Upload-URL", uploadURL)
			w.WriteHeader(http.StatusOK)
		case "/upload-session":
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"file":{"name":"files/ghi-789","displayName":"notes.md","mimeType":"text/markdown","sizeBytes":"11","state":"PROCESSING"}}`))
		default:
			t.Errorf("unexpected path %q", r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()
	uploadURL = srv.URL + "/upload-session"

	staged := filepath.Join(t.TempDir(), "notes.md")
	if err := os.WriteFile(staged, []byte("hello there"), 0o600); err != nil {
		t.Fatal(err)
	}

	client := NewClient("test-key", srv.URL, nil)
	file, err := client.UploadFile(context.Background(), staged, "notes.md", "text/markdown")
	if err != nil {
		t.Fatalf("UploadFile: %v", err)
	}
	if file.Name != "files/ghi-789" {
		t.Errorf("Name = %q", file.Name)
	}
	if file.DisplayName != "notes.md" {
		t.Errorf("DisplayName = %q, want notes.md", file.DisplayName)
	}
	if file.SizeBytes != 11 {
		t.Errorf("SizeBytes = %d, want 11", file.SizeBytes)
	}
	if file.MimeType != "text/markdown" {
		t.Errorf("MimeType = %q, want text/markdown", file.MimeType)
	}
}
