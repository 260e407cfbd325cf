package models

import "time"

// Knowledge file processing states, owned by the external file service
// and merely displayed here.
const (
	FileProcessing = "PROCESSING"
	FileActive     = "ACTIVE"
	FileFailed     = "FAILED"
)

// KnowledgeFile mirrors the external generative-AI file service record
// and keeps its proto-JSON wire names, sizeBytes included, which the
// service serializes as a decimal string. The application holds no
// local copy of the bytes.
type KnowledgeFile struct {
	Name           string    `json:"name"` // resource name, e.g. files/abc-123
	DisplayName    string    `json:"displayName,omitempty"`
	MimeType       string    `json:"mimeType,omitempty"`
	SizeBytes      int64     `json:"sizeBytes,string,omitempty"`
	CreateTime     time.Time `json:"createTime,omitempty"`
	UpdateTime     time.Time `json:"updateTime,omitempty"`
	ExpirationTime time.Time `json:"expirationTime,omitempty"`
	State          string    `json:"state,omitempty"`
	SHA256Hash     string    `json:"sha256Hash,omitempty"`
	URI            string    `json:"uri,omitempty"`
}
