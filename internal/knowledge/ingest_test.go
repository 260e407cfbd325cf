package knowledge

import (
	"testing"

	"github.com/momo-deepdive/backend/internal/models"
)

func TestIngest(t *testing.T) {
	tests := []struct {
		name string
		text string
		want int
	}{
		{"empty", "", 0},
		{"ascii", "hello transcript", 16},
		{"umlauts count as one char", "Schlüsselwörter", 15},
		{"emoji", "done ✅", 6},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Ingest([]byte(tt.text))
			if got.Chars != tt.want {
				t.Errorf("chars = %d, want %d", got.Chars, tt.want)
			}
			if got.Model != IngestModel {
				t.Errorf("model = %q", got.Model)
			}
		})
	}
}

func TestShelfCounts(t *testing.T) {
	files := []models.KnowledgeFile{
		{Name: "files/a", State: models.FileActive},
		{Name: "files/b", State: models.FileActive},
		{Name: "files/c", State: models.FileProcessing},
		{Name: "files/d", State: models.FileFailed},
		{Name: "files/e", State: "STATE_UNSPECIFIED"},
	}
	active, processing, failed := shelfCounts(files)
	if active != 2 || processing != 1 || failed != 1 {
		t.Errorf("counts = %d/%d/%d, want 2/1/1", active, processing, failed)
	}
}
