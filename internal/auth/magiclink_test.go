package auth

import (
	"context"
	"errors"
	"testing"
	"time"
)

type memoryTokenStore struct {
	issued map[string]bool
}

func newMemoryTokenStore() *memoryTokenStore {
	return &memoryTokenStore{issued: make(map[string]bool)}
}

func (m *memoryTokenStore) Save(_ context.Context, jti string, _ time.Duration) error {
	m.issued[jti] = true
	return nil
}

func (m *memoryTokenStore) Redeem(_ context.Context, jti string) (bool, error) {
	if !m.issued[jti] {
		return false, nil
	}
	delete(m.issued, jti)
	return true, nil
}

func newTestService() *MagicLinkService {
	return NewMagicLinkService("test-secret", "https://example.com/", newMemoryTokenStore())
}

func TestMagicLinkIssueAndComplete(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	token, linkURL, err := svc.Issue(ctx, "guest@example.com", "in-person")
	if err != nil {
		t.Fatal(err)
	}
	if linkURL != "https://example.com/?signin="+token {
		t.Errorf("link URL = %q", linkURL)
	}

	claims, err := svc.Complete(ctx, token, "guest@example.com")
	if err != nil {
		t.Fatal(err)
	}
	if claims.Email != "guest@example.com" {
		t.Errorf("email = %q", claims.Email)
	}
	if claims.Mode != "in-person" {
		t.Errorf("mode = %q", claims.Mode)
	}
}

func TestMagicLinkEmailCheckIsCaseInsensitive(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	token, _, err := svc.Issue(ctx, "Guest@Example.com", "")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Complete(ctx, token, "guest@EXAMPLE.com"); err != nil {
		t.Errorf("case-folded email rejected: %v", err)
	}
}

func TestMagicLinkRejectsWrongEmail(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	token, _, err := svc.Issue(ctx, "guest@example.com", "")
	if err != nil {
		t.Fatal(err)
	}
	_, err = svc.Complete(ctx, token, "other@example.com")
	if !errors.Is(err, ErrEmailMismatch) {
		t.Errorf("err = %v, want ErrEmailMismatch", err)
	}

	// The mismatch must not consume the link; the right email still works.
	if _, err := svc.Complete(ctx, token, "guest@example.com"); err != nil {
		t.Errorf("link consumed by failed attempt: %v", err)
	}
}

func TestMagicLinkIsSingleUse(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	token, _, err := svc.Issue(ctx, "guest@example.com", "")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Complete(ctx, token, "guest@example.com"); err != nil {
		t.Fatal(err)
	}
	_, err = svc.Complete(ctx, token, "guest@example.com")
	if !errors.Is(err, ErrLinkUsed) {
		t.Errorf("err = %v, want ErrLinkUsed", err)
	}
}

func TestMagicLinkRejectsBadAddresses(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	for _, email := range []string{"", "not-an-email", "a@", "Display Name <a@b.com>"} {
		if _, _, err := svc.Issue(ctx, email, ""); !errors.Is(err, ErrBadEmail) {
			t.Errorf("Issue(%q) err = %v, want ErrBadEmail", email, err)
		}
	}
}

func TestMagicLinkRejectsForeignToken(t *testing.T) {
	svc := newTestService()
	other := NewMagicLinkService("other-secret", "https://example.com", newMemoryTokenStore())

	token, _, err := other.Issue(context.Background(), "guest@example.com", "")
	if err != nil {
		t.Fatal(err)
	}
	_, err = svc.Complete(context.Background(), token, "guest@example.com")
	if !errors.Is(err, ErrLinkInvalid) {
		t.Errorf("err = %v, want ErrLinkInvalid", err)
	}
}
