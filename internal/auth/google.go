package auth

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/api/idtoken"
)

// Identity is the signed-in identity attested by the identity provider.
type Identity struct {
	UID     string
	Email   string
	Name    string
	Picture string
}

// IdentityVerifier validates a provider-issued credential and returns
// the identity it attests.
type IdentityVerifier interface {
	Verify(ctx context.Context, credential string) (*Identity, error)
}

// GoogleVerifier validates Google ID tokens (the popup sign-in flow
// happens client-side; the backend only ever sees the resulting token).
type GoogleVerifier struct {
	clientID string
	timeout  time.Duration
}

// NewGoogleVerifier creates a verifier for the given OAuth client ID.
// timeout bounds each verification so the sign-in flow cannot hang on
// the provider.
func NewGoogleVerifier(clientID string, timeout time.Duration) *GoogleVerifier {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &GoogleVerifier{clientID: clientID, timeout: timeout}
}

// Verify validates the ID token signature and audience and extracts the
// profile claims.
func (v *GoogleVerifier) Verify(ctx context.Context, credential string) (*Identity, error) {
	ctx, cancel := context.WithTimeout(ctx, v.timeout)
	defer cancel()

	payload, err := idtoken.Validate(ctx, credential, v.clientID)
	if err != nil {
		return nil, fmt.Errorf("validate id token: %w", err)
	}

	id := &Identity{UID: payload.Subject}
	if email, ok := payload.Claims["email"].(string); ok {
		id.Email = email
	}
	if name, ok := payload.Claims["name"].(string); ok {
		id.Name = name
	}
	if picture, ok := payload.Claims["picture"].(string); ok {
		id.Picture = picture
	}
	if id.Email == "" {
		return nil, fmt.Errorf("id token missing email claim")
	}
	return id, nil
}
