package auth

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// LinkTTL is how long a magic link stays valid.
const LinkTTL = 15 * time.Minute

var (
	// ErrLinkInvalid covers malformed, expired and wrongly signed links.
	ErrLinkInvalid = errors.New("magic link invalid or expired")
	// ErrLinkUsed means the one-time link was already redeemed.
	ErrLinkUsed = errors.New("magic link already used")
	// ErrEmailMismatch means the confirmation email does not match the
	// address the link was sent to (cross-device completion).
	ErrEmailMismatch = errors.New("email does not match the sign-in link")
	// ErrBadEmail means the supplied address is not a deliverable address.
	ErrBadEmail = errors.New("invalid email address")
)

// LinkClaims are the claims carried by a magic-link token. Mode is the
// attendance type the guest picked before authenticating, so the flow
// can resume at the details step after the redirect.
type LinkClaims struct {
	Email string `json:"email"`
	Mode  string `json:"mode,omitempty"`
	jwt.RegisteredClaims
}

// TokenStore records issued link ids and redeems each at most once.
type TokenStore interface {
	Save(ctx context.Context, jti string, ttl time.Duration) error
	Redeem(ctx context.Context, jti string) (bool, error)
}

// RedisTokenStore keeps link ids in Redis with the link TTL; redemption
// is a GETDEL so concurrent completions cannot both succeed.
type RedisTokenStore struct {
	client *redis.Client
}

// NewRedisTokenStore creates a token store backed by the given client.
func NewRedisTokenStore(client *redis.Client) *RedisTokenStore {
	return &RedisTokenStore{client: client}
}

func linkKey(jti string) string { return "magiclink:" + jti }

// Save records an issued link id.
func (s *RedisTokenStore) Save(ctx context.Context, jti string, ttl time.Duration) error {
	return s.client.Set(ctx, linkKey(jti), "1", ttl).Err()
}

// Redeem consumes a link id, returning false when it was never issued
// or already redeemed.
func (s *RedisTokenStore) Redeem(ctx context.Context, jti string) (bool, error) {
	res, err := s.client.GetDel(ctx, linkKey(jti)).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return res != "", nil
}

// MagicLinkService issues and completes passwordless email-link sign-in.
type MagicLinkService struct {
	secret  []byte
	baseURL string
	store   TokenStore
}

// NewMagicLinkService creates a magic link service. baseURL is the
// public site URL the link points back to.
func NewMagicLinkService(secret, baseURL string, store TokenStore) *MagicLinkService {
	return &MagicLinkService{secret: []byte(secret), baseURL: strings.TrimRight(baseURL, "/"), store: store}
}

// Issue creates a one-time link token for email, remembering the chosen
// attendance mode across the redirect. Rejects undeliverable addresses.
func (s *MagicLinkService) Issue(ctx context.Context, email, mode string) (token, linkURL string, err error) {
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return "", "", ErrBadEmail
	}

	jti := uuid.New().String()
	claims := LinkClaims{
		Email: strings.ToLower(email),
		Mode:  mode,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(LinkTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ID:        jti,
		},
	}
	token, err = jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", "", fmt.Errorf("sign link token: %w", err)
	}
	if err := s.store.Save(ctx, jti, LinkTTL); err != nil {
		return "", "", fmt.Errorf("save link token: %w", err)
	}
	return token, s.baseURL + "/?signin=" + token, nil
}

// Complete validates a link token against the re-supplied email and
// redeems it. The email check is what preserves the cross-device
// fallback: a link opened on another browser has no local marker, so
// the holder must retype the address it was sent to.
func (s *MagicLinkService) Complete(ctx context.Context, token, email string) (*LinkClaims, error) {
	parsed, err := jwt.ParseWithClaims(token, &LinkClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrLinkInvalid
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, ErrLinkInvalid
	}
	claims, ok := parsed.Claims.(*LinkClaims)
	if !ok || !parsed.Valid {
		return nil, ErrLinkInvalid
	}
	if !strings.EqualFold(claims.Email, strings.TrimSpace(email)) {
		return nil, ErrEmailMismatch
	}
	redeemed, err := s.store.Redeem(ctx, claims.ID)
	if err != nil {
		return nil, fmt.Errorf("redeem link token: %w", err)
	}
	if !redeemed {
		return nil, ErrLinkUsed
	}
	return claims, nil
}
