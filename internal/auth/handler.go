package auth

import (
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/momo-deepdive/backend/config"
	"github.com/momo-deepdive/backend/internal/models"
	"github.com/momo-deepdive/backend/pkg/queue"
	"github.com/momo-deepdive/backend/pkg/response"
	"github.com/momo-deepdive/backend/pkg/utils"
)

// GoogleRequest is the body for POST /auth/google.
type GoogleRequest struct {
	IDToken string `json:"id_token" binding:"required"`
	Type    string `json:"type,omitempty"` // attendance type chosen before sign-in
}

// MagicLinkRequest is the body for POST /auth/magiclink.
type MagicLinkRequest struct {
	Email string `json:"email" binding:"required"`
	Type  string `json:"type,omitempty"`
}

// MagicLinkCompleteRequest is the body for POST /auth/magiclink/complete.
// Email must be re-supplied; on a foreign device the caller has no local
// marker and is prompted to retype it.
type MagicLinkCompleteRequest struct {
	Token string `json:"token" binding:"required"`
	Email string `json:"email" binding:"required"`
}

// LoginRequest is the body for POST /auth/login (admin password login).
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// TokenResponse is the auth response with session JWT.
type TokenResponse struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
	Type  string      `json:"type,omitempty"` // echoed attendance choice
}

// Handler handles auth HTTP endpoints.
type Handler struct {
	repo     *Repository
	jwt      *JWTService
	verifier IdentityVerifier
	links    *MagicLinkService
	queue    *queue.Queue
	admin    config.AdminConfig
	logger   *zap.Logger
}

// NewHandler creates an auth handler.
func NewHandler(repo *Repository, jwt *JWTService, verifier IdentityVerifier, links *MagicLinkService, q *queue.Queue, admin config.AdminConfig, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{repo: repo, jwt: jwt, verifier: verifier, links: links, queue: q, admin: admin, logger: logger}
}

func (h *Handler) roleFor(email string) models.Role {
	if h.admin.IsAdminEmail(email) {
		return models.RoleAdmin
	}
	return models.RoleGuest
}

// Google handles POST /auth/google: verifies the popup sign-in's ID
// token and issues a session.
func (h *Handler) Google(c *gin.Context) {
	var req GoogleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}

	id, err := h.verifier.Verify(c.Request.Context(), req.IDToken)
	if err != nil {
		h.logger.Warn("google sign-in rejected", zap.Error(err))
		response.Unauthorized(c, "sign-in failed, please try again")
		return
	}

	user := &models.User{
		UID:         id.UID,
		Email:       id.Email,
		DisplayName: id.Name,
		PhotoURL:    id.Picture,
		Role:        h.roleFor(id.Email),
	}
	if err := h.repo.Upsert(c.Request.Context(), user); err != nil {
		h.logger.Error("upsert user failed", zap.Error(err), zap.String("uid", id.UID))
		response.Internal(c, "failed to sign in")
		return
	}

	token, err := h.jwt.Generate(user.UID, user.Email, string(user.Role))
	if err != nil {
		response.Internal(c, "failed to generate token")
		return
	}
	response.OK(c, TokenResponse{Token: token, User: *user, Type: req.Type})
}

// MagicLink handles POST /auth/magiclink: issues a one-time sign-in
// link and queues the email.
func (h *Handler) MagicLink(c *gin.Context) {
	var req MagicLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}

	_, linkURL, err := h.links.Issue(c.Request.Context(), req.Email, req.Type)
	if err != nil {
		if errors.Is(err, ErrBadEmail) {
			response.BadRequest(c, "invalid email address")
			return
		}
		h.logger.Error("issue magic link failed", zap.Error(err))
		response.Internal(c, "failed to send sign-in link")
		return
	}

	payload := queue.EmailPayload{
		EmailType:      queue.EmailMagicLink,
		RecipientEmail: req.Email,
		Subject:        "Dein Login-Link",
		BodyText:       fmt.Sprintf("Hier ist dein Login-Link (15 Minuten gültig):\n\n%s\n\nFalls du das nicht warst, ignoriere diese Email.", linkURL),
	}
	if err := h.queue.EnqueueEmail(c.Request.Context(), payload); err != nil {
		h.logger.Error("enqueue magic link email failed", zap.Error(err))
		response.Internal(c, "failed to send sign-in link")
		return
	}
	response.OK(c, gin.H{"sent": true})
}

// MagicLinkComplete handles POST /auth/magiclink/complete: redeems the
// link and issues a session.
func (h *Handler) MagicLinkComplete(c *gin.Context) {
	var req MagicLinkCompleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}

	claims, err := h.links.Complete(c.Request.Context(), req.Token, req.Email)
	if err != nil {
		switch {
		case errors.Is(err, ErrEmailMismatch):
			response.Unauthorized(c, "email does not match the sign-in link")
		case errors.Is(err, ErrLinkUsed):
			response.Unauthorized(c, "this sign-in link was already used, request a new one")
		case errors.Is(err, ErrLinkInvalid):
			response.Unauthorized(c, "sign-in link invalid or expired, request a new one")
		default:
			h.logger.Error("magic link completion failed", zap.Error(err))
			response.Internal(c, "failed to complete sign-in")
		}
		return
	}

	user, err := h.repo.GetByEmail(c.Request.Context(), claims.Email)
	if err != nil {
		h.logger.Error("lookup user failed", zap.Error(err))
		response.Internal(c, "failed to complete sign-in")
		return
	}
	if user == nil {
		user = &models.User{
			UID:   uuid.New().String(),
			Email: claims.Email,
			Role:  h.roleFor(claims.Email),
		}
	} else {
		user.Role = h.roleFor(claims.Email)
	}
	if err := h.repo.Upsert(c.Request.Context(), user); err != nil {
		h.logger.Error("upsert user failed", zap.Error(err))
		response.Internal(c, "failed to complete sign-in")
		return
	}

	token, err := h.jwt.Generate(user.UID, user.Email, string(user.Role))
	if err != nil {
		response.Internal(c, "failed to generate token")
		return
	}
	response.OK(c, TokenResponse{Token: token, User: *user, Type: claims.Mode})
}

// Login handles POST /auth/login: password login for seeded admin
// accounts.
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}

	user, err := h.repo.GetByEmail(c.Request.Context(), req.Email)
	if err != nil || user == nil || user.Password == "" {
		response.Unauthorized(c, "invalid email or password")
		return
	}
	if !utils.CheckPassword(req.Password, user.Password) {
		response.Unauthorized(c, "invalid email or password")
		return
	}

	token, err := h.jwt.Generate(user.UID, user.Email, string(user.Role))
	if err != nil {
		response.Internal(c, "failed to generate token")
		return
	}
	response.OK(c, TokenResponse{Token: token, User: *user})
}

// Me handles GET /auth/me.
func (h *Handler) Me(c *gin.Context) {
	uid := c.GetString("uid")
	user, err := h.repo.GetByUID(c.Request.Context(), uid)
	if err != nil || user == nil {
		response.NotFound(c, "user not found")
		return
	}
	response.OK(c, user)
}
