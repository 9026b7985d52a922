package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gestionrodar/filmoteca/internal/apperr"
	"github.com/gestionrodar/filmoteca/internal/auth"
	"github.com/gestionrodar/filmoteca/internal/config"
	"github.com/gestionrodar/filmoteca/internal/domain/user"
	"github.com/gestionrodar/filmoteca/internal/http/middlewares"
	"github.com/gestionrodar/filmoteca/internal/security"
	"github.com/gin-gonic/gin"
)

// UserStore is the credential store surface the session endpoints need.
type UserStore interface {
	Create(ctx context.Context, u user.User) (user.User, error)
	GetByUsernameOrEmail(ctx context.Context, identifier string) (user.User, error)
	TouchLastLogin(ctx context.Context, id string) error
	List(ctx context.Context) ([]user.User, error)
}

type AuthHandler struct {
	users UserStore
	jwt   *auth.Manager
	cfg   config.Config
}

func NewAuthHandler(users UserStore, jwtManager *auth.Manager, cfg config.Config) *AuthHandler {
	return &AuthHandler{
		users: users,
		jwt:   jwtManager,
		cfg:   cfg,
	}
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) Login(ctx *gin.Context) {
	var req LoginRequest

	if !BindJSON(ctx, &req) {
		return
	}

	// short timeout for DB lookup
	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	// username and email resolve through the same lookup; inactive accounts
	// and unknown identifiers share one answer so usernames can't be probed
	foundUser, err := h.users.GetByUsernameOrEmail(cctx, req.Username)

	if err != nil || !foundUser.IsActive {
		RespondMessage(ctx, http.StatusUnauthorized, "invalid credentials")
		return
	}

	if !foundUser.VerifyPassword(req.Password) {
		RespondMessage(ctx, http.StatusUnauthorized, "invalid credentials")
		return
	}

	err = h.users.TouchLastLogin(cctx, foundUser.ID)

	if err != nil {
		RespondAppError(ctx, err, !h.cfg.IsProd())
		return
	}

	now := time.Now().UTC()
	foundUser.LastLoginAt = &now

	token, err := h.jwt.Issue(foundUser.ID)

	if err != nil {
		RespondInternal(ctx, "could not generate access token")
		return
	}

	h.setTokenCookie(ctx, token)

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "login successful",
		"user":    foundUser.Profile(),
		"token":   token,
	})
}

// Logout is stateless: the server keeps no session table, so clearing the
// cookie is the entire operation and it always succeeds.
func (h *AuthHandler) Logout(ctx *gin.Context) {
	h.clearTokenCookie(ctx)

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "logout successful",
	})
}

// Verify echoes the identity the auth middleware resolved; clients call it on
// load to restore session state.
func (h *AuthHandler) Verify(ctx *gin.Context) {
	u, ok := middlewares.CurrentUser(ctx)

	if !ok {
		RespondMessage(ctx, http.StatusUnauthorized, "user not authenticated")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"user":    u.Profile(),
	})
}

// Register creates a new user. The admin gate runs in the router; conflicts
// come back from the store's unique indexes, never from a pre-check.
func (h *AuthHandler) Register(ctx *gin.Context) {
	var req user.CreateUserRequest

	if !BindJSON(ctx, &req) {
		return
	}

	newUser, err := user.NewFromCreateRequest(req)

	if err != nil {
		// the binding tag counts runes; multibyte passwords can still
		// exceed bcrypt's byte limit
		if errors.Is(err, security.ErrPasswordTooLong) {
			RespondValidation(ctx, "invalid request body", []apperr.FieldViolation{
				{Field: "password", Message: "must be at most 72 bytes"},
			})
			return
		}

		RespondInternal(ctx, "could not create user")
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)

	defer cancel()

	created, err := h.users.Create(cctx, newUser)

	if err != nil {
		if apperr.IsKind(err, apperr.Conflict) {
			RespondAppError(ctx, err, false)
			return
		}

		RespondAppError(ctx, err, !h.cfg.IsProd())
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "user created successfully",
		"user":    created.Profile(),
	})
}

// ListUsers returns every account, newest first. Password hashes never leave
// the store projection.
func (h *AuthHandler) ListUsers(ctx *gin.Context) {
	cctx, cancel := config.WithTimeout(3 * time.Second)

	defer cancel()

	users, err := h.users.List(cctx)

	if err != nil {
		RespondAppError(ctx, err, !h.cfg.IsProd())
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"users":   users,
	})
}

// cookie helpers

func (h *AuthHandler) setTokenCookie(ctx *gin.Context, token string) {
	ctx.SetSameSite(http.SameSiteStrictMode)

	ctx.SetCookie(
		"token",
		token,
		int(h.cfg.TokenTTL.Seconds()),
		"/",
		"",
		h.cfg.IsProd(),
		true, // HttpOnly.
	)
}

func (h *AuthHandler) clearTokenCookie(ctx *gin.Context) {
	ctx.SetSameSite(http.SameSiteStrictMode)
	ctx.SetCookie(
		"token",
		"",
		-1,
		"/",
		"",
		h.cfg.IsProd(),
		true,
	)
}
