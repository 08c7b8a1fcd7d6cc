package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/movify/movify-server/internal/config"
	"github.com/movify/movify-server/internal/repository"
	"github.com/movify/movify-server/internal/utils"
)

// AuthHandler serves login, refresh and logout for the single owner
// account. Credentials come from the environment, only refresh token
// hashes touch the database.
type AuthHandler struct {
	Cfg    config.Config
	Tokens *repository.TokenRepo
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// Login verifies the owner credentials and issues a fresh token pair.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	email := strings.TrimSpace(strings.ToLower(req.Email))
	if email == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "email and password are required"})
	}
	if email != strings.ToLower(h.Cfg.OwnerEmail) || !utils.VerifyPassword(h.Cfg.OwnerPassHash, req.Password) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}
	return h.issuePair(c)
}

// Refresh validates a refresh token and rotates it, revoking the presented
// token and returning a new pair.
func (h *AuthHandler) Refresh(c echo.Context) error {
	var req refreshRequest
	if err := c.Bind(&req); err != nil || req.RefreshToken == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "refresh_token is required"})
	}
	hash := utils.HashRefreshRaw(req.RefreshToken)
	if err := h.Tokens.ValidateRefresh(c.Request().Context(), hash); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid refresh token"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not validate token"})
	}
	if err := h.Tokens.RevokeByHash(c.Request().Context(), hash); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not rotate token"})
	}
	return h.issuePair(c)
}

// Logout revokes the presented refresh token. Revoking an unknown token
// still returns 200 so logout is idempotent.
func (h *AuthHandler) Logout(c echo.Context) error {
	var req refreshRequest
	if err := c.Bind(&req); err != nil || req.RefreshToken == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "refresh_token is required"})
	}
	if err := h.Tokens.RevokeByHash(c.Request().Context(), utils.HashRefreshRaw(req.RefreshToken)); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not revoke token"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "logged out"})
}

// LogoutAll revokes every active refresh token, ending all owner sessions
// at once. Used after a credential change or when a device is lost; the
// route requires a valid access token.
func (h *AuthHandler) LogoutAll(c echo.Context) error {
	if err := h.Tokens.RevokeAll(c.Request().Context()); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not revoke tokens"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "all sessions ended"})
}

// issuePair mints an access token and a stored refresh token for the owner.
func (h *AuthHandler) issuePair(c echo.Context) error {
	access, err := utils.NewAccessToken(h.Cfg.JWTSecret, h.Cfg.OwnerEmail, h.Cfg.AccessTTLMin)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not sign token"})
	}
	refresh, err := utils.NewRefreshToken(h.Cfg.RefreshTTLDays)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create refresh token"})
	}
	if err := h.Tokens.StoreRefresh(c.Request().Context(), utils.HashRefreshRaw(refresh.Raw), refresh.Exp); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not persist refresh token"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"access_token":       access.Token,
		"access_expires_at":  access.Exp,
		"refresh_token":      refresh.Raw,
		"refresh_expires_at": refresh.Exp,
	})
}
