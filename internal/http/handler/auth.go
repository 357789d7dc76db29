package handler

import (
	"crypto/rand"
	"encoding/base64"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"basegraph.app/backoffice/internal/apperr"
	"basegraph.app/backoffice/internal/http/dto"
	"basegraph.app/backoffice/internal/http/middleware"
	"basegraph.app/backoffice/internal/service"
)

const (
	sessionMaxAge      = 7 * 24 * 60 * 60
	sessionMaxAgeHours = 7 * 24
)

type AuthHandler struct {
	auth         service.AuthService
	isProduction bool
}

func NewAuthHandler(auth service.AuthService, isProduction bool) *AuthHandler {
	return &AuthHandler{auth: auth, isProduction: isProduction}
}

func (h *AuthHandler) GetAuthURL(c *gin.Context) {
	state, err := generateState()
	if err != nil {
		respondError(c, apperr.Repository("Failed to generate state", err))
		return
	}

	authURL, err := h.auth.GetAuthorizationURL(state)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.AuthURLResponse{
		AuthorizationURL: authURL,
		State:            state,
	})
}

func (h *AuthHandler) Exchange(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.ExchangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperr.Validation(apperr.FieldErrors{"code": {"Authorization code is required"}}))
		return
	}

	account, session, err := h.auth.HandleCallback(ctx, req.Code)
	if err != nil {
		respondError(c, err)
		return
	}

	h.setSessionCookie(c, session.ID)
	slog.InfoContext(ctx, "staff signed in", "account_id", account.ID)

	c.JSON(http.StatusOK, dto.ToExchangeResponse(account, session, sessionMaxAgeHours))
}

func (h *AuthHandler) Me(c *gin.Context) {
	sessionID, ok := middleware.SessionIDFrom(c)
	if !ok {
		respondError(c, apperr.Unauthorized("Unauthorized"))
		return
	}

	account, err := h.auth.ValidateSession(c.Request.Context(), sessionID)
	if err != nil {
		if apperr.Is(err, apperr.KindUnauthorized) {
			h.clearSessionCookie(c)
		}
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToAccountSummary(account))
}

func (h *AuthHandler) Logout(c *gin.Context) {
	ctx := c.Request.Context()

	if sessionID, ok := middleware.SessionIDFrom(c); ok {
		if err := h.auth.Logout(ctx, sessionID); err != nil {
			slog.WarnContext(ctx, "failed to delete session", "error", err, "session_id", sessionID)
		}
	}

	h.clearSessionCookie(c)
	c.JSON(http.StatusOK, dto.LogoutResponse{Message: "logged out"})
}

func (h *AuthHandler) setSessionCookie(c *gin.Context, sessionID int64) {
	c.SetCookie(
		middleware.SessionCookieName,
		strconv.FormatInt(sessionID, 10),
		sessionMaxAge,
		"/",
		"",
		h.isProduction,
		true,
	)
}

func (h *AuthHandler) clearSessionCookie(c *gin.Context) {
	c.SetCookie(
		middleware.SessionCookieName,
		"",
		-1,
		"/",
		"",
		h.isProduction,
		true,
	)
}

func generateState() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(b), nil
}
