package middleware

import (
	"context"
	"log/slog"

	"github.com/gin-gonic/gin"

	"basegraph.app/backoffice/common/id"
	"basegraph.app/backoffice/common/logger"
	"basegraph.app/backoffice/internal/apperr"
	"basegraph.app/backoffice/internal/model"
	"basegraph.app/backoffice/internal/service"
)

const (
	SessionCookieName = "backoffice_session"
	SessionIDHeader   = "X-Session-ID"

	principalKey = "principal"
	apiKeyKey    = "api_key"
)

type SessionValidator interface {
	ValidateSession(ctx context.Context, sessionID int64) (*model.Account, error)
}

type KeyValidator interface {
	Validate(ctx context.Context, rawKey string) (*model.APIKeyContext, error)
}

// RequireSession resolves the staff member behind the session header or cookie.
func RequireSession(sessions SessionValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID, ok := SessionIDFrom(c)
		if !ok {
			AbortWithError(c, apperr.Unauthorized("Unauthorized"))
			return
		}

		account, err := sessions.ValidateSession(c.Request.Context(), sessionID)
		if err != nil {
			AbortWithError(c, err)
			return
		}

		actorID := account.ID.String()
		ctx := logger.WithLogFields(c.Request.Context(), logger.LogFields{ActorID: &actorID})
		c.Request = c.Request.WithContext(ctx)
		SetPrincipal(c, model.PrincipalFor(account))

		c.Next()
	}
}

// RequireRole must run after RequireSession.
func RequireRole(role model.AccountRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := Principal(c)
		if !ok {
			AbortWithError(c, apperr.Unauthorized("Unauthorized"))
			return
		}
		if principal.Role != role {
			slog.WarnContext(c.Request.Context(), "role check failed", "required", role, "actual", principal.Role)
			AbortWithError(c, apperr.Forbidden("Forbidden"))
			return
		}
		c.Next()
	}
}

// APIKeyAuth authenticates the public landing page API with a bearer key.
func APIKeyAuth(keys KeyValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := service.BearerKey(c.GetHeader("Authorization"))

		key, err := keys.Validate(c.Request.Context(), raw)
		if err != nil {
			AbortWithError(c, err)
			return
		}

		landingPage := key.LandingPageID.String()
		ctx := logger.WithLogFields(c.Request.Context(), logger.LogFields{LandingPage: &landingPage})
		c.Request = c.Request.WithContext(ctx)
		SetAPIKey(c, *key)

		c.Next()
	}
}

func SetPrincipal(c *gin.Context, p model.Principal) {
	c.Set(principalKey, p)
}

func Principal(c *gin.Context) (model.Principal, bool) {
	v, ok := c.Get(principalKey)
	if !ok {
		return model.Principal{}, false
	}
	p, ok := v.(model.Principal)
	return p, ok
}

func SetAPIKey(c *gin.Context, k model.APIKeyContext) {
	c.Set(apiKeyKey, k)
}

func APIKey(c *gin.Context) (model.APIKeyContext, bool) {
	v, ok := c.Get(apiKeyKey)
	if !ok {
		return model.APIKeyContext{}, false
	}
	k, ok := v.(model.APIKeyContext)
	return k, ok
}

// SessionIDFrom reads the session id from the header, then the cookie.
func SessionIDFrom(c *gin.Context) (int64, bool) {
	raw := c.GetHeader(SessionIDHeader)
	if raw == "" {
		cookie, err := c.Cookie(SessionCookieName)
		if err != nil {
			return 0, false
		}
		raw = cookie
	}
	sessionID, err := id.Parse(raw)
	if err != nil || sessionID <= 0 {
		return 0, false
	}
	return sessionID, true
}

func AbortWithError(c *gin.Context, err error) {
	status, body := apperr.Serialize(err)
	if status >= 500 {
		slog.ErrorContext(c.Request.Context(), "request aborted", "error", err)
	}
	c.AbortWithStatusJSON(status, body)
}
