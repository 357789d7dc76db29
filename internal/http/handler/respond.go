package handler

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/gin-gonic/gin"

	"basegraph.app/backoffice/internal/apperr"
	"basegraph.app/backoffice/internal/http/middleware"
	"basegraph.app/backoffice/internal/model"
)

const invalidJSONBody = "Invalid JSON body"

// respondError is the single error exit for every handler.
func respondError(c *gin.Context, err error) {
	status, body := apperr.Serialize(err)
	if status >= 500 {
		slog.ErrorContext(c.Request.Context(), "request failed", "error", err, "path", c.FullPath())
	}
	c.JSON(status, body)
}

// bindJSON decodes the body. Schema rules run later in the service.
func bindJSON(c *gin.Context, dst any) error {
	err := c.ShouldBindJSON(dst)
	if err == nil {
		return nil
	}

	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.As(err, &typeErr):
		field := jsonFieldPath(typeErr.Field)
		if field == "" {
			field = "body"
		}
		return apperr.Validation(apperr.FieldErrors{field: {"Invalid value type"}})
	case errors.Is(err, io.EOF):
		return apperr.BadRequest(invalidJSONBody)
	default:
		slog.WarnContext(c.Request.Context(), "invalid request body", "error", err)
		return apperr.BadRequest(invalidJSONBody)
	}
}

// jsonFieldPath drops the Go names of embedded structs that encoding/json
// puts in front of the JSON field name, e.g. "AccountFields.email".
func jsonFieldPath(path string) string {
	parts := strings.Split(path, ".")
	for len(parts) > 1 && startsUpper(parts[0]) {
		parts = parts[1:]
	}
	return strings.Join(parts, ".")
}

func startsUpper(s string) bool {
	r, _ := utf8.DecodeRuneInString(s)
	return unicode.IsUpper(r)
}

func bindQuery(c *gin.Context, dst any) error {
	if err := c.ShouldBindQuery(dst); err != nil {
		slog.WarnContext(c.Request.Context(), "invalid query parameters", "error", err)
		return apperr.Validation(apperr.FieldErrors{"query": {"Invalid query parameters"}})
	}
	return nil
}

func principal(c *gin.Context) (model.Principal, error) {
	p, ok := middleware.Principal(c)
	if !ok {
		return model.Principal{}, apperr.Unauthorized("Unauthorized")
	}
	return p, nil
}

func apiKey(c *gin.Context) (model.APIKeyContext, error) {
	k, ok := middleware.APIKey(c)
	if !ok {
		return model.APIKeyContext{}, apperr.Unauthorized("Missing API key")
	}
	return k, nil
}
