package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"basegraph.app/backoffice/internal/http/dto"
	"basegraph.app/backoffice/internal/schema"
	"basegraph.app/backoffice/internal/service"
)

type LandingPageHandler struct {
	pages service.LandingPageService
	keys  service.APIKeyService
}

func NewLandingPageHandler(pages service.LandingPageService, keys service.APIKeyService) *LandingPageHandler {
	return &LandingPageHandler{pages: pages, keys: keys}
}

// List is mounted under an organization; the path id is the organization.
func (h *LandingPageHandler) List(c *gin.Context) {
	var q schema.LandingPageQuery
	if err := bindQuery(c, &q); err != nil {
		respondError(c, err)
		return
	}

	page, err := h.pages.List(c.Request.Context(), c.Param("id"), q)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToLandingPageList(page))
}

func (h *LandingPageHandler) Get(c *gin.Context) {
	lp, err := h.pages.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, lp)
}

func (h *LandingPageHandler) Create(c *gin.Context) {
	actor, err := principal(c)
	if err != nil {
		respondError(c, err)
		return
	}

	var in schema.CreateLandingPageInput
	if err := bindJSON(c, &in); err != nil {
		respondError(c, err)
		return
	}
	in.OrganizationID = c.Param("id")

	lp, err := h.pages.Create(c.Request.Context(), actor, in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, lp)
}

func (h *LandingPageHandler) Update(c *gin.Context) {
	actor, err := principal(c)
	if err != nil {
		respondError(c, err)
		return
	}

	var in schema.UpdateLandingPageInput
	if err := bindJSON(c, &in); err != nil {
		respondError(c, err)
		return
	}
	in.ID = c.Param("id")

	lp, err := h.pages.Update(c.Request.Context(), actor, in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, lp)
}

func (h *LandingPageHandler) Delete(c *gin.Context) {
	actor, err := principal(c)
	if err != nil {
		respondError(c, err)
		return
	}

	if err := h.pages.Delete(c.Request.Context(), actor, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *LandingPageHandler) ListAPIKeys(c *gin.Context) {
	keys, err := h.keys.List(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToAPIKeyList(keys))
}

func (h *LandingPageHandler) CreateAPIKey(c *gin.Context) {
	actor, err := principal(c)
	if err != nil {
		respondError(c, err)
		return
	}

	var in schema.CreateAPIKeyInput
	if err := bindJSON(c, &in); err != nil {
		respondError(c, err)
		return
	}
	in.LandingPageID = c.Param("id")

	key, plaintext, err := h.keys.Create(c.Request.Context(), actor, in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.APIKeyCreatedResponse{APIKey: *key, Key: plaintext})
}

func (h *LandingPageHandler) UpdateAPIKey(c *gin.Context) {
	actor, err := principal(c)
	if err != nil {
		respondError(c, err)
		return
	}

	var in schema.UpdateAPIKeyInput
	if err := bindJSON(c, &in); err != nil {
		respondError(c, err)
		return
	}
	in.ID = c.Param("id")

	key, err := h.keys.Update(c.Request.Context(), actor, in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, key)
}

func (h *LandingPageHandler) DeleteAPIKey(c *gin.Context) {
	actor, err := principal(c)
	if err != nil {
		respondError(c, err)
		return
	}

	if err := h.keys.Delete(c.Request.Context(), actor, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
