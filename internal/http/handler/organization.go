package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"basegraph.app/backoffice/internal/http/dto"
	"basegraph.app/backoffice/internal/schema"
	"basegraph.app/backoffice/internal/service"
)

type OrganizationHandler struct {
	orgs service.OrganizationService
}

func NewOrganizationHandler(orgs service.OrganizationService) *OrganizationHandler {
	return &OrganizationHandler{orgs: orgs}
}

func (h *OrganizationHandler) List(c *gin.Context) {
	var q schema.OrganizationQuery
	if err := bindQuery(c, &q); err != nil {
		respondError(c, err)
		return
	}

	page, err := h.orgs.List(c.Request.Context(), q)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToOrganizationList(page))
}

func (h *OrganizationHandler) Get(c *gin.Context) {
	org, err := h.orgs.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, org)
}

func (h *OrganizationHandler) Create(c *gin.Context) {
	actor, err := principal(c)
	if err != nil {
		respondError(c, err)
		return
	}

	var in schema.CreateOrganizationInput
	if err := bindJSON(c, &in); err != nil {
		respondError(c, err)
		return
	}

	org, err := h.orgs.Create(c.Request.Context(), actor, in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, org)
}

func (h *OrganizationHandler) Update(c *gin.Context) {
	actor, err := principal(c)
	if err != nil {
		respondError(c, err)
		return
	}

	var in schema.UpdateOrganizationInput
	if err := bindJSON(c, &in); err != nil {
		respondError(c, err)
		return
	}
	in.ID = c.Param("id")

	org, err := h.orgs.Update(c.Request.Context(), actor, in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, org)
}

func (h *OrganizationHandler) Delete(c *gin.Context) {
	actor, err := principal(c)
	if err != nil {
		respondError(c, err)
		return
	}

	if err := h.orgs.Delete(c.Request.Context(), actor, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
