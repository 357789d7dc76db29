package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"basegraph.app/backoffice/internal/http/dto"
	"basegraph.app/backoffice/internal/schema"
	"basegraph.app/backoffice/internal/service"
)

type NewsletterHandler struct {
	newsletters service.NewsletterService
}

func NewNewsletterHandler(newsletters service.NewsletterService) *NewsletterHandler {
	return &NewsletterHandler{newsletters: newsletters}
}

func (h *NewsletterHandler) List(c *gin.Context) {
	var q schema.NewsletterQuery
	if err := bindQuery(c, &q); err != nil {
		respondError(c, err)
		return
	}

	page, err := h.newsletters.List(c.Request.Context(), q)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToNewsletterList(page))
}

func (h *NewsletterHandler) Create(c *gin.Context) {
	actor, err := principal(c)
	if err != nil {
		respondError(c, err)
		return
	}

	var in schema.CreateNewsletterInput
	if err := bindJSON(c, &in); err != nil {
		respondError(c, err)
		return
	}

	sub, err := h.newsletters.Create(c.Request.Context(), actor, in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, sub)
}

func (h *NewsletterHandler) Update(c *gin.Context) {
	actor, err := principal(c)
	if err != nil {
		respondError(c, err)
		return
	}

	var in schema.UpdateNewsletterInput
	if err := bindJSON(c, &in); err != nil {
		respondError(c, err)
		return
	}
	in.ID = c.Param("id")

	sub, err := h.newsletters.Update(c.Request.Context(), actor, in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, sub)
}

type ContactHandler struct {
	contacts service.ContactService
}

func NewContactHandler(contacts service.ContactService) *ContactHandler {
	return &ContactHandler{contacts: contacts}
}

func (h *ContactHandler) List(c *gin.Context) {
	var q schema.ContactQuery
	if err := bindQuery(c, &q); err != nil {
		respondError(c, err)
		return
	}

	page, err := h.contacts.List(c.Request.Context(), q)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToContactList(page))
}

func (h *ContactHandler) Create(c *gin.Context) {
	actor, err := principal(c)
	if err != nil {
		respondError(c, err)
		return
	}

	var in schema.CreateContactInput
	if err := bindJSON(c, &in); err != nil {
		respondError(c, err)
		return
	}

	sub, err := h.contacts.Create(c.Request.Context(), actor, in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, sub)
}

func (h *ContactHandler) Update(c *gin.Context) {
	actor, err := principal(c)
	if err != nil {
		respondError(c, err)
		return
	}

	var in schema.UpdateContactInput
	if err := bindJSON(c, &in); err != nil {
		respondError(c, err)
		return
	}
	in.ID = c.Param("id")

	sub, err := h.contacts.Update(c.Request.Context(), actor, in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, sub)
}
