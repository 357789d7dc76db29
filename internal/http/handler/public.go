package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"basegraph.app/backoffice/internal/schema"
	"basegraph.app/backoffice/internal/service"
)

// PublicHandler serves landing pages authenticated with an API key.
type PublicHandler struct {
	public service.PublicService
}

func NewPublicHandler(public service.PublicService) *PublicHandler {
	return &PublicHandler{public: public}
}

func (h *PublicHandler) Newsletter(c *gin.Context) {
	key, err := apiKey(c)
	if err != nil {
		respondError(c, err)
		return
	}

	var in schema.PublicNewsletterInput
	if err := bindJSON(c, &in); err != nil {
		respondError(c, err)
		return
	}

	sub, err := h.public.SubscribeNewsletter(c.Request.Context(), key, c.Param("slug"), in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": sub.ID, "status": sub.SubscriptionStatus})
}

func (h *PublicHandler) Contact(c *gin.Context) {
	key, err := apiKey(c)
	if err != nil {
		respondError(c, err)
		return
	}

	var in schema.PublicContactInput
	if err := bindJSON(c, &in); err != nil {
		respondError(c, err)
		return
	}

	sub, err := h.public.SubmitContact(c.Request.Context(), key, c.Param("slug"), in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": sub.ID, "status": sub.Status})
}

func (h *PublicHandler) Submit(c *gin.Context) {
	key, err := apiKey(c)
	if err != nil {
		respondError(c, err)
		return
	}

	var in schema.PublicCustomSubmissionInput
	if err := bindJSON(c, &in); err != nil {
		respondError(c, err)
		return
	}

	sub, err := h.public.Submit(c.Request.Context(), key, c.Param("slug"), in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, sub)
}

func (h *PublicHandler) Analytics(c *gin.Context) {
	key, err := apiKey(c)
	if err != nil {
		respondError(c, err)
		return
	}

	analytics, err := h.public.Analytics(c.Request.Context(), key, c.Param("slug"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, analytics)
}
