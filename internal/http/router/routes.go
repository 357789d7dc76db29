package router

import (
	"github.com/gin-gonic/gin"

	"basegraph.app/backoffice/internal/http/handler"
)

func AuthRouter(rg *gin.RouterGroup, h *handler.AuthHandler) {
	rg.GET("/url", h.GetAuthURL)
	rg.POST("/exchange", h.Exchange)
	rg.GET("/me", h.Me)
	rg.POST("/logout", h.Logout)
}

func AccountRouter(rg *gin.RouterGroup, h *handler.AccountHandler) {
	rg.GET("", h.List)
	rg.POST("", h.Create)
	rg.GET("/:id", h.Get)
	rg.PATCH("/:id", h.Update)
}

// OrganizationRouter also mounts landing page listing and creation under an organization.
func OrganizationRouter(rg *gin.RouterGroup, h *handler.OrganizationHandler, pages *handler.LandingPageHandler) {
	rg.GET("", h.List)
	rg.POST("", h.Create)
	rg.GET("/:id", h.Get)
	rg.PATCH("/:id", h.Update)
	rg.DELETE("/:id", h.Delete)
	rg.GET("/:id/landing-pages", pages.List)
	rg.POST("/:id/landing-pages", pages.Create)
}

func LandingPageRouter(rg *gin.RouterGroup, h *handler.LandingPageHandler) {
	lp := rg.Group("/landing-pages")
	lp.GET("/:id", h.Get)
	lp.PATCH("/:id", h.Update)
	lp.DELETE("/:id", h.Delete)
	lp.GET("/:id/api-keys", h.ListAPIKeys)
	lp.POST("/:id/api-keys", h.CreateAPIKey)

	keys := rg.Group("/api-keys")
	keys.PATCH("/:id", h.UpdateAPIKey)
	keys.DELETE("/:id", h.DeleteAPIKey)
}

func SubmissionRouter(rg *gin.RouterGroup, newsletters *handler.NewsletterHandler, contacts *handler.ContactHandler) {
	n := rg.Group("/newsletter-submissions")
	n.GET("", newsletters.List)
	n.POST("", newsletters.Create)
	n.PATCH("/:id", newsletters.Update)

	ct := rg.Group("/contact-submissions")
	ct.GET("", contacts.List)
	ct.POST("", contacts.Create)
	ct.PATCH("/:id", contacts.Update)
}

func PublicRouter(rg *gin.RouterGroup, h *handler.PublicHandler) {
	rg.POST("/newsletter", h.Newsletter)
	rg.POST("/contact", h.Contact)
	rg.POST("/submissions", h.Submit)
	rg.GET("/analytics", h.Analytics)
}
