package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"basegraph.app/backoffice/internal/http/handler"
	"basegraph.app/backoffice/internal/http/middleware"
	"basegraph.app/backoffice/internal/model"
	"basegraph.app/backoffice/internal/service"
)

type RouterConfig struct {
	IsProduction bool
	// Gatherer backs /metrics; nil skips the endpoint.
	Gatherer prometheus.Gatherer
}

func SetupRoutes(router *gin.Engine, services *service.Services, cfg RouterConfig) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	if cfg.Gatherer != nil {
		router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(cfg.Gatherer, promhttp.HandlerOpts{})))
	}

	auth := services.Auth()
	AuthRouter(router.Group("/auth"), handler.NewAuthHandler(auth, cfg.IsProduction))

	v1 := router.Group("/api/v1")

	staff := v1.Group("", middleware.RequireSession(auth), middleware.RequireRole(model.AccountRoleStaff))
	{
		AccountRouter(staff.Group("/admin/users"), handler.NewAccountHandler(services.Accounts()))

		pages := handler.NewLandingPageHandler(services.LandingPages(), services.APIKeys())
		OrganizationRouter(staff.Group("/admin/organizations"), handler.NewOrganizationHandler(services.Organizations()), pages)
		LandingPageRouter(staff, pages)

		SubmissionRouter(staff,
			handler.NewNewsletterHandler(services.Newsletters()),
			handler.NewContactHandler(services.Contacts()))
	}

	public := v1.Group("/public/landing-pages/:slug", middleware.APIKeyAuth(services.APIKeys()))
	PublicRouter(public, handler.NewPublicHandler(services.Public()))
}
