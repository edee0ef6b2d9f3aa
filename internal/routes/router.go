package routes

import (
	"wedding-rsvp/internal/controller"
	"wedding-rsvp/internal/middleware"

	"github.com/gin-gonic/gin"
	"golang.org/x/text/language"
)

// Router builds the HTTP surface. locale is the language used when the
// guest names none we support.
func Router(h *controller.Handler, jwtSecret string, locale language.Tag) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestID(), middleware.Locale(locale))

	// Health for load balancers and K8s probes
	router.GET("/health", h.Health)
	router.GET("/ready", h.Ready)

	// Public: guests are never authenticated
	api := router.Group("/api")
	{
		api.GET("/submissions", h.GetSubmissions)
		api.POST("/submissions", h.CreateSubmission)
		api.POST("/send-email", h.SendEmail)
		api.GET("/page", h.GetPage)
		api.POST("/page/submit", h.SubmitPage)
		api.GET("/countdown", h.GetCountdown)
		api.GET("/countdown/stream", h.StreamCountdown)
	}

	// Host only: JWT required
	host := router.Group("/api/host")
	host.Use(middleware.AuthMiddleware(jwtSecret))
	{
		host.GET("/summary", h.HostSummary)
	}

	return router
}
