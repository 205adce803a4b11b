package routes

import (
	"time"

	"lexbook/handlers"
	"lexbook/middleware"
	"lexbook/monitoring"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterConsultationRoutes registers the booking wizard endpoints.
func RegisterConsultationRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/consultation")
	{
		api.POST("/session", hb.Consultation.StartSession)
		api.GET("/session/:sessionID", hb.Consultation.GetSession)
		api.PATCH("/session/:sessionID", hb.Consultation.UpdateForm)
		api.PATCH("/session/:sessionID/contact", hb.Consultation.UpdateContact)
		api.POST("/session/:sessionID/eligibility", hb.Consultation.CheckEligibility)
		api.POST("/session/:sessionID/next", hb.Consultation.NextStep)
		api.POST("/session/:sessionID/back", hb.Consultation.PrevStep)
		api.POST("/session/:sessionID/submit", hb.Consultation.Submit)

		// Payment gateways redirect the browser here after checkout.
		api.GET("/callback", hb.Consultation.PaymentCallback)
	}
}

// RegisterAdminRoutes registers the staff dashboard endpoints.
func RegisterAdminRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/admin")
	{
		api.Use(middleware.AdminAuthMiddleware())
		api.GET("/stats", hb.Admin.Stats)
		api.GET("/consultations", hb.Admin.Consultations)
		api.GET("/consultations/:id", hb.Admin.ConsultationDetails)
		api.PATCH("/consultations/:id/status", hb.Admin.UpdateConsultationStatus)
		api.GET("/payments", hb.Admin.Payments)
		api.GET("/users", hb.Admin.Users)
		api.GET("/analytics", hb.Admin.Analytics)
		api.GET("/export/:kind", hb.Admin.Export)
	}
}

// RegisterPortalRoutes registers client portal endpoints.
func RegisterPortalRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/portal")
	{
		api.POST("/register", hb.Portal.Register)
		api.POST("/login", hb.Portal.Login)
		api.POST("/logout", hb.Portal.Logout)

		// Protected routes (require a valid session token).
		protected := api.Group("")
		protected.Use(middleware.PortalAuthMiddleware(hb.Portal.Service))
		protected.GET("/me", hb.Portal.Me)
		protected.GET("/dashboard", hb.Portal.Dashboard)
		protected.GET("/cases", hb.Portal.Cases)
	}
}

// RegisterChatRoutes registers the site assistant endpoint.
func RegisterChatRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.POST("/api/chat", hb.Chat.Message)
}

// RegisterHealthRoute registers the health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", handlers.Health)
}

// RegisterMetricsRoute exposes Prometheus metrics.
func RegisterMetricsRoute(r *gin.Engine) {
	r.GET("/metrics", gin.WrapH(monitoring.Handler()))
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type", middleware.AdminKeyHeader},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterConsultationRoutes(r, hb)
	RegisterAdminRoutes(r, hb)
	RegisterPortalRoutes(r, hb)
	RegisterChatRoutes(r, hb)
	RegisterHealthRoute(r)
	RegisterMetricsRoute(r)
}
