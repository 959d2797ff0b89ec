package routes

import (
	"net/http"
	"time"

	"shutterhub/handlers"
	"shutterhub/middleware"
	"shutterhub/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterBookingRoutes sets up the endpoints for the booking engine.
func RegisterBookingRoutes(r *gin.Engine, h *handlers.BookingHandler) {
	bookings := r.Group("/api/bookings")
	{
		bookings.Use(middleware.JWTAuthMiddleware())
		bookings.POST("", h.CreateBookingHandler)
		bookings.GET("", h.ListBookingsHandler)
		bookings.GET("/:id", h.GetBookingHandler)
		bookings.POST("/:id/payment", h.ConfirmPaymentHandler)
		bookings.PATCH("/:id/status", h.UpdateStatusHandler)
		bookings.POST("/:id/cancel", h.CancelBookingHandler)
		bookings.DELETE("/:id", h.DeleteBookingHandler)
	}
}

// RegisterResourceRoutes sets up the availability calendar endpoint. The
// calendar is public so clients can browse before signing in.
func RegisterResourceRoutes(r *gin.Engine, h *handlers.BookingHandler) {
	resources := r.Group("/api/resources")
	{
		resources.GET("/:id/availability", h.GetAvailabilityHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "services": utils.GetHealthStatus()})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, h *handlers.BookingHandler) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterHealthRoute(r)
	RegisterBookingRoutes(r, h)
	RegisterResourceRoutes(r, h)
}
