package routes

import (
	"time"

	"github.com/renjoshini/hereforyou/handlers"
	"github.com/renjoshini/hereforyou/middleware"
	"github.com/renjoshini/hereforyou/services/booking"
	"github.com/renjoshini/hereforyou/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// RegisterBookingRoutes registers the booking lifecycle endpoints.
func RegisterBookingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/bookings")
	api.Use(middleware.JWTAuthUserMiddleware(hb.UserRepo, hb.AuthCache))
	{
		api.POST("", hb.CreateBooking)
		api.GET("/my-bookings", hb.GetMyBookings)
		api.GET("/professional-bookings", hb.GetProfessionalBookings)
		api.GET("/:id", hb.GetBooking)
		api.PUT("/:id/status", hb.UpdateBookingStatus)
		api.PUT("/:id/cancel", hb.CancelBooking)
		api.PUT("/:id/location", hb.UpdateBookingLocation)
		api.PUT("/:id/cost", hb.RecordActualCost)
	}
}

// RegisterProfessionalRoutes registers public professional endpoints.
func RegisterProfessionalRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/professionals")
	{
		api.GET("/:id/availability", hb.GetProfessionalAvailability)
	}
}

// RegisterUserRoutes registers endpoints for the signed-in user.
func RegisterUserRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/users")
	api.Use(middleware.JWTAuthUserMiddleware(hb.UserRepo, hb.AuthCache))
	{
		api.PUT("/me/fcm-token", hb.UpdateFCMTokenHandler)
	}
}

// RegisterHealthRoute exposes the dependency health snapshot.
func RegisterHealthRoute(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.GET("/health", hb.HealthHandler)
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:    []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:   []string{"Content-Length"},
		MaxAge:          12 * time.Hour,
	}))

	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		if err := booking.RegisterValidations(v); err != nil {
			utils.GetLogger().Error("Failed to register binding validators", zap.Error(err))
		}
	}

	RegisterHealthRoute(r, hb)
	RegisterBookingRoutes(r, hb)
	RegisterProfessionalRoutes(r, hb)
	RegisterUserRoutes(r, hb)
}
