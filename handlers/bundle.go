// File: handlers/bundle.go
package handlers

import (
	userRepoPkg "github.com/renjoshini/hereforyou/database/repository/user"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

// HandlerBundle groups all endpoint handlers and what the auth middleware needs.
type HandlerBundle struct {
	UserRepo  userRepoPkg.UserRepository
	AuthCache *redis.Client

	// Booking endpoints
	CreateBooking           gin.HandlerFunc
	GetMyBookings           gin.HandlerFunc
	GetProfessionalBookings gin.HandlerFunc
	GetBooking              gin.HandlerFunc
	UpdateBookingStatus     gin.HandlerFunc
	CancelBooking           gin.HandlerFunc
	UpdateBookingLocation   gin.HandlerFunc
	RecordActualCost        gin.HandlerFunc

	// Professional endpoints
	GetProfessionalAvailability gin.HandlerFunc

	// User device endpoints
	UpdateFCMTokenHandler gin.HandlerFunc

	HealthHandler gin.HandlerFunc
}

// NewHandlerBundle assembles the bundle from the handler structs.
func NewHandlerBundle(users userRepoPkg.UserRepository, authCache *redis.Client, bh *BookingHandler, udh *UserDeviceHandler) *HandlerBundle {
	return &HandlerBundle{
		UserRepo:  users,
		AuthCache: authCache,

		CreateBooking:           bh.CreateBooking,
		GetMyBookings:           bh.GetMyBookings,
		GetProfessionalBookings: bh.GetProfessionalBookings,
		GetBooking:              bh.GetBooking,
		UpdateBookingStatus:     bh.UpdateStatus,
		CancelBooking:           bh.CancelBooking,
		UpdateBookingLocation:   bh.UpdateLocation,
		RecordActualCost:        bh.RecordActualCost,

		GetProfessionalAvailability: bh.GetAvailability,

		UpdateFCMTokenHandler: udh.UpdateFCMTokenHandler,

		HealthHandler: HealthHandler,
	}
}
