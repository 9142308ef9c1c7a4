package handlers

import (
	"errors"
	"net/http"

	"github.com/renjoshini/hereforyou/services/booking"
	"github.com/renjoshini/hereforyou/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// statusFor maps a booking error code to its HTTP status.
func statusFor(code string) int {
	switch code {
	case booking.CodeValidation, booking.CodeProfessionalUnavailable, booking.CodeInvalidTransition:
		return http.StatusBadRequest
	case booking.CodeNotFound:
		return http.StatusNotFound
	case booking.CodeAccessDenied:
		return http.StatusForbidden
	case booking.CodeSlotConflict:
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

// respondError writes err using the shared error shape. Unclassified errors
// are logged and reported as a bare 500.
func respondError(c *gin.Context, err error) {
	var be *booking.BookingError
	if errors.As(err, &be) {
		var details any
		if len(be.Details) > 0 {
			details = be.Details
		}
		utils.JSONError(c, statusFor(be.Code), be.Message, details)
		return
	}
	utils.GetLogger().Error("Request failed", zap.String("path", c.Request.URL.Path), zap.Error(err))
	utils.JSONError(c, http.StatusInternalServerError, "Internal Server Error", nil)
}
