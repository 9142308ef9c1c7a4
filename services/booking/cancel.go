package booking

import (
	"context"
	"strings"

	"github.com/renjoshini/hereforyou/models"
)

// CancelBooking is the customer's cancellation path. It shares the
// cancellation routine with UpdateStatus, so refund eligibility is computed
// the same way on both.
func (s *DefaultBookingService) CancelBooking(ctx context.Context, bookingID, customerID, reason string) (*models.CancellationResult, error) {
	booking, err := s.loadBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if customerID == "" || booking.CustomerID != customerID {
		return nil, newError(CodeAccessDenied, "only the customer can cancel this booking")
	}

	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, validationError("cancellation reason is required", map[string]string{"reason": "is required"})
	}
	if booking.Status.IsTerminal() {
		return nil, newError(CodeInvalidTransition, "cannot cancel a %s booking", booking.Status)
	}

	updated, err := s.applyTransition(ctx, booking, models.StatusCancelled, reason, customerID, RoleCustomer)
	if err != nil {
		return nil, err
	}

	result := &models.CancellationResult{BookingCode: updated.BookingCode}
	if updated.Cancellation != nil {
		result.RefundEligible = updated.Cancellation.RefundEligible
		result.CancellationCharge = updated.Cancellation.CancellationCharge
	}
	return result, nil
}
