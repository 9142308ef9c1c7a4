package professionalRepo

import (
	"context"
	"errors"

	"github.com/renjoshini/hereforyou/models"
)

// ErrNotFound is returned when no professional matches the lookup.
var ErrNotFound = errors.New("professional not found")

// ProfessionalRepository defines the read side the booking lifecycle needs,
// plus Create for seeding.
type ProfessionalRepository interface {
	GetByID(ctx context.Context, id string) (*models.Professional, error)
	// GetByUserID resolves the professional profile owned by a user account.
	GetByUserID(ctx context.Context, userID string) (*models.Professional, error)
	Create(ctx context.Context, professional *models.Professional) error
}
