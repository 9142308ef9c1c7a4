package userRepo

import (
	"errors"

	"github.com/renjoshini/hereforyou/models"

	"go.mongodb.org/mongo-driver/bson"
)

// ErrUserNotFound is returned when no user matches the lookup.
var ErrUserNotFound = errors.New("user not found")

// UserRepository defines methods for user data access.
type UserRepository interface {
	// GetByID retrieves a user by its unique ID.
	GetByID(id string) (*models.User, error)
	// GetByIDWithProjection retrieves a user by its unique ID with a projection.
	GetByIDWithProjection(id string, projection bson.M) (*models.User, error)
	// Create inserts a new user record.
	Create(user *models.User) error
	// SetTokenHash stores the hash of the user's current access token.
	SetTokenHash(id, tokenHash string) error
	// SetFCMToken stores the device token used for push notifications.
	SetFCMToken(id, fcmToken string) error
}
