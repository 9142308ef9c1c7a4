// models/user.go
package models

import "time"

// User is an account on the platform. Customers and professionals both have one.
type User struct {
	ID        string    `bson:"id" json:"id"`
	Name      string    `bson:"name" json:"name"`
	Email     string    `bson:"email" json:"email"`
	Phone     string    `bson:"phone" json:"phone"`
	FCMToken  string    `bson:"fcmToken,omitempty" json:"-"`
	TokenHash string    `bson:"tokenHash,omitempty" json:"-"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}
