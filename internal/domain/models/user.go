package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is an account record for the session identity layer.
// Email is unique across all users (unique index).
type User struct {
	ID primitive.ObjectID `bson:"_id,omitempty" json:"id"`

	Email string `bson:"email" json:"email"`
	Name  string `bson:"name" json:"name"`

	// bcrypt hash; never serialized to clients
	PasswordHash string `bson:"password_hash" json:"-"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
