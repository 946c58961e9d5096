package domain

import (
	"errors"
	"time"
)

var ErrForbidden = errors.New("access forbidden")
var ErrBootstrapTaken = errors.New("admin bootstrap already claimed")

// AdminGrant marks a user as holding elevated privilege. One grant per user;
// grants are never updated or deleted.
type AdminGrant struct {
	ID        string    `json:"id" bson:"_id,omitempty"`
	UserID    string    `json:"user_id" bson:"user_id"`
	Email     string    `json:"email" bson:"email"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}
