package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	RoleUser  = "user"
	RoleOwner = "owner"
)

type User struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	FirstName   string             `bson:"first_name" json:"first_name"`
	LastName    string             `bson:"last_name" json:"last_name"`
	UserName    string             `bson:"user_name" json:"user_name"`
	Email       string             `bson:"email" json:"email"`
	PhoneNumber string             `bson:"phone_number,omitempty" json:"phone_number,omitempty"`
	Picture     string             `bson:"picture" json:"picture"`
	Password    string             `bson:"password" json:"-"`
	Role        string             `bson:"role" json:"role"` // user, owner

	// Bcrypt hash of the 6-digit ownership code. Nil unless role is owner.
	OwnerCode *string `bson:"owner_code" json:"-"`

	PinnedEvents  []primitive.ObjectID `bson:"pinned_events" json:"pinned_events"`
	CreatedEvents []primitive.ObjectID `bson:"created_events" json:"created_events"`

	// Password-reset OTP (hashed) and its expiry.
	ResetOTP       string    `bson:"reset_otp,omitempty" json:"-"`
	ResetOTPExpiry time.Time `bson:"reset_otp_expiry,omitempty" json:"-"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// HasPinned reports whether the event is already in the user's pin list.
func (u *User) HasPinned(eventID primitive.ObjectID) bool {
	for _, id := range u.PinnedEvents {
		if id == eventID {
			return true
		}
	}
	return false
}
