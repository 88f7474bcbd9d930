package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	StatusUpcoming  = "Upcoming"
	StatusOngoing   = "Ongoing"
	StatusCompleted = "Completed"
	StatusCancelled = "Cancelled"
)

const (
	ModeOnline  = "Online"
	ModeOffline = "Offline"
	ModeHybrid  = "Hybrid"
)

// AllowedModes is the delivery-mode enum accepted on event writes.
var AllowedModes = []string{ModeOnline, ModeOffline, ModeHybrid}

type ContactInfo struct {
	Name  string `bson:"name,omitempty" json:"name,omitempty"`
	Email string `bson:"email,omitempty" json:"email,omitempty"`
	Phone string `bson:"phone,omitempty" json:"phone,omitempty"`
}

type Event struct {
	ID                   primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	OwnerID              primitive.ObjectID   `bson:"owner_id" json:"owner_id"`
	Title                string               `bson:"title" json:"title"`
	Description          string               `bson:"description" json:"description"`
	Category             string               `bson:"category" json:"category"`
	Organizer            string               `bson:"organizer" json:"organizer"`
	HostedBy             string               `bson:"hosted_by" json:"hosted_by"`
	StartDate            time.Time            `bson:"start_date" json:"start_date"`
	EndDate              time.Time            `bson:"end_date" json:"end_date"`
	RegistrationDeadline time.Time            `bson:"registration_deadline" json:"registration_deadline"`
	Time                 string               `bson:"time,omitempty" json:"time,omitempty"`
	Mode                 string               `bson:"mode" json:"mode"` // Online, Offline, Hybrid
	Venue                string               `bson:"venue,omitempty" json:"venue,omitempty"`
	RegistrationLink     string               `bson:"registration_link" json:"registration_link"`
	BannerImage          string               `bson:"banner_image" json:"banner_image"`
	Status               string               `bson:"status" json:"status"` // Upcoming, Ongoing, Completed, Cancelled
	ContactInfo          ContactInfo          `bson:"contact_info" json:"contact_info"`
	Rules                []string             `bson:"rules" json:"rules"`
	Likes                []primitive.ObjectID `bson:"likes" json:"likes"`
	CreatedAt            time.Time            `bson:"created_at" json:"created_at"`
	UpdatedAt            time.Time            `bson:"updated_at" json:"updated_at"`
}

// DeriveStatus computes event status purely from the clock: Upcoming before
// the start date, Ongoing within [start, end], Completed after the end date.
func DeriveStatus(now, start, end time.Time) string {
	switch {
	case now.Before(start):
		return StatusUpcoming
	case now.After(end):
		return StatusCompleted
	default:
		return StatusOngoing
	}
}

// CurrentStatus is DeriveStatus applied to this event. A Cancelled status is
// an owner decision, not a time fact, so it is never overwritten.
func (e *Event) CurrentStatus(now time.Time) string {
	if e.Status == StatusCancelled {
		return StatusCancelled
	}
	return DeriveStatus(now, e.StartDate, e.EndDate)
}

// IsLikedBy reports whether the user's id is in the event's likes list.
func (e *Event) IsLikedBy(userID primitive.ObjectID) bool {
	for _, id := range e.Likes {
		if id == userID {
			return true
		}
	}
	return false
}

// ValidMode reports whether mode is one of the enumerated delivery modes.
func ValidMode(mode string) bool {
	for _, m := range AllowedModes {
		if m == mode {
			return true
		}
	}
	return false
}
