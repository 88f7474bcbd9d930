package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestDeriveStatus(t *testing.T) {
	start := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	end := time.Date(2026, 3, 12, 18, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		now  time.Time
		want string
	}{
		{"before start", start.Add(-time.Hour), StatusUpcoming},
		{"exactly at start", start, StatusOngoing},
		{"between start and end", start.Add(24 * time.Hour), StatusOngoing},
		{"exactly at end", end, StatusOngoing},
		{"after end", end.Add(time.Minute), StatusCompleted},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DeriveStatus(tt.now, start, end))
		})
	}
}

func TestDeriveStatusIdempotent(t *testing.T) {
	start := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	end := start.Add(48 * time.Hour)
	now := start.Add(time.Hour)

	first := DeriveStatus(now, start, end)
	second := DeriveStatus(now, start, end)
	assert.Equal(t, first, second)
}

func TestCurrentStatusKeepsCancelled(t *testing.T) {
	event := Event{
		StartDate: time.Now().Add(-48 * time.Hour),
		EndDate:   time.Now().Add(-24 * time.Hour),
		Status:    StatusCancelled,
	}
	assert.Equal(t, StatusCancelled, event.CurrentStatus(time.Now()))
}

func TestValidMode(t *testing.T) {
	assert.True(t, ValidMode(ModeOnline))
	assert.True(t, ValidMode(ModeOffline))
	assert.True(t, ValidMode(ModeHybrid))
	assert.False(t, ValidMode("online"))
	assert.False(t, ValidMode("InPerson"))
	assert.False(t, ValidMode(""))
}

func TestIsLikedBy(t *testing.T) {
	liker := primitive.NewObjectID()
	other := primitive.NewObjectID()
	event := Event{Likes: []primitive.ObjectID{liker}}

	assert.True(t, event.IsLikedBy(liker))
	assert.False(t, event.IsLikedBy(other))
}

func TestHasPinned(t *testing.T) {
	pinned := primitive.NewObjectID()
	user := User{PinnedEvents: []primitive.ObjectID{pinned}}

	assert.True(t, user.HasPinned(pinned))
	assert.False(t, user.HasPinned(primitive.NewObjectID()))
}
