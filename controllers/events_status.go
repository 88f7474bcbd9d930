package controllers

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	models "github.com/eventhive/eventhive-go/models"
)

// refreshEventStatus recomputes one event's status from the clock and
// persists it only when it differs from the stored value. A failed persist is
// logged, not surfaced: reads should not fail because a best-effort write
// lost a race.
func refreshEventStatus(ctx context.Context, col *mongo.Collection, event *models.Event, now time.Time) {
	derived := event.CurrentStatus(now)
	if derived == event.Status {
		return
	}

	// BSON datetimes carry millisecond precision; truncate so the in-memory
	// timestamp equals what a later read will decode.
	stamp := now.Truncate(time.Millisecond)

	_, err := col.UpdateOne(ctx,
		bson.M{"_id": event.ID},
		bson.M{"$set": bson.M{"status": derived, "updated_at": stamp}})
	if err != nil {
		log.Warn().Err(err).Str("event_id", event.ID.Hex()).Msg("could not persist derived status")
	}
	event.Status = derived
	// Keep the in-memory document in step with the store so conditional
	// request headers are derived from the timestamp that was persisted.
	event.UpdatedAt = stamp
}

// refreshEventStatuses applies refreshEventStatus to every event in a list
// read.
func refreshEventStatuses(ctx context.Context, col *mongo.Collection, events []models.Event, now time.Time) {
	for i := range events {
		refreshEventStatus(ctx, col, &events[i], now)
	}
}
