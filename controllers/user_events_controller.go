package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	config "github.com/eventhive/eventhive-go/config"
	middleware "github.com/eventhive/eventhive-go/middleware"
	models "github.com/eventhive/eventhive-go/models"
	utils "github.com/eventhive/eventhive-go/utils"
)

// ---------------- LIST ALL ----------------
func AllEvents(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		col := cfg.MongoClient.Database(cfg.DBName).Collection("events")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		cursor, err := col.Find(ctx, bson.M{},
			options.Find().SetSort(bson.D{{Key: "start_date", Value: -1}}))
		if err != nil {
			utils.Error(c, http.StatusInternalServerError, "Could not fetch events")
			return
		}

		var events []models.Event
		if err := cursor.All(ctx, &events); err != nil {
			utils.Error(c, http.StatusInternalServerError, "Could not decode events")
			return
		}

		if len(events) == 0 {
			utils.Error(c, http.StatusNotFound, "No upcoming events found")
			return
		}

		refreshEventStatuses(ctx, col, events, time.Now())

		utils.Respond(c, http.StatusOK, events, "Events fetched successfully")
	}
}

// ---------------- GET ONE ----------------
func ParticularEvent(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		eventID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			utils.Error(c, http.StatusBadRequest, "Invalid event ID")
			return
		}

		col := cfg.MongoClient.Database(cfg.DBName).Collection("events")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		var event models.Event
		if err := col.FindOne(ctx, bson.M{"_id": eventID}).Decode(&event); err != nil {
			utils.Error(c, http.StatusNotFound, "Event not found")
			return
		}

		refreshEventStatus(ctx, col, &event, time.Now())

		utils.Respond(c, http.StatusOK, event, "Event details fetched successfully")
	}
}

// ---------------- FILTER ----------------
func FilterEvents(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var q eventFilterQuery
		if err := c.ShouldBindQuery(&q); err != nil {
			utils.Error(c, http.StatusBadRequest, err.Error())
			return
		}

		filter, err := buildEventFilter(q, primitive.NilObjectID)
		if err != nil {
			utils.Error(c, http.StatusBadRequest, err.Error())
			return
		}

		col := cfg.MongoClient.Database(cfg.DBName).Collection("events")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		cursor, err := col.Find(ctx, filter,
			options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
		if err != nil {
			utils.Error(c, http.StatusInternalServerError, "Could not fetch events")
			return
		}

		var events []models.Event
		if err := cursor.All(ctx, &events); err != nil {
			utils.Error(c, http.StatusInternalServerError, "Could not decode events")
			return
		}

		if len(events) == 0 {
			utils.Error(c, http.StatusNotFound, "No events found matching your criteria")
			return
		}

		refreshEventStatuses(ctx, col, events, time.Now())

		utils.Respond(c, http.StatusOK, events, "Filtered events fetched successfully")
	}
}

// ---------------- PIN ----------------
func PinEvent(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		current, ok := middleware.CurrentUser(c)
		if !ok {
			utils.Error(c, http.StatusUnauthorized, "Please login to continue")
			return
		}

		eventID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			utils.Error(c, http.StatusBadRequest, "Invalid event ID")
			return
		}

		db := cfg.MongoClient.Database(cfg.DBName)
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		var event models.Event
		if err := db.Collection("events").FindOne(ctx, bson.M{"_id": eventID}).Decode(&event); err != nil {
			utils.Error(c, http.StatusNotFound, "Event not found")
			return
		}

		// Duplicate pins are rejected, not silently ignored.
		if current.HasPinned(eventID) {
			utils.Error(c, http.StatusBadRequest, "Event already pinned")
			return
		}

		_, err = db.Collection("users").UpdateOne(ctx,
			bson.M{"_id": current.ID},
			bson.M{"$addToSet": bson.M{"pinned_events": eventID}})
		if err != nil {
			utils.Error(c, http.StatusInternalServerError, "Could not pin event")
			return
		}

		utils.Respond(c, http.StatusOK, gin.H{"event_id": eventID.Hex()}, "Event pinned successfully")
	}
}

// ---------------- UNPIN ----------------
func UnpinEvent(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		current, ok := middleware.CurrentUser(c)
		if !ok {
			utils.Error(c, http.StatusUnauthorized, "Please login to continue")
			return
		}

		eventID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			utils.Error(c, http.StatusBadRequest, "Invalid event ID")
			return
		}

		if !current.HasPinned(eventID) {
			utils.Error(c, http.StatusBadRequest, "Event is not pinned")
			return
		}

		col := cfg.MongoClient.Database(cfg.DBName).Collection("users")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		_, err = col.UpdateOne(ctx,
			bson.M{"_id": current.ID},
			bson.M{"$pull": bson.M{"pinned_events": eventID}})
		if err != nil {
			utils.Error(c, http.StatusInternalServerError, "Could not unpin event")
			return
		}

		utils.Respond(c, http.StatusOK, gin.H{"event_id": eventID.Hex()}, "Event unpinned successfully")
	}
}

// ---------------- LIST PINNED ----------------
func AllPinnedEvents(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		current, ok := middleware.CurrentUser(c)
		if !ok {
			utils.Error(c, http.StatusUnauthorized, "Please login to continue")
			return
		}

		if len(current.PinnedEvents) == 0 {
			utils.Error(c, http.StatusNotFound, "No pinned events found")
			return
		}

		col := cfg.MongoClient.Database(cfg.DBName).Collection("events")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		cursor, err := col.Find(ctx, bson.M{"_id": bson.M{"$in": current.PinnedEvents}})
		if err != nil {
			utils.Error(c, http.StatusInternalServerError, "Could not fetch pinned events")
			return
		}

		var events []models.Event
		if err := cursor.All(ctx, &events); err != nil {
			utils.Error(c, http.StatusInternalServerError, "Could not decode pinned events")
			return
		}

		if len(events) == 0 {
			utils.Error(c, http.StatusNotFound, "No pinned events found")
			return
		}

		refreshEventStatuses(ctx, col, events, time.Now())

		utils.Respond(c, http.StatusOK, events, "Pinned events fetched successfully")
	}
}

// ---------------- LIKE / UNLIKE ----------------
func LikeEvent(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		current, ok := middleware.CurrentUser(c)
		if !ok {
			utils.Error(c, http.StatusUnauthorized, "Please login to continue")
			return
		}

		eventID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			utils.Error(c, http.StatusBadRequest, "Invalid event ID")
			return
		}

		col := cfg.MongoClient.Database(cfg.DBName).Collection("events")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		var event models.Event
		if err := col.FindOne(ctx, bson.M{"_id": eventID}).Decode(&event); err != nil {
			utils.Error(c, http.StatusNotFound, "Event not found")
			return
		}

		// Single endpoint toggles membership: liking twice returns to the
		// unliked state.
		if event.IsLikedBy(current.ID) {
			_, err = col.UpdateOne(ctx, bson.M{"_id": eventID},
				bson.M{"$pull": bson.M{"likes": current.ID}})
			if err != nil {
				utils.Error(c, http.StatusInternalServerError, "Could not unlike event")
				return
			}
			utils.Respond(c, http.StatusOK, gin.H{"liked": false}, "Event unliked")
			return
		}

		_, err = col.UpdateOne(ctx, bson.M{"_id": eventID},
			bson.M{"$addToSet": bson.M{"likes": current.ID}})
		if err != nil {
			utils.Error(c, http.StatusInternalServerError, "Could not like event")
			return
		}

		utils.Respond(c, http.StatusOK, gin.H{"liked": true}, "Event liked")
	}
}
