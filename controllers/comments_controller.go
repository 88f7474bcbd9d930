package controllers

import (
	"context"
	"net/http"
	"strings"
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

// ---------------- CREATE ----------------
func AddComment(cfg *config.Config) gin.HandlerFunc {
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

		var input struct {
			Text string `json:"text"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			utils.Error(c, http.StatusBadRequest, err.Error())
			return
		}

		text := strings.TrimSpace(input.Text)
		if text == "" {
			utils.Error(c, http.StatusBadRequest, "Comment text is required")
			return
		}

		db := cfg.MongoClient.Database(cfg.DBName)
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		// The parent event must exist.
		var event models.Event
		if err := db.Collection("events").FindOne(ctx, bson.M{"_id": eventID}).Decode(&event); err != nil {
			utils.Error(c, http.StatusNotFound, "Event not found")
			return
		}

		now := time.Now()
		comment := models.Comment{
			ID:        primitive.NewObjectID(),
			EventID:   eventID,
			UserID:    current.ID,
			Text:      text,
			Edited:    false,
			CreatedAt: now,
			UpdatedAt: now,
		}

		if _, err := db.Collection("comments").InsertOne(ctx, comment); err != nil {
			utils.Error(c, http.StatusInternalServerError, "Could not add comment")
			return
		}

		utils.Respond(c, http.StatusCreated, comment, "Comment added successfully")
	}
}

// ---------------- LIST FOR EVENT ----------------
func EventComments(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		eventID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			utils.Error(c, http.StatusBadRequest, "Invalid event ID")
			return
		}

		col := cfg.MongoClient.Database(cfg.DBName).Collection("comments")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		cursor, err := col.Find(ctx, bson.M{"event_id": eventID},
			options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
		if err != nil {
			utils.Error(c, http.StatusInternalServerError, "Could not fetch comments")
			return
		}

		comments := []models.Comment{}
		if err := cursor.All(ctx, &comments); err != nil {
			utils.Error(c, http.StatusInternalServerError, "Could not decode comments")
			return
		}

		utils.Respond(c, http.StatusOK, comments, "Comments fetched successfully")
	}
}

// ---------------- EDIT ----------------
func EditComment(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		current, ok := middleware.CurrentUser(c)
		if !ok {
			utils.Error(c, http.StatusUnauthorized, "Please login to continue")
			return
		}

		commentID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			utils.Error(c, http.StatusBadRequest, "Invalid comment ID")
			return
		}

		var input struct {
			Text string `json:"text"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			utils.Error(c, http.StatusBadRequest, err.Error())
			return
		}

		text := strings.TrimSpace(input.Text)
		if text == "" {
			utils.Error(c, http.StatusBadRequest, "Comment text is required")
			return
		}

		col := cfg.MongoClient.Database(cfg.DBName).Collection("comments")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		var comment models.Comment
		if err := col.FindOne(ctx, bson.M{"_id": commentID}).Decode(&comment); err != nil {
			utils.Error(c, http.StatusNotFound, "Comment not found")
			return
		}

		if comment.UserID != current.ID {
			utils.Error(c, http.StatusForbidden, "You can only edit your own comments")
			return
		}

		var updated models.Comment
		err = col.FindOneAndUpdate(ctx,
			bson.M{"_id": commentID},
			bson.M{"$set": bson.M{
				"text":       text,
				"edited":     true,
				"updated_at": time.Now(),
			}},
			options.FindOneAndUpdate().SetReturnDocument(options.After),
		).Decode(&updated)
		if err != nil {
			utils.Error(c, http.StatusInternalServerError, "Could not update comment")
			return
		}

		utils.Respond(c, http.StatusOK, updated, "Comment updated successfully")
	}
}

// ---------------- DELETE ----------------
func DeleteComment(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		current, ok := middleware.CurrentUser(c)
		if !ok {
			utils.Error(c, http.StatusUnauthorized, "Please login to continue")
			return
		}

		commentID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			utils.Error(c, http.StatusBadRequest, "Invalid comment ID")
			return
		}

		col := cfg.MongoClient.Database(cfg.DBName).Collection("comments")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		var comment models.Comment
		if err := col.FindOne(ctx, bson.M{"_id": commentID}).Decode(&comment); err != nil {
			utils.Error(c, http.StatusNotFound, "Comment not found")
			return
		}

		if comment.UserID != current.ID {
			utils.Error(c, http.StatusForbidden, "You can only delete your own comments")
			return
		}

		if _, err := col.DeleteOne(ctx, bson.M{"_id": commentID}); err != nil {
			utils.Error(c, http.StatusInternalServerError, "Could not delete comment")
			return
		}

		utils.Respond(c, http.StatusOK, nil, "Comment deleted successfully")
	}
}
