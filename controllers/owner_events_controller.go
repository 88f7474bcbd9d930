package controllers

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	config "github.com/eventhive/eventhive-go/config"
	middleware "github.com/eventhive/eventhive-go/middleware"
	models "github.com/eventhive/eventhive-go/models"
	utils "github.com/eventhive/eventhive-go/utils"
)

type eventInput struct {
	Title                string `form:"title"`
	Description          string `form:"description"`
	Category             string `form:"category"`
	Organizer            string `form:"organizer"`
	HostedBy             string `form:"hostedBy"`
	StartDate            string `form:"startDate"`
	EndDate              string `form:"endDate"`
	RegistrationDeadline string `form:"registrationDeadline"`
	Time                 string `form:"time"`
	Mode                 string `form:"mode"`
	Venue                string `form:"venue"`
	RegistrationLink     string `form:"registrationLink"`
	Status               string `form:"status"`
	ContactInfo          string `form:"contactInfo"`
	Rules                string `form:"rules"`
}

// ---------------- CREATE ----------------
func AddEvent(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		current, ok := middleware.CurrentUser(c)
		if !ok {
			utils.Error(c, http.StatusUnauthorized, "Please login to continue")
			return
		}

		var input eventInput
		if err := c.ShouldBind(&input); err != nil {
			utils.Error(c, http.StatusBadRequest, err.Error())
			return
		}

		// --- Required fields ---
		required := []struct {
			name  string
			value string
		}{
			{"title", input.Title},
			{"description", input.Description},
			{"category", input.Category},
			{"organizer", input.Organizer},
			{"hostedBy", input.HostedBy},
			{"startDate", input.StartDate},
			{"endDate", input.EndDate},
			{"registrationDeadline", input.RegistrationDeadline},
			{"mode", input.Mode},
			{"registrationLink", input.RegistrationLink},
		}
		for _, field := range required {
			if strings.TrimSpace(field.value) == "" {
				utils.Error(c, http.StatusBadRequest, "Missing required field: "+field.name)
				return
			}
		}

		// --- Parse and validate dates ---
		start, err := parseEventDate(input.StartDate)
		if err != nil {
			utils.Error(c, http.StatusBadRequest, "Invalid date format")
			return
		}
		end, err := parseEventDate(input.EndDate)
		if err != nil {
			utils.Error(c, http.StatusBadRequest, "Invalid date format")
			return
		}
		regDeadline, err := parseEventDate(input.RegistrationDeadline)
		if err != nil {
			utils.Error(c, http.StatusBadRequest, "Invalid date format")
			return
		}
		if err := validateDateOrder(regDeadline, start, end); err != nil {
			utils.Error(c, http.StatusBadRequest, err.Error())
			return
		}

		if !models.ValidMode(input.Mode) {
			utils.Error(c, http.StatusBadRequest, "Mode must be Online, Offline, or Hybrid")
			return
		}

		// --- Decode structured sub-fields ---
		contactInfo, err := decodeContactInfo(input.ContactInfo)
		if err != nil {
			utils.Error(c, http.StatusBadRequest, err.Error())
			return
		}
		if contactInfo.Phone == "" {
			utils.Error(c, http.StatusBadRequest, "Contact phone number is required")
			return
		}
		if err := utils.VerifyPhoneNumber(contactInfo.Phone); err != nil {
			if errors.Is(err, utils.ErrInvalidPhoneNumber) {
				utils.Error(c, http.StatusBadRequest, "Enter a valid mobile number")
			} else {
				utils.Error(c, http.StatusInternalServerError, "Failed to validate phone number")
			}
			return
		}

		rules, err := decodeRules(input.Rules)
		if err != nil {
			utils.Error(c, http.StatusBadRequest, err.Error())
			return
		}

		// --- Optional banner upload ---
		bannerURL := ""
		if fileHeader, ferr := c.FormFile("bannerImage"); ferr == nil {
			file, err := fileHeader.Open()
			if err != nil {
				utils.Error(c, http.StatusInternalServerError, "Failed to open banner image")
				return
			}
			bannerURL, err = utils.UploadBannerImage(file, fileHeader)
			file.Close()
			if err != nil {
				utils.Error(c, http.StatusInternalServerError, "Banner upload failed")
				return
			}
		}

		venue := input.Venue
		if venue == "" {
			venue = "Not specified"
		}

		// --- Save event ---
		now := time.Now()
		event := models.Event{
			ID:                   primitive.NewObjectID(),
			OwnerID:              current.ID,
			Title:                input.Title,
			Description:          input.Description,
			Category:             input.Category,
			Organizer:            input.Organizer,
			HostedBy:             input.HostedBy,
			StartDate:            start,
			EndDate:              end,
			RegistrationDeadline: regDeadline,
			Time:                 input.Time,
			Mode:                 input.Mode,
			Venue:                venue,
			RegistrationLink:     input.RegistrationLink,
			BannerImage:          bannerURL,
			Status:               models.StatusUpcoming,
			ContactInfo:          contactInfo,
			Rules:                rules,
			Likes:                []primitive.ObjectID{},
			CreatedAt:            now,
			UpdatedAt:            now,
		}

		db := cfg.MongoClient.Database(cfg.DBName)
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if _, err := db.Collection("events").InsertOne(ctx, event); err != nil {
			utils.Error(c, http.StatusInternalServerError, "Could not create event")
			return
		}

		// Back-reference on the owner record. Not transactional with the
		// insert above; single-document atomicity is all the store gives us.
		_, err = db.Collection("users").UpdateOne(ctx,
			bson.M{"_id": current.ID},
			bson.M{"$push": bson.M{"created_events": event.ID}})
		if err != nil {
			log.Warn().Err(err).Str("event_id", event.ID.Hex()).Msg("could not update created_events")
		}

		utils.Respond(c, http.StatusCreated, event, "Event added successfully by owner.")
	}
}

// ---------------- UPDATE ----------------
func UpdateEvent(cfg *config.Config) gin.HandlerFunc {
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

		var existing models.Event
		if err := col.FindOne(ctx, bson.M{"_id": eventID}).Decode(&existing); err != nil {
			utils.Error(c, http.StatusNotFound, "Event not found")
			return
		}

		if existing.OwnerID != current.ID {
			utils.Error(c, http.StatusForbidden, "You can only update your own events")
			return
		}

		var input eventInput
		if err := c.ShouldBind(&input); err != nil {
			utils.Error(c, http.StatusBadRequest, err.Error())
			return
		}

		update := bson.M{"updated_at": time.Now()}

		if input.Title != "" {
			update["title"] = input.Title
		}
		if input.Description != "" {
			update["description"] = input.Description
		}
		if input.Category != "" {
			update["category"] = input.Category
		}
		if input.Organizer != "" {
			update["organizer"] = input.Organizer
		}
		if input.HostedBy != "" {
			update["hosted_by"] = input.HostedBy
		}
		if input.Time != "" {
			update["time"] = input.Time
		}
		if input.Venue != "" {
			update["venue"] = input.Venue
		}
		if input.RegistrationLink != "" {
			update["registration_link"] = input.RegistrationLink
		}

		// --- Dates: fields omitted in the request retain prior values, the
		// merged triple must still be ordered ---
		start, end, regDeadline := existing.StartDate, existing.EndDate, existing.RegistrationDeadline
		if input.StartDate != "" {
			if start, err = parseEventDate(input.StartDate); err != nil {
				utils.Error(c, http.StatusBadRequest, "Invalid date format")
				return
			}
			update["start_date"] = start
		}
		if input.EndDate != "" {
			if end, err = parseEventDate(input.EndDate); err != nil {
				utils.Error(c, http.StatusBadRequest, "Invalid date format")
				return
			}
			update["end_date"] = end
		}
		if input.RegistrationDeadline != "" {
			if regDeadline, err = parseEventDate(input.RegistrationDeadline); err != nil {
				utils.Error(c, http.StatusBadRequest, "Invalid date format")
				return
			}
			update["registration_deadline"] = regDeadline
		}
		if err := validateDateOrder(regDeadline, start, end); err != nil {
			utils.Error(c, http.StatusBadRequest, err.Error())
			return
		}

		if input.Mode != "" {
			if !models.ValidMode(input.Mode) {
				utils.Error(c, http.StatusBadRequest, "Mode must be Online, Offline, or Hybrid")
				return
			}
			update["mode"] = input.Mode
		}

		if input.Status != "" {
			switch input.Status {
			case models.StatusUpcoming, models.StatusOngoing, models.StatusCompleted, models.StatusCancelled:
				update["status"] = input.Status
			default:
				utils.Error(c, http.StatusBadRequest, "Invalid status")
				return
			}
		}

		if input.ContactInfo != "" {
			contactInfo, err := decodeContactInfo(input.ContactInfo)
			if err != nil {
				utils.Error(c, http.StatusBadRequest, err.Error())
				return
			}
			// Sub-fields omitted in the request retain prior values, same
			// contract as the top-level fields above. An event never loses
			// its contact phone through an update.
			merged := mergeContactInfo(existing.ContactInfo, contactInfo)
			if merged.Phone == "" {
				utils.Error(c, http.StatusBadRequest, "Contact phone number is required")
				return
			}
			// Re-verify only when the contact phone actually changed.
			if merged.Phone != existing.ContactInfo.Phone {
				if err := utils.VerifyPhoneNumber(merged.Phone); err != nil {
					if errors.Is(err, utils.ErrInvalidPhoneNumber) {
						utils.Error(c, http.StatusBadRequest, "Enter a valid mobile number")
					} else {
						utils.Error(c, http.StatusInternalServerError, "Failed to validate phone number")
					}
					return
				}
			}
			update["contact_info"] = merged
		}

		if input.Rules != "" {
			rules, err := decodeRules(input.Rules)
			if err != nil {
				utils.Error(c, http.StatusBadRequest, err.Error())
				return
			}
			update["rules"] = rules
		}

		// --- Optional new banner ---
		if fileHeader, ferr := c.FormFile("bannerImage"); ferr == nil {
			file, err := fileHeader.Open()
			if err != nil {
				utils.Error(c, http.StatusInternalServerError, "Failed to open banner image")
				return
			}
			url, err := utils.UploadBannerImage(file, fileHeader)
			file.Close()
			if err != nil {
				utils.Error(c, http.StatusInternalServerError, "Banner upload failed")
				return
			}
			update["banner_image"] = url
		}

		if len(update) == 1 {
			utils.Error(c, http.StatusBadRequest, "No fields to update")
			return
		}

		if _, err := col.UpdateOne(ctx, bson.M{"_id": eventID}, bson.M{"$set": update}); err != nil {
			utils.Error(c, http.StatusInternalServerError, "Could not update event")
			return
		}

		var updated models.Event
		if err := col.FindOne(ctx, bson.M{"_id": eventID}).Decode(&updated); err != nil {
			utils.Error(c, http.StatusInternalServerError, "Failed to retrieve updated event")
			return
		}

		utils.Respond(c, http.StatusOK, updated, "Event updated successfully")
	}
}

// ---------------- DELETE ----------------
func DeleteEvent(cfg *config.Config) gin.HandlerFunc {
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

		if event.OwnerID != current.ID {
			utils.Error(c, http.StatusForbidden, "You can only delete your own events")
			return
		}

		res, err := db.Collection("events").DeleteOne(ctx, bson.M{"_id": eventID})
		if err != nil {
			utils.Error(c, http.StatusInternalServerError, "Could not delete event")
			return
		}
		if res.DeletedCount == 0 {
			utils.Error(c, http.StatusNotFound, "Event not found")
			return
		}

		_, err = db.Collection("users").UpdateOne(ctx,
			bson.M{"_id": current.ID},
			bson.M{"$pull": bson.M{"created_events": eventID}})
		if err != nil {
			log.Warn().Err(err).Str("event_id", eventID.Hex()).Msg("could not update created_events")
		}

		if event.BannerImage != "" {
			if err := utils.DeleteFromCloudinary(event.BannerImage); err != nil {
				log.Warn().Err(err).Str("event_id", eventID.Hex()).Msg("banner cleanup failed")
			}
		}

		utils.Respond(c, http.StatusOK, nil, "Event deleted successfully")
	}
}

// ---------------- LIST ----------------
func ListOwnerEvents(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		current, ok := middleware.CurrentUser(c)
		if !ok {
			utils.Error(c, http.StatusUnauthorized, "Please login to continue")
			return
		}

		col := cfg.MongoClient.Database(cfg.DBName).Collection("events")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		cursor, err := col.Find(ctx, bson.M{"owner_id": current.ID},
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
			utils.Error(c, http.StatusNotFound, "No events found")
			return
		}

		refreshEventStatuses(ctx, col, events, time.Now())

		// --- Conditional read headers from the most recent update ---
		latest := events[0]
		for _, ev := range events {
			if ev.UpdatedAt.After(latest.UpdatedAt) {
				latest = ev
			}
		}
		etag := utils.GenerateETag(latest.ID, latest.UpdatedAt)
		if match := c.GetHeader("If-None-Match"); match != "" && match == etag {
			c.Status(http.StatusNotModified)
			return
		}
		c.Header("ETag", etag)
		c.Header("Last-Modified", latest.UpdatedAt.UTC().Format(http.TimeFormat))

		utils.Respond(c, http.StatusOK, events, "Events fetched successfully")
	}
}

// ---------------- GET ----------------
func GetOwnerEvent(cfg *config.Config) gin.HandlerFunc {
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
		err = col.FindOne(ctx, bson.M{"_id": eventID, "owner_id": current.ID}).Decode(&event)
		if err != nil {
			utils.Error(c, http.StatusNotFound, "Event not found or not owned")
			return
		}

		refreshEventStatus(ctx, col, &event, time.Now())

		etag := utils.GenerateETag(event.ID, event.UpdatedAt)
		if match := c.GetHeader("If-None-Match"); match != "" && match == etag {
			c.Status(http.StatusNotModified)
			return
		}
		c.Header("ETag", etag)

		utils.Respond(c, http.StatusOK, event, "Event details fetched successfully")
	}
}

// ---------------- FILTER ----------------
func FilterOwnerEvents(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		current, ok := middleware.CurrentUser(c)
		if !ok {
			utils.Error(c, http.StatusUnauthorized, "Please login to continue")
			return
		}

		var q eventFilterQuery
		if err := c.ShouldBindQuery(&q); err != nil {
			utils.Error(c, http.StatusBadRequest, err.Error())
			return
		}

		filter, err := buildEventFilter(q, current.ID)
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
