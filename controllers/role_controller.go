package controllers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	config "github.com/eventhive/eventhive-go/config"
	middleware "github.com/eventhive/eventhive-go/middleware"
	models "github.com/eventhive/eventhive-go/models"
	utils "github.com/eventhive/eventhive-go/utils"
)

// ---------------- USER -> OWNER ----------------
func OwnerRoleSwitch(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		current, ok := middleware.CurrentUser(c)
		if !ok {
			utils.Error(c, http.StatusUnauthorized, "Please login to continue")
			return
		}

		if current.Role == models.RoleOwner || current.OwnerCode != nil {
			utils.Error(c, http.StatusBadRequest, "You are already an owner")
			return
		}

		rawCode, err := utils.GenerateNumericCode(6)
		if err != nil {
			utils.Error(c, http.StatusInternalServerError, "Could not generate owner code")
			return
		}
		hashedCode, err := utils.HashPassword(rawCode)
		if err != nil {
			utils.Error(c, http.StatusInternalServerError, "Could not generate owner code")
			return
		}

		col := cfg.MongoClient.Database(cfg.DBName).Collection("users")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		var updated models.User
		err = col.FindOneAndUpdate(ctx,
			bson.M{"_id": current.ID},
			bson.M{"$set": bson.M{
				"role":       models.RoleOwner,
				"owner_code": hashedCode,
				"updated_at": time.Now(),
			}},
			options.FindOneAndUpdate().
				SetReturnDocument(options.After).
				SetProjection(bson.M{"password": 0}),
		).Decode(&updated)
		if err != nil {
			utils.Error(c, http.StatusInternalServerError, "Could not switch role")
			return
		}

		// Notification emails are best-effort: a mail outage must not undo the
		// role change.
		if cfg.AdminEmail != "" {
			if err := utils.SendEmail(cfg.AdminEmail, "Admin", "Ownership Request",
				fmt.Sprintf("%s has requested to become an owner.", updated.Email)); err != nil {
				log.Warn().Err(err).Msg("admin notification failed")
			}
		}
		if err := utils.SendEmail(updated.Email, updated.UserName, "Ownership Approval Code",
			fmt.Sprintf("Hi %s, your ownership code is: %s", updated.UserName, rawCode)); err != nil {
			log.Warn().Err(err).Str("user_id", updated.ID.Hex()).Msg("owner code email failed")
		}

		// Force re-authentication with the new role.
		utils.ClearAuthCookie(c)

		utils.Respond(c, http.StatusOK, gin.H{"user": updated},
			"Ownership activated successfully. Please log in again.")
	}
}

// ---------------- OWNER -> USER ----------------
func UserRoleSwitch(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		current, ok := middleware.CurrentUser(c)
		if !ok {
			utils.Error(c, http.StatusUnauthorized, "Please login to continue")
			return
		}

		if current.Role == models.RoleUser || current.OwnerCode == nil {
			utils.Error(c, http.StatusBadRequest, "You are already a normal user")
			return
		}

		col := cfg.MongoClient.Database(cfg.DBName).Collection("users")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		var updated models.User
		err := col.FindOneAndUpdate(ctx,
			bson.M{"_id": current.ID},
			bson.M{"$set": bson.M{
				"role":       models.RoleUser,
				"owner_code": nil,
				"updated_at": time.Now(),
			}},
			options.FindOneAndUpdate().
				SetReturnDocument(options.After).
				SetProjection(bson.M{"password": 0}),
		).Decode(&updated)
		if err != nil {
			utils.Error(c, http.StatusInternalServerError, "Could not switch role")
			return
		}

		if cfg.AdminEmail != "" {
			if err := utils.SendEmail(cfg.AdminEmail, "Admin", "Normal User Request",
				fmt.Sprintf("%s has requested to become a normal user.", updated.Email)); err != nil {
				log.Warn().Err(err).Msg("admin notification failed")
			}
		}
		if err := utils.SendEmail(updated.Email, updated.UserName, "Switched to Normal User",
			fmt.Sprintf("Hi %s, your role has been changed to Normal User.", updated.UserName)); err != nil {
			log.Warn().Err(err).Str("user_id", updated.ID.Hex()).Msg("role change email failed")
		}

		utils.ClearAuthCookie(c)

		utils.Respond(c, http.StatusOK, gin.H{"user": updated},
			"Role changed to Normal User. Please log in again.")
	}
}
