package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	config "github.com/eventhive/eventhive-go/config"
	models "github.com/eventhive/eventhive-go/models"
	utils "github.com/eventhive/eventhive-go/utils"
)

const userContextKey = "user"

// AuthMiddleware resolves the session cookie to a user record and attaches it
// to the request context. The hashed password never leaves the database.
func AuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, err := c.Cookie(utils.AuthCookieName)
		if err != nil || tokenString == "" {
			utils.Error(c, http.StatusUnauthorized, "Unauthorised request: no token provided")
			return
		}

		claims, err := utils.ParseToken(cfg.JWTSecret, tokenString)
		if err != nil {
			utils.Error(c, http.StatusUnauthorized, "Invalid or expired access token")
			return
		}

		userID, err := primitive.ObjectIDFromHex(claims.Subject)
		if err != nil {
			utils.Error(c, http.StatusUnauthorized, "Invalid access token")
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		var user models.User
		err = cfg.MongoClient.Database(cfg.DBName).
			Collection("users").
			FindOne(ctx, bson.M{"_id": userID},
				options.FindOne().SetProjection(bson.M{"password": 0})).
			Decode(&user)
		if err != nil {
			utils.Error(c, http.StatusUnauthorized, "Invalid access token")
			return
		}

		c.Set(userContextKey, &user)
		c.Set("user_id", user.ID.Hex())
		c.Set("role", user.Role)
		c.Next()
	}
}

// CurrentUser returns the identity attached by AuthMiddleware.
func CurrentUser(c *gin.Context) (*models.User, bool) {
	v, ok := c.Get(userContextKey)
	if !ok {
		return nil, false
	}
	user, ok := v.(*models.User)
	return user, ok
}
