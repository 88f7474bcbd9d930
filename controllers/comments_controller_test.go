package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	config "github.com/eventhive/eventhive-go/config"
	models "github.com/eventhive/eventhive-go/models"
	utils "github.com/eventhive/eventhive-go/utils"
)

func commentRouter(identity *models.User) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	attach := func(c *gin.Context) {
		if identity != nil {
			c.Set("user", identity)
		}
		c.Next()
	}
	cfg := &config.Config{JWTSecret: "secret"}
	r.POST("/userevent/addcomment/:id", attach, AddComment(cfg))
	return r
}

func TestAddCommentEmptyText(t *testing.T) {
	user := models.User{ID: primitive.NewObjectID(), Role: models.RoleUser}
	r := commentRouter(&user)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost,
		"/userevent/addcomment/"+primitive.NewObjectID().Hex(),
		strings.NewReader(`{"text": "   "}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var body utils.APIResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Comment text is required", body.Message)
}

func TestAddCommentInvalidEventID(t *testing.T) {
	user := models.User{ID: primitive.NewObjectID(), Role: models.RoleUser}
	r := commentRouter(&user)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost,
		"/userevent/addcomment/not-an-id",
		strings.NewReader(`{"text": "great event"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAddCommentNoIdentity(t *testing.T) {
	r := commentRouter(nil)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost,
		"/userevent/addcomment/"+primitive.NewObjectID().Hex(),
		strings.NewReader(`{"text": "great event"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
