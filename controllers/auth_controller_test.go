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

	config "github.com/eventhive/eventhive-go/config"
	utils "github.com/eventhive/eventhive-go/utils"
)

func postJSON(r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func signupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	cfg := &config.Config{JWTSecret: "secret"}
	r.POST("/auth/signup", Signup(cfg))
	r.POST("/auth/login", Login(cfg))
	return r
}

func TestSignupPasswordMismatch(t *testing.T) {
	r := signupRouter()

	rec := postJSON(r, "/auth/signup", `{
		"firstName": "Jordan",
		"lastName": "Lee",
		"userName": "jordanlee",
		"email": "jordan@example.com",
		"password": "a",
		"confirm_password": "b"
	}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var body utils.APIResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.False(t, body.Success)
	assert.Equal(t, "Passwords do not match", body.Message)
}

func TestSignupMissingFields(t *testing.T) {
	r := signupRouter()

	rec := postJSON(r, "/auth/signup", `{"email": "jordan@example.com"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var body utils.APIResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "All fields are required", body.Message)
}

func TestSignupMalformedBody(t *testing.T) {
	r := signupRouter()

	rec := postJSON(r, "/auth/signup", `{`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLoginMissingFields(t *testing.T) {
	r := signupRouter()

	rec := postJSON(r, "/auth/login", `{"email": "jordan@example.com"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var body utils.APIResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Contains(t, body.Message, "email, password")
}
