package utils

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRespondEnvelope(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)

	Respond(c, http.StatusCreated, gin.H{"id": "abc"}, "created")

	assert.Equal(t, http.StatusCreated, rec.Code)

	var body APIResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, http.StatusCreated, body.StatusCode)
	assert.Equal(t, "created", body.Message)
	assert.True(t, body.Success)
	assert.NotNil(t, body.Data)
}

func TestErrorEnvelope(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)

	Error(c, http.StatusForbidden, "no access")

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.True(t, c.IsAborted())

	var body APIResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, http.StatusForbidden, body.StatusCode)
	assert.Equal(t, "no access", body.Message)
	assert.False(t, body.Success)
	assert.Nil(t, body.Data)
}
