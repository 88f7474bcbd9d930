package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"

	models "github.com/eventhive/eventhive-go/models"
)

var userFixture = models.User{
	ID:       primitive.NewObjectID(),
	UserName: "jordan",
	Email:    "jordan@example.com",
	Role:     models.RoleUser,
}

func roleTestRouter(identity *models.User, allowed ...string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	attach := func(c *gin.Context) {
		if identity != nil {
			c.Set(userContextKey, identity)
		}
		c.Next()
	}
	r.GET("/guarded", attach, RequireRoles(allowed...), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r
}

func TestRequireRolesAllows(t *testing.T) {
	user := userFixture
	r := roleTestRouter(&user, models.RoleUser)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/guarded", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireRolesForbidsWrongRole(t *testing.T) {
	user := userFixture
	r := roleTestRouter(&user, models.RoleOwner)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/guarded", nil))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRequireRolesNoIdentity(t *testing.T) {
	r := roleTestRouter(nil, models.RoleUser)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/guarded", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireRolesMultipleAllowed(t *testing.T) {
	owner := models.User{ID: primitive.NewObjectID(), Role: models.RoleOwner}
	r := roleTestRouter(&owner, models.RoleUser, models.RoleOwner)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/guarded", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}
