package utils

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	models "github.com/eventhive/eventhive-go/models"
)

// AuthCookieName is the HTTP-only cookie carrying the session token.
const AuthCookieName = "token"

// AuthClaims are the session token claims: subject id, email and username.
type AuthClaims struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// CreateToken signs a session token for the user with the given expiry.
func CreateToken(secret string, expiry time.Duration, user *models.User) (string, error) {
	now := time.Now()
	claims := AuthClaims{
		Email:    user.Email,
		Username: user.UserName,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.Hex(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(expiry)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// ParseToken verifies signature and expiry and returns the claims.
func ParseToken(secret, tokenString string) (*AuthClaims, error) {
	claims := &AuthClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	return claims, nil
}

// SetAuthCookie attaches the session token as an HTTP-only cookie.
func SetAuthCookie(c *gin.Context, token string, maxAge time.Duration) {
	c.SetCookie(AuthCookieName, token, int(maxAge.Seconds()), "/", "", true, true)
}

// ClearAuthCookie invalidates the session cookie.
func ClearAuthCookie(c *gin.Context) {
	c.SetCookie(AuthCookieName, "", -1, "/", "", true, true)
}
