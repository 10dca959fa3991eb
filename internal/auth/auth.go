package auth

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// Staff is the authenticated staff reference supplied by the identity
// provider. Invoices store it at creation and never mutate it.
type Staff struct {
	Username string `json:"username"`
	Name     string `json:"name"`
}

type Config struct {
	SecretKey string
	Expiry    time.Duration
}

const staffContextKey = "staff"

// GenerateToken signs a staff token. Kept alongside the middleware so the
// identity provider and this service share one claim layout.
func GenerateToken(staff Staff, cfg Config) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"username": staff.Username,
		"name":     staff.Name,
		"exp":      now.Add(cfg.Expiry).Unix(),
		"iat":      now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(cfg.SecretKey))
}

// ParseToken validates the token and returns the staff reference
func ParseToken(tokenString string, cfg Config) (*Staff, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(cfg.SecretKey), nil
	})
	if err != nil || !token.Valid {
		return nil, errors.New("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("invalid claims")
	}

	username, _ := claims["username"].(string)
	name, _ := claims["name"].(string)
	if username == "" {
		return nil, errors.New("invalid claims")
	}

	return &Staff{Username: username, Name: name}, nil
}

// RequireStaff rejects requests without a valid bearer token and exposes
// the staff reference to downstream handlers.
func RequireStaff(cfg Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		tokenString, found := strings.CutPrefix(header, "Bearer ")
		if !found || tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}

		staff, err := ParseToken(tokenString, cfg)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		c.Set(staffContextKey, *staff)
		c.Next()
	}
}

// CurrentStaff returns the staff reference set by RequireStaff.
func CurrentStaff(c *gin.Context) Staff {
	if v, ok := c.Get(staffContextKey); ok {
		if staff, ok := v.(Staff); ok {
			return staff
		}
	}
	return Staff{}
}
