package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() Config {
	return Config{SecretKey: "test-secret", Expiry: time.Hour}
}

func TestTokenRoundTrip(t *testing.T) {
	cfg := testConfig()
	staff := Staff{Username: "cashier1", Name: "Pat Cashier"}

	token, err := GenerateToken(staff, cfg)
	require.NoError(t, err)

	parsed, err := ParseToken(token, cfg)
	require.NoError(t, err)
	assert.Equal(t, staff.Username, parsed.Username)
	assert.Equal(t, staff.Name, parsed.Name)
}

func TestParseToken_WrongSecret(t *testing.T) {
	token, err := GenerateToken(Staff{Username: "cashier1"}, testConfig())
	require.NoError(t, err)

	_, err = ParseToken(token, Config{SecretKey: "other-secret", Expiry: time.Hour})
	assert.Error(t, err)
}

func TestRequireStaff(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cfg := testConfig()

	r := gin.New()
	r.GET("/whoami", RequireStaff(cfg), func(c *gin.Context) {
		c.JSON(http.StatusOK, CurrentStaff(c))
	})

	t.Run("missing token rejected", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("garbage token rejected", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		req.Header.Set("Authorization", "Bearer not-a-token")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("valid token passes through", func(t *testing.T) {
		token, err := GenerateToken(Staff{Username: "cashier1", Name: "Pat Cashier"}, cfg)
		require.NoError(t, err)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "cashier1")
	})
}
