package middleware

import (
	"net/http"
	"net/http/httptest"
	"storefront-backoffice/internal/config"
	"storefront-backoffice/internal/model"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "s3cret"

func signToken(t *testing.T, secret string, claims EditorClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func runAuth(t *testing.T, cfg config.Auth, header string) (*httptest.ResponseRecorder, *model.Editor, error) {
	t.Helper()
	logger, _ := logtest.NewNullLogger()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/orders/1", nil)
	if header != "" {
		req.Header.Set(echo.HeaderAuthorization, header)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var seen *model.Editor
	err := AuthMiddleware(cfg, logger)(func(c echo.Context) error {
		editor, ok := EditorFrom(c)
		require.True(t, ok)
		seen = &editor
		return c.NoContent(http.StatusNoContent)
	})(c)

	return rec, seen, err
}

func requireStatus(t *testing.T, err error, status int) {
	t.Helper()
	var httpErr *echo.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, status, httpErr.Code)
}

func TestAuthMiddleware(t *testing.T) {
	cfg := config.Auth{JWTSecret: testSecret, Issuer: "backoffice"}
	valid := EditorClaims{
		Name: "Admin Toko",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "42",
			Issuer:    "backoffice",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}

	t.Run("valid token sets editor", func(t *testing.T) {
		rec, editor, err := runAuth(t, cfg, "Bearer "+signToken(t, testSecret, valid))
		require.NoError(t, err)
		assert.Equal(t, http.StatusNoContent, rec.Code)
		require.NotNil(t, editor)
		assert.Equal(t, model.Editor{ID: 42, Name: "Admin Toko"}, *editor)
	})

	t.Run("scheme is case insensitive", func(t *testing.T) {
		_, editor, err := runAuth(t, cfg, "bearer "+signToken(t, testSecret, valid))
		require.NoError(t, err)
		require.NotNil(t, editor)
	})

	t.Run("missing header", func(t *testing.T) {
		_, editor, err := runAuth(t, cfg, "")
		requireStatus(t, err, http.StatusUnauthorized)
		assert.Nil(t, editor)
	})

	t.Run("wrong secret", func(t *testing.T) {
		_, _, err := runAuth(t, cfg, "Bearer "+signToken(t, "other", valid))
		requireStatus(t, err, http.StatusUnauthorized)
	})

	t.Run("expired", func(t *testing.T) {
		claims := valid
		claims.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Minute))
		_, _, err := runAuth(t, cfg, "Bearer "+signToken(t, testSecret, claims))
		requireStatus(t, err, http.StatusUnauthorized)
	})

	t.Run("wrong issuer", func(t *testing.T) {
		claims := valid
		claims.Issuer = "storefront"
		_, _, err := runAuth(t, cfg, "Bearer "+signToken(t, testSecret, claims))
		requireStatus(t, err, http.StatusUnauthorized)
	})

	t.Run("subject is not a user id", func(t *testing.T) {
		claims := valid
		claims.Subject = "admin"
		_, _, err := runAuth(t, cfg, "Bearer "+signToken(t, testSecret, claims))
		requireStatus(t, err, http.StatusUnauthorized)
	})
}

func TestExtractBearerToken(t *testing.T) {
	tests := []struct {
		header string
		token  string
		ok     bool
	}{
		{"Bearer abc", "abc", true},
		{"  Bearer   abc  ", "abc", true},
		{"Basic abc", "", false},
		{"Bearer", "", false},
		{"Bearer   ", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		token, ok := extractBearerToken(tt.header)
		assert.Equal(t, tt.ok, ok, tt.header)
		assert.Equal(t, tt.token, token, tt.header)
	}
}
