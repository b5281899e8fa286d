package middleware

import (
	"net/http"
	"storefront-backoffice/internal/config"
	"storefront-backoffice/internal/model"
	"strconv"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

const editorKey = "editor"

// EditorClaims is the payload of a back-office bearer token. Subject holds
// the numeric user id.
type EditorClaims struct {
	Name string `json:"name"`
	jwt.RegisteredClaims
}

// AuthMiddleware verifies the HS256 bearer token and stores the editor in
// the echo context.
func AuthMiddleware(cfg config.Auth, log logrus.FieldLogger) echo.MiddlewareFunc {
	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
	if cfg.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(cfg.Issuer))
	}
	parser := jwt.NewParser(opts...)
	secret := []byte(cfg.JWTSecret)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			tokenStr, ok := extractBearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing bearer token")
			}

			claims := &EditorClaims{}
			_, err := parser.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (any, error) {
				return secret, nil
			})
			if err != nil {
				log.WithError(err).Warn("editor token rejected")
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid bearer token")
			}

			userID, err := strconv.ParseUint(claims.Subject, 10, 64)
			if err != nil || userID == 0 {
				log.WithField("sub", claims.Subject).Warn("editor token without user id")
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid bearer token")
			}

			c.Set(editorKey, model.Editor{ID: uint(userID), Name: claims.Name})
			return next(c)
		}
	}
}

// EditorFrom returns the editor stored by AuthMiddleware.
func EditorFrom(c echo.Context) (model.Editor, bool) {
	editor, ok := c.Get(editorKey).(model.Editor)
	return editor, ok
}

func extractBearerToken(header string) (string, bool) {
	header = strings.TrimSpace(header)
	if header == "" {
		return "", false
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}

	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", false
	}

	return token, true
}
