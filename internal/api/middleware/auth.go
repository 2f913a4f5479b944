package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/allnik/property-service/internal/api/metrics"
	"github.com/allnik/property-service/internal/core/domain"
	"github.com/allnik/property-service/internal/core/ports"
)

// Echo context keys set by Auth.
const (
	ContextUserID = "user_id"
	ContextRole   = "role"
)

// Authenticate resolves the Authorization header value into an identity.
// An empty header is domain.ErrMissingToken; anything the verifier rejects is
// domain.ErrInvalidToken. The header carries the bare token, though a leading
// "Bearer " scheme is accepted.
func Authenticate(verifier ports.TokenVerifier, header string) (*domain.Identity, error) {
	token := strings.TrimSpace(header)
	if token == "" {
		return nil, domain.ErrMissingToken
	}
	if len(token) > 7 && strings.EqualFold(token[:7], "bearer ") {
		token = strings.TrimSpace(token[7:])
	}

	identity, err := verifier.Verify(token)
	if err != nil || identity == nil {
		return nil, domain.ErrInvalidToken
	}
	return identity, nil
}

// Auth guards protected routes and injects the caller's id and role into the
// echo context. It never touches the credential store.
func Auth(verifier ports.TokenVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			identity, err := Authenticate(verifier, c.Request().Header.Get(echo.HeaderAuthorization))
			if err != nil {
				if errors.Is(err, domain.ErrMissingToken) {
					metrics.TokenRejectionsTotal.WithLabelValues("missing").Inc()
					return c.JSON(http.StatusForbidden, map[string]string{"message": "No token provided."})
				}
				metrics.TokenRejectionsTotal.WithLabelValues("invalid").Inc()
				return c.JSON(http.StatusUnauthorized, map[string]string{"message": "Invalid or expired token."})
			}

			c.Set(ContextUserID, identity.UserID)
			c.Set(ContextRole, identity.Role)
			return next(c)
		}
	}
}
