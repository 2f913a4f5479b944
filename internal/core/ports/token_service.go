package ports

import "github.com/allnik/property-service/internal/core/domain"

// TokenVerifier checks a session token. Any failure is domain.ErrInvalidToken.
type TokenVerifier interface {
	Verify(token string) (*domain.Identity, error)
}

// TokenService issues and verifies signed, time-limited session tokens.
type TokenService interface {
	TokenVerifier
	Issue(userID, role string) (string, error)
}
