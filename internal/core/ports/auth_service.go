package ports

import (
	"context"

	"github.com/allnik/property-service/internal/core/domain"
)

// RegisterInput carries the registration payload. Password is clear text.
type RegisterInput struct {
	FullName   string
	Email      string
	Username   string
	Password   string
	City       string
	Region     string
	Expertise  string
	WorkRegion string
	Role       string
}

type AuthService interface {
	Register(ctx context.Context, input RegisterInput) error
	// Login returns a signed session token.
	Login(ctx context.Context, email, password string) (string, error)
	Profile(ctx context.Context, userID string) (*domain.User, error)
}
