package ports

import (
	"context"

	"github.com/allnik/property-service/internal/core/domain"
)

// UserRepository is the credential store.
//
// Implementations report a duplicate email or username on insert as
// domain.ErrUserExists and a missing account as domain.ErrUserNotFound.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
}
