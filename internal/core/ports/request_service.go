package ports

import (
	"context"

	"github.com/allnik/property-service/internal/core/domain"
)

// CreateRequestInput carries a new property request. Area is a pointer so a
// missing value can be told apart from zero.
type CreateRequestInput struct {
	UserID         string
	Type           string
	Area           *int
	Location       string
	Bedrooms       *int
	Style          *string
	Budget         *int
	Payment        *string
	Description    *string
	IdempotencyKey string
}

// RequestService defines owner-scoped operations on property requests.
type RequestService interface {
	Create(ctx context.Context, input CreateRequestInput) error
	List(ctx context.Context, userID string) ([]*domain.PropertyRequest, error)
}
