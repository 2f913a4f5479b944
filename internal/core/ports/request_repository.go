package ports

import (
	"context"

	"github.com/allnik/property-service/internal/core/domain"
)

// RequestRepository persists property requests.
type RequestRepository interface {
	// Create inserts r and fills in its ID.
	Create(ctx context.Context, r *domain.PropertyRequest) error
	// ListByUser returns every request owned by userID in creation order.
	ListByUser(ctx context.Context, userID string) ([]*domain.PropertyRequest, error)
}
