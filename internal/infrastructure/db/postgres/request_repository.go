package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/allnik/property-service/internal/core/domain"
)

const listRequestsQuery = `
	SELECT id, user_id, type, area, location, bedrooms, style, budget,
		payment, description, status, created_at
	FROM requests
	WHERE user_id = $1
	ORDER BY created_at, id`

// RequestRepository is the relational request store.
type RequestRepository struct {
	pool *pgxpool.Pool
}

func NewRequestRepository(pool *pgxpool.Pool) *RequestRepository {
	return &RequestRepository{pool: pool}
}

// Create inserts p and sets p.ID. A missing owner violates the foreign key
// and is reported as domain.ErrUserNotFound.
func (r *RequestRepository) Create(ctx context.Context, p *domain.PropertyRequest) error {
	owner, ok := parseID(p.UserID)
	if !ok {
		return domain.ErrUserNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var id int64
	err := r.pool.QueryRow(ctx, `
		INSERT INTO requests (user_id, type, area, location, bedrooms, style, budget,
			payment, description, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id`,
		owner, p.Type, p.Area, p.Location, p.Bedrooms, p.Style, p.Budget,
		p.Payment, p.Description, p.Status, p.CreatedAt,
	).Scan(&id)
	if err != nil {
		if mapped := translateError(err); mapped != err {
			return mapped
		}
		return fmt.Errorf("insert request: %w", err)
	}

	p.ID = formatID(id)
	return nil
}

// ListByUser returns the owner's requests ordered by created_at, then id.
func (r *RequestRepository) ListByUser(ctx context.Context, userID string) ([]*domain.PropertyRequest, error) {
	owner, ok := parseID(userID)
	if !ok {
		return []*domain.PropertyRequest{}, nil
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	rows, err := r.pool.Query(ctx, listRequestsQuery, owner)
	if err != nil {
		return nil, fmt.Errorf("list requests: %w", err)
	}
	defer rows.Close()

	items := []*domain.PropertyRequest{}
	for rows.Next() {
		var (
			p           domain.PropertyRequest
			id, ownerID int64
		)
		if err := rows.Scan(&id, &ownerID, &p.Type, &p.Area, &p.Location, &p.Bedrooms,
			&p.Style, &p.Budget, &p.Payment, &p.Description, &p.Status, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan request: %w", err)
		}
		p.ID = formatID(id)
		p.UserID = formatID(ownerID)
		items = append(items, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list requests: %w", err)
	}
	return items, nil
}
