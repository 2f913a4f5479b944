package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"github.com/allnik/property-service/internal/core/domain"
	"github.com/allnik/property-service/internal/core/ports"
)

// IdempotencyStore abstracts the Idempotency-Key store (Redis). Claim reports
// false when the key was already claimed within the same scope.
type IdempotencyStore interface {
	Claim(ctx context.Context, scope, key string) (bool, error)
	Release(ctx context.Context, scope, key string) error
}

// RequestService implements owner-scoped creation and listing of property
// requests.
type RequestService struct {
	requests    ports.RequestRepository
	users       ports.UserRepository
	idempotency IdempotencyStore
	metrics     ports.MetricsRecorder
	log         zerolog.Logger
}

// NewRequestService builds the service. idempotency may be nil, in which case
// Idempotency-Key values are ignored. A nil recorder disables metrics.
func NewRequestService(
	requests ports.RequestRepository,
	users ports.UserRepository,
	idempotency IdempotencyStore,
	rec ports.MetricsRecorder,
	log zerolog.Logger,
) *RequestService {
	if rec == nil {
		rec = ports.NopMetrics{}
	}
	return &RequestService{
		requests:    requests,
		users:       users,
		idempotency: idempotency,
		metrics:     rec,
		log:         log,
	}
}

// Create stores a pending request owned by in.UserID.
func (s *RequestService) Create(ctx context.Context, in ports.CreateRequestInput) error {
	if err := validateCreateInput(in); err != nil {
		return err
	}

	// 1. The owner must still exist; the token alone does not prove it.
	if _, err := s.users.FindByID(ctx, in.UserID); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.ErrUserNotFound
		}
		return fmt.Errorf("create request: lookup owner: %w", err)
	}

	// 2. Idempotency claim. Store failures are logged and the request proceeds.
	claimed := false
	if in.IdempotencyKey != "" && s.idempotency != nil {
		ok, err := s.idempotency.Claim(ctx, in.UserID, in.IdempotencyKey)
		switch {
		case err != nil:
			s.log.Warn().Err(err).Str("user_id", in.UserID).Msg("idempotency claim failed, creating anyway")
		case !ok:
			s.metrics.IdempotentReplay()
			s.log.Info().Str("user_id", in.UserID).Str("idempotency_key", in.IdempotencyKey).Msg("idempotent replay")
			return nil
		default:
			claimed = true
		}
	}

	req := &domain.PropertyRequest{
		UserID:      in.UserID,
		Type:        in.Type,
		Area:        *in.Area,
		Location:    in.Location,
		Bedrooms:    in.Bedrooms,
		Style:       in.Style,
		Budget:      in.Budget,
		Payment:     in.Payment,
		Description: in.Description,
		Status:      domain.RequestStatusPending,
		CreatedAt:   time.Now().UTC(),
	}

	// 3. Persist; a failed insert gives the key back so the client can retry.
	if err := s.requests.Create(ctx, req); err != nil {
		if claimed {
			if relErr := s.idempotency.Release(ctx, in.UserID, in.IdempotencyKey); relErr != nil {
				s.log.Warn().Err(relErr).Str("user_id", in.UserID).Msg("failed to release idempotency key")
			}
		}
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.ErrUserNotFound
		}
		return fmt.Errorf("create request: %w", err)
	}

	s.metrics.RequestCreated(req.Type)
	s.log.Info().Str("request_id", req.ID).Str("user_id", in.UserID).Msg("property request created")
	return nil
}

// List returns the caller's requests in creation order. The result is never nil.
func (s *RequestService) List(ctx context.Context, userID string) ([]*domain.PropertyRequest, error) {
	items, err := s.requests.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list requests: %w", err)
	}
	if items == nil {
		items = []*domain.PropertyRequest{}
	}
	return items, nil
}

func validateCreateInput(in ports.CreateRequestInput) error {
	var missing []string
	if strings.TrimSpace(in.Type) == "" {
		missing = append(missing, "type")
	}
	if in.Area == nil {
		missing = append(missing, "area")
	}
	if strings.TrimSpace(in.Location) == "" {
		missing = append(missing, "location")
	}
	if err := domain.MissingFields(missing...); err != nil {
		return err
	}

	if in.Description != nil && utf8.RuneCountInString(*in.Description) > domain.MaxDescriptionLength {
		return &domain.ValidationError{
			Fields: []string{"description"},
			Reason: fmt.Sprintf("description must be at most %d characters", domain.MaxDescriptionLength),
		}
	}
	return nil
}
