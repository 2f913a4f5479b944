package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/allnik/property-service/internal/core/domain"
	"github.com/allnik/property-service/internal/core/ports"
)

// AuthService implements registration, login and profile lookup.
type AuthService struct {
	users      ports.UserRepository
	tokens     ports.TokenService
	bcryptCost int
	metrics    ports.MetricsRecorder
	log        zerolog.Logger
}

// NewAuthService builds the service. A nil recorder disables metrics.
func NewAuthService(
	users ports.UserRepository,
	tokens ports.TokenService,
	bcryptCost int,
	rec ports.MetricsRecorder,
	log zerolog.Logger,
) *AuthService {
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}
	if rec == nil {
		rec = ports.NopMetrics{}
	}
	return &AuthService{users: users, tokens: tokens, bcryptCost: bcryptCost, metrics: rec, log: log}
}

// Register stores a new account. An existing email, whether caught by the
// lookup or by the store's unique index on insert, yields domain.ErrUserExists.
func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) error {
	if err := registerMissingFields(in); err != nil {
		s.metrics.Registration("invalid")
		return err
	}

	if _, err := s.users.FindByEmail(ctx, in.Email); err == nil {
		s.metrics.Registration("exists")
		return domain.ErrUserExists
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		s.metrics.Registration("error")
		return fmt.Errorf("register: lookup email: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.bcryptCost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		s.metrics.Registration("invalid")
		return &domain.ValidationError{
			Fields: []string{"password"},
			Reason: fmt.Sprintf("password must be at most %d bytes", domain.MaxPasswordBytes),
		}
	}
	if err != nil {
		s.metrics.Registration("error")
		return fmt.Errorf("register: hash password: %w", err)
	}

	role := in.Role
	if role == "" {
		role = domain.RoleUser
	}

	created, err := s.users.Create(ctx, &domain.User{
		FullName:     in.FullName,
		Email:        in.Email,
		Username:     in.Username,
		PasswordHash: string(hash),
		City:         in.City,
		Region:       in.Region,
		Expertise:    in.Expertise,
		WorkRegion:   in.WorkRegion,
		Role:         role,
		CreatedAt:    time.Now().UTC(),
	})
	if err != nil {
		if errors.Is(err, domain.ErrUserExists) {
			s.metrics.Registration("exists")
			s.log.Info().Str("username", in.Username).Msg("registration rejected by unique index")
			return domain.ErrUserExists
		}
		s.metrics.Registration("error")
		return fmt.Errorf("register: %w", err)
	}

	s.metrics.Registration("created")
	s.log.Info().Str("user_id", created.ID).Str("role", role).Msg("user registered")
	return nil
}

// Login checks the password of the account registered under email and returns
// a fresh session token.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.metrics.Login("not_found")
			return "", domain.ErrUserNotFound
		}
		s.metrics.Login("error")
		return "", fmt.Errorf("login: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		s.metrics.Login("invalid_password")
		return "", domain.ErrInvalidPassword
	}

	token, err := s.tokens.Issue(user.ID, user.Role)
	if err != nil {
		s.metrics.Login("error")
		return "", fmt.Errorf("login: issue token: %w", err)
	}

	s.metrics.Login("success")
	s.log.Debug().Str("user_id", user.ID).Msg("user logged in")
	return token, nil
}

// Profile returns the account behind a verified identity.
func (s *AuthService) Profile(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("profile: %w", err)
	}
	return user, nil
}

// registerMissingFields checks the fields an account cannot work without.
func registerMissingFields(in ports.RegisterInput) error {
	var missing []string
	if in.Email == "" {
		missing = append(missing, "email")
	}
	if in.Username == "" {
		missing = append(missing, "username")
	}
	if in.Password == "" {
		missing = append(missing, "password")
	}
	return domain.MissingFields(missing...)
}
