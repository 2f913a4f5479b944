package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/allnik/property-service/internal/core/domain"
	"github.com/allnik/property-service/internal/core/ports"
)

func newTestAuthService(repo *stubUserRepo) (*AuthService, *TokenService) {
	tokens := NewTokenService("test-secret", time.Hour)
	return NewAuthService(repo, tokens, bcrypt.MinCost, nil, zerolog.Nop()), tokens
}

func aliceInput() ports.RegisterInput {
	return ports.RegisterInput{
		FullName: "Alice A",
		Email:    "a@x.com",
		Username: "alice",
		Password: "pw1",
		City:     "Tashkent",
		Region:   "Central",
	}
}

func TestRegister_StoresHashedPasswordAndDefaultRole(t *testing.T) {
	repo := newStubUserRepo()
	svc, _ := newTestAuthService(repo)

	if err := svc.Register(context.Background(), aliceInput()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	u, err := repo.FindByEmail(context.Background(), "a@x.com")
	if err != nil {
		t.Fatalf("user not stored: %v", err)
	}
	if u.PasswordHash == "pw1" || u.PasswordHash == "" {
		t.Errorf("password not hashed: %q", u.PasswordHash)
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("pw1")) != nil {
		t.Error("stored hash does not match the password")
	}
	if u.Role != domain.RoleUser {
		t.Errorf("role = %q, want %q", u.Role, domain.RoleUser)
	}
	if u.CreatedAt.IsZero() {
		t.Error("CreatedAt not set")
	}
}

func TestRegister_KeepsExplicitRole(t *testing.T) {
	repo := newStubUserRepo()
	svc, _ := newTestAuthService(repo)

	in := aliceInput()
	in.Role = domain.RoleAdvisor
	in.Expertise = "commercial"
	if err := svc.Register(context.Background(), in); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	u, _ := repo.FindByEmail(context.Background(), "a@x.com")
	if u.Role != domain.RoleAdvisor || u.Expertise != "commercial" {
		t.Errorf("got role=%q expertise=%q", u.Role, u.Expertise)
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	repo := newStubUserRepo()
	svc, _ := newTestAuthService(repo)
	ctx := context.Background()

	if err := svc.Register(ctx, aliceInput()); err != nil {
		t.Fatalf("first register: %v", err)
	}
	before := len(repo.byID)

	in := aliceInput()
	in.Username = "alice2"
	if err := svc.Register(ctx, in); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
	if len(repo.byID) != before {
		t.Error("duplicate registration changed the store")
	}
}

func TestRegister_DuplicateUsernameFromStore(t *testing.T) {
	repo := newStubUserRepo()
	svc, _ := newTestAuthService(repo)
	ctx := context.Background()

	if err := svc.Register(ctx, aliceInput()); err != nil {
		t.Fatalf("first register: %v", err)
	}

	in := aliceInput()
	in.Email = "other@x.com"
	if err := svc.Register(ctx, in); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestRegister_MissingFields(t *testing.T) {
	svc, _ := newTestAuthService(newStubUserRepo())

	in := aliceInput()
	in.FullName = ""
	in.Email = ""
	in.Password = ""
	err := svc.Register(context.Background(), in)

	var verr *domain.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if len(verr.Fields) != 2 || verr.Fields[0] != "email" || verr.Fields[1] != "password" {
		t.Errorf("fields = %v", verr.Fields)
	}
	if !errors.Is(err, domain.ErrValidation) {
		t.Error("ValidationError should unwrap to ErrValidation")
	}
}

func TestRegister_StoreFailureIsWrapped(t *testing.T) {
	repo := newStubUserRepo()
	repo.createErr = errStoreDown
	svc, _ := newTestAuthService(repo)

	err := svc.Register(context.Background(), aliceInput())
	if !errors.Is(err, errStoreDown) {
		t.Fatalf("expected wrapped store error, got %v", err)
	}
	if errors.Is(err, domain.ErrUserExists) {
		t.Error("store failure must not be reported as a duplicate")
	}
}

func TestRegister_PasswordOverBcryptLimit(t *testing.T) {
	repo := newStubUserRepo()
	rec := newStubMetrics()
	svc := NewAuthService(repo, NewTokenService("test-secret", time.Hour), bcrypt.MinCost, rec, zerolog.Nop())

	in := aliceInput()
	in.Password = strings.Repeat("p", domain.MaxPasswordBytes+1)
	err := svc.Register(context.Background(), in)

	var verr *domain.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if len(verr.Fields) != 1 || verr.Fields[0] != "password" {
		t.Errorf("fields = %v", verr.Fields)
	}
	if err.Error() != "password must be at most 72 bytes" {
		t.Errorf("message = %q", err.Error())
	}
	if len(repo.byID) != 0 {
		t.Error("rejected registration reached the store")
	}
	if rec.registrations["invalid"] != 1 {
		t.Errorf("registrations = %v", rec.registrations)
	}

	in.Password = strings.Repeat("p", domain.MaxPasswordBytes)
	if err := svc.Register(context.Background(), in); err != nil {
		t.Fatalf("72-byte password: %v", err)
	}
}

func TestRegister_RecordsOutcomes(t *testing.T) {
	rec := newStubMetrics()
	svc := NewAuthService(newStubUserRepo(), NewTokenService("test-secret", time.Hour), bcrypt.MinCost, rec, zerolog.Nop())
	ctx := context.Background()

	_ = svc.Register(ctx, aliceInput())
	_ = svc.Register(ctx, aliceInput())
	_, _ = svc.Login(ctx, "a@x.com", "pw1")
	_, _ = svc.Login(ctx, "a@x.com", "bad")

	if rec.registrations["created"] != 1 || rec.registrations["exists"] != 1 {
		t.Errorf("registrations = %v", rec.registrations)
	}
	if rec.logins["success"] != 1 || rec.logins["invalid_password"] != 1 {
		t.Errorf("logins = %v", rec.logins)
	}
}

func TestLogin_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc, tokens := newTestAuthService(repo)
	ctx := context.Background()
	_ = svc.Register(ctx, aliceInput())

	tok, err := svc.Login(ctx, "a@x.com", "pw1")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	id, err := tokens.Verify(tok)
	if err != nil {
		t.Fatalf("issued token does not verify: %v", err)
	}
	u, _ := repo.FindByEmail(ctx, "a@x.com")
	if id.UserID != u.ID || id.Role != domain.RoleUser {
		t.Errorf("identity = %+v, want {%s user}", id, u.ID)
	}
}

func TestLogin_UnknownEmail(t *testing.T) {
	svc, _ := newTestAuthService(newStubUserRepo())

	if _, err := svc.Login(context.Background(), "nobody@x.com", "pw"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestLogin_EmailIsCaseSensitive(t *testing.T) {
	repo := newStubUserRepo()
	svc, _ := newTestAuthService(repo)
	_ = svc.Register(context.Background(), aliceInput())

	if _, err := svc.Login(context.Background(), "A@X.COM", "pw1"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	repo := newStubUserRepo()
	svc, _ := newTestAuthService(repo)
	_ = svc.Register(context.Background(), aliceInput())

	if _, err := svc.Login(context.Background(), "a@x.com", "nope"); !errors.Is(err, domain.ErrInvalidPassword) {
		t.Fatalf("expected ErrInvalidPassword, got %v", err)
	}
}

func TestProfile(t *testing.T) {
	repo := newStubUserRepo()
	svc, _ := newTestAuthService(repo)
	ctx := context.Background()
	_ = svc.Register(ctx, aliceInput())
	stored, _ := repo.FindByEmail(ctx, "a@x.com")

	u, err := svc.Profile(ctx, stored.ID)
	if err != nil {
		t.Fatalf("profile: %v", err)
	}
	if u.Username != "alice" || u.City != "Tashkent" {
		t.Errorf("unexpected profile %+v", u)
	}

	if _, err := svc.Profile(ctx, "999"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
