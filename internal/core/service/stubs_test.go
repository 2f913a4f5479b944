package service

import (
	"context"
	"errors"
	"strconv"
	"sync"

	"github.com/allnik/property-service/internal/core/domain"
)

// ---------------------------------------------------------------------------
// In-memory stub repositories
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	mu      sync.Mutex
	byID    map[string]*domain.User
	nextID  int
	findErr error // if set, FindByEmail/FindByID return this error
	// createErr is returned by Create instead of storing, e.g. to simulate a
	// unique index rejection that slipped past the email pre-check.
	createErr error
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{byID: make(map[string]*domain.User)}
}

func (r *stubUserRepo) Create(_ context.Context, u *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return nil, r.createErr
	}
	for _, existing := range r.byID {
		if existing.Email == u.Email || existing.Username == u.Username {
			return nil, domain.ErrUserExists
		}
	}
	r.nextID++
	clone := *u
	clone.ID = strconv.Itoa(r.nextID)
	r.byID[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.findErr != nil {
		return nil, r.findErr
	}
	for _, u := range r.byID {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.findErr != nil {
		return nil, r.findErr
	}
	u, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

type stubRequestRepo struct {
	mu        sync.Mutex
	items     []*domain.PropertyRequest
	createErr error
	listErr   error
}

func (r *stubRequestRepo) Create(_ context.Context, p *domain.PropertyRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return r.createErr
	}
	p.ID = strconv.Itoa(len(r.items) + 1)
	clone := *p
	r.items = append(r.items, &clone)
	return nil
}

func (r *stubRequestRepo) ListByUser(_ context.Context, userID string) ([]*domain.PropertyRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.listErr != nil {
		return nil, r.listErr
	}
	var out []*domain.PropertyRequest
	for _, p := range r.items {
		if p.UserID == userID {
			clone := *p
			out = append(out, &clone)
		}
	}
	return out, nil
}

type stubIdempotency struct {
	claimed  map[string]bool
	claimErr error
	released []string
}

func newStubIdempotency() *stubIdempotency {
	return &stubIdempotency{claimed: make(map[string]bool)}
}

func (s *stubIdempotency) Claim(_ context.Context, scope, key string) (bool, error) {
	if s.claimErr != nil {
		return false, s.claimErr
	}
	k := scope + ":" + key
	if s.claimed[k] {
		return false, nil
	}
	s.claimed[k] = true
	return true, nil
}

func (s *stubIdempotency) Release(_ context.Context, scope, key string) error {
	k := scope + ":" + key
	delete(s.claimed, k)
	s.released = append(s.released, k)
	return nil
}

type stubMetrics struct {
	registrations map[string]int
	logins        map[string]int
	created       map[string]int
	replays       int
}

func newStubMetrics() *stubMetrics {
	return &stubMetrics{
		registrations: make(map[string]int),
		logins:        make(map[string]int),
		created:       make(map[string]int),
	}
}

func (m *stubMetrics) Registration(result string)         { m.registrations[result]++ }
func (m *stubMetrics) Login(result string)                { m.logins[result]++ }
func (m *stubMetrics) RequestCreated(propertyType string) { m.created[propertyType]++ }
func (m *stubMetrics) IdempotentReplay()                  { m.replays++ }

var errStoreDown = errors.New("store unavailable")
