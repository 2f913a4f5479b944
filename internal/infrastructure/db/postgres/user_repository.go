package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/allnik/property-service/internal/core/domain"
)

const userColumns = `id, full_name, email, username, password_hash, city, region,
	expertise, work_region, role, created_at`

// UserRepository is the relational credential store.
type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

// Create inserts u. The unique constraints on email and username surface as
// domain.ErrUserExists.
func (r *UserRepository) Create(ctx context.Context, u *domain.User) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	row := r.pool.QueryRow(ctx, `
		INSERT INTO users (full_name, email, username, password_hash, city, region,
			expertise, work_region, role, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING `+userColumns,
		u.FullName, u.Email, u.Username, u.PasswordHash, u.City, u.Region,
		u.Expertise, u.WorkRegion, u.Role, u.CreatedAt,
	)

	created, err := scanUser(row)
	if err != nil {
		if mapped := translateError(err); mapped != err {
			return nil, mapped
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}
	return created, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	return r.findOne(r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email))
}

// FindByID treats a non-numeric id as unknown.
func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	n, ok := parseID(id)
	if !ok {
		return nil, domain.ErrUserNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	return r.findOne(r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, n))
}

func (r *UserRepository) findOne(row pgx.Row) (*domain.User, error) {
	u, err := scanUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return u, nil
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var (
		u  domain.User
		id int64
	)
	if err := row.Scan(&id, &u.FullName, &u.Email, &u.Username, &u.PasswordHash,
		&u.City, &u.Region, &u.Expertise, &u.WorkRegion, &u.Role, &u.CreatedAt); err != nil {
		return nil, err
	}
	u.ID = formatID(id)
	return &u, nil
}
