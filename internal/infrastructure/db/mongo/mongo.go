// Package mongo implements the credential and request stores on MongoDB.
package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const defaultTimeout = 10 * time.Second

// Config holds the connection settings.
type Config struct {
	URI      string
	Database string
	Timeout  time.Duration
}

// Connect opens a client, pings it and returns it together with the selected
// database. Timeout defaults to 10s.
func Connect(ctx context.Context, cfg Config) (*mongo.Client, *mongo.Database, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	connectCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, nil, fmt.Errorf("mongo connect: %w", err)
	}

	if err := client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(connectCtx)
		return nil, nil, fmt.Errorf("mongo ping: %w", err)
	}

	return client, client.Database(cfg.Database), nil
}

// Stores bundles the repositories that share one database.
type Stores struct {
	Users    *UserRepository
	Requests *RequestRepository
}

// NewStores builds the repositories and creates their indexes. The unique
// indexes on users must exist before the first registration.
func NewStores(ctx context.Context, db *mongo.Database) (*Stores, error) {
	s := &Stores{
		Users:    NewUserRepository(db),
		Requests: NewRequestRepository(db),
	}
	if err := s.Users.EnsureIndexes(ctx); err != nil {
		return nil, fmt.Errorf("users indexes: %w", err)
	}
	if err := s.Requests.EnsureIndexes(ctx); err != nil {
		return nil, fmt.Errorf("requests indexes: %w", err)
	}
	return s, nil
}
