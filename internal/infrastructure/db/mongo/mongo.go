package mongo

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const defaultTimeout = 10 * time.Second

// Config holds the audit trail connection settings.
type Config struct {
	URI      string
	Database string
	Timeout  time.Duration
}

// Store is an open connection to the audit database.
type Store struct {
	client *mongo.Client
	DB     *mongo.Database
}

// Open connects to the audit database and pings the primary. Both steps share
// one timeout, defaultTimeout when cfg.Timeout is unset.
func Open(ctx context.Context, cfg Config) (*Store, error) {
	if cfg.URI == "" || cfg.Database == "" {
		return nil, errors.New("mongo: URI and database are required")
	}
	timeout := cmp.Or(cfg.Timeout, defaultTimeout)

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	opts := options.Client().
		ApplyURI(cfg.URI).
		SetAppName("examconsole").
		SetServerSelectionTimeout(timeout)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping %s: %w", cfg.Database, err)
	}
	return &Store{client: client, DB: client.Database(cfg.Database)}, nil
}

// Audit returns the repository of the audit collection.
func (s *Store) Audit() *AuditRepository {
	return NewAuditRepository(s.DB)
}

// Close disconnects the client within ctx.
func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}
