package mongo

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.mongodb.org/mongo-driver/mongo/writeconcern"
)

const defaultTimeout = 10 * time.Second

// Config holds the roster store connection settings.
type Config struct {
	URI      string
	Database string
	Timeout  time.Duration
}

// Store owns the client behind the mongo roster backend.
type Store struct {
	client *mongo.Client
	db     *mongo.Database
}

// Connect dials the cluster and waits for a primary before returning. Roster
// writes use majority write concern.
func Connect(ctx context.Context, cfg Config, logger zerolog.Logger) (*Store, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	connectCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	opts := options.Client().
		ApplyURI(cfg.URI).
		SetAppName("clan-dashboard").
		SetServerSelectionTimeout(timeout).
		SetWriteConcern(writeconcern.Majority())

	client, err := mongo.Connect(connectCtx, opts)
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(connectCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping: %w", err)
	}

	logger.Info().Str("db", cfg.Database).Msg("roster store connected to mongo")
	return &Store{client: client, db: client.Database(cfg.Database)}, nil
}

// Database returns the handle the roster repository works on.
func (s *Store) Database() *mongo.Database { return s.db }

// Ping reports whether the primary is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, readpref.Primary())
}

// Close disconnects the client.
func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}
