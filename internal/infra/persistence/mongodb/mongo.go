// Package mongodb contains the concrete implementation of the persistence
// layer on top of the official MongoDB driver.
package mongodb

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"linkbio/config"
	"linkbio/internal/domain/lifecycle"
	"linkbio/internal/errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/fx"
	"golang.org/x/sync/singleflight"
)

const (
	defaultConnectTimeout = 10 * time.Second

	// UsersCollection is the single collection this service persists to.
	UsersCollection = "users"
)

// Params defines the required parameters
type Params struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
	Logger *slog.Logger
}

// Client wraps the driver with a lazily established, process-wide connection.
// Connect is safe to call from concurrent requests: all first-callers share a
// single in-flight attempt, success caches the handle, and failure clears the
// in-flight state so a later call can retry.
type Client struct {
	cfg    *config.MongoConfig
	logger *slog.Logger

	mu     sync.Mutex
	group  singleflight.Group
	client *mongo.Client
	db     *mongo.Database
}

// New creates the MongoDB client mapping. A missing connection string is a
// configuration error surfaced immediately, not a retryable condition.
func New(params Params) (*Client, error) {
	cfg := params.Config.Mongo
	if cfg == nil || strings.TrimSpace(cfg.URI) == "" {
		return nil, errors.New("mongo connection string is not configured")
	}
	if strings.TrimSpace(cfg.Database) == "" {
		return nil, errors.New("mongo database name is not configured")
	}

	client := &Client{
		cfg:    cfg,
		logger: params.Logger,
	}

	params.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, lifecycle.DefaultTimeout)
			defer cancel()

			return client.disconnect(shutdownCtx)
		},
	})

	return client, nil
}

// Connect returns the shared database handle, establishing the underlying
// connection on first use.
func (c *Client) Connect(ctx context.Context) (*mongo.Database, error) {
	c.mu.Lock()
	if c.db != nil {
		db := c.db
		c.mu.Unlock()

		return db, nil
	}
	c.mu.Unlock()

	// singleflight collapses concurrent first-callers onto one attempt and
	// forgets the key once the attempt finishes, which is exactly the
	// retry-after-failure contract Connect promises.
	result, err, _ := c.group.Do("connect", func() (any, error) {
		return c.connect(ctx)
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect to mongo")
	}

	return result.(*mongo.Database), nil
}

func (c *Client) connect(ctx context.Context) (*mongo.Database, error) {
	timeout := c.cfg.ConnectTimeout
	if timeout <= 0 {
		timeout = defaultConnectTimeout
	}

	connectCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().
		ApplyURI(c.cfg.URI).
		SetConnectTimeout(timeout))
	if err != nil {
		return nil, errors.Wrap(err, "mongo connect")
	}

	if err := client.Ping(connectCtx, nil); err != nil {
		// Best-effort cleanup; the caller only sees the ping failure.
		_ = client.Disconnect(connectCtx)

		return nil, errors.Wrap(err, "mongo ping")
	}

	db := client.Database(c.cfg.Database)

	if err := ensureIndexes(connectCtx, db); err != nil {
		_ = client.Disconnect(connectCtx)

		return nil, err
	}

	c.mu.Lock()
	c.client = client
	c.db = db
	c.mu.Unlock()

	c.logger.Info("Connected to MongoDB", slog.String("database", c.cfg.Database))

	return db, nil
}

// ensureIndexes creates the unique username/email indexes. They back the
// application-level conflict pre-checks.
func ensureIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(UsersCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "username", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	})
	if err != nil {
		return errors.Wrap(err, "failed to ensure user indexes")
	}

	return nil
}

func (c *Client) disconnect(ctx context.Context) error {
	c.mu.Lock()
	client := c.client
	c.client = nil
	c.db = nil
	c.mu.Unlock()

	if client == nil {
		return nil
	}

	c.logger.Info("Disconnecting from MongoDB")

	return errors.WithStack(client.Disconnect(ctx))
}
