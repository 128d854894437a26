package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoConfig holds MongoDB connection pool configuration.
type MongoConfig struct {
	// MaxPoolSize is the maximum number of connections in the pool.
	MaxPoolSize uint64
	// MinPoolSize is the minimum number of connections to keep in the pool.
	MinPoolSize uint64
	// MaxConnIdleTime is how long a connection can remain idle before being closed.
	MaxConnIdleTime time.Duration
	// ConnectTimeout is the timeout for establishing a connection.
	ConnectTimeout time.Duration
	// ServerSelectionTimeout is how long to wait for server selection.
	ServerSelectionTimeout time.Duration
	// SocketTimeout is the timeout for socket read/write operations.
	SocketTimeout time.Duration
	// EnableCompression enables wire protocol compression.
	EnableCompression bool
}

// DefaultMongoConfig returns the connection settings used in production.
func DefaultMongoConfig() MongoConfig {
	return MongoConfig{
		MaxPoolSize:            20,
		MinPoolSize:            2,
		MaxConnIdleTime:        10 * time.Minute,
		ConnectTimeout:         10 * time.Second,
		ServerSelectionTimeout: 5 * time.Second,
		SocketTimeout:          30 * time.Second,
		EnableCompression:      true,
	}
}

// MongoDB provides MongoDB client and collection access.
type MongoDB struct {
	Client        *mongo.Client
	Database      *mongo.Database
	Orders        *mongo.Collection
	Drafts        *mongo.Collection
	PackSizeRules *mongo.Collection
	Logs          *mongo.Collection
}

// NewMongoDB creates a new MongoDB connection with default configuration.
func NewMongoDB(uri, databaseName string) (*MongoDB, error) {
	return NewMongoDBWithConfig(uri, databaseName, DefaultMongoConfig())
}

// NewMongoDBWithConfig connects, pings and creates the collection indexes.
func NewMongoDBWithConfig(uri, databaseName string, cfg MongoConfig) (*MongoDB, error) {
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ConnectTimeout)
	defer cancel()

	clientOptions := options.Client().
		ApplyURI(uri).
		SetMaxPoolSize(cfg.MaxPoolSize).
		SetMinPoolSize(cfg.MinPoolSize).
		SetMaxConnIdleTime(cfg.MaxConnIdleTime).
		SetConnectTimeout(cfg.ConnectTimeout).
		SetServerSelectionTimeout(cfg.ServerSelectionTimeout).
		SetSocketTimeout(cfg.SocketTimeout).
		SetRetryWrites(true).
		SetRetryReads(true)

	if cfg.EnableCompression {
		clientOptions.SetCompressors([]string{"zstd", "snappy", "zlib"})
	}

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}

	db := client.Database(databaseName)
	mongoDB := &MongoDB{
		Client:        client,
		Database:      db,
		Orders:        db.Collection("orders"),
		Drafts:        db.Collection("drafts"),
		PackSizeRules: db.Collection("pack_size_rules"),
		Logs:          db.Collection("logs"),
	}

	if err := mongoDB.createIndexes(ctx); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}
	return mongoDB, nil
}

// indexSpec lists the secondary indexes of each collection. TTL indexes
// are managed separately since their expiry comes from configuration.
func (m *MongoDB) indexSpec() map[*mongo.Collection][]mongo.IndexModel {
	return map[*mongo.Collection][]mongo.IndexModel{
		m.PackSizeRules: {
			{Keys: bson.D{{Key: "active", Value: 1}}, Options: options.Index().SetName("active")},
		},
		m.Orders: {
			{Keys: bson.D{{Key: "college", Value: 1}, {Key: "created_at", Value: -1}}, Options: options.Index().SetName("college_recent")},
			{Keys: bson.D{{Key: "status", Value: 1}, {Key: "created_at", Value: -1}}, Options: options.Index().SetName("status_recent")},
		},
		m.Drafts: {
			{Keys: bson.D{{Key: "college", Value: 1}}, Options: options.Index().SetName("college")},
		},
		m.Logs: {
			{Keys: bson.D{{Key: "request_id", Value: 1}}, Options: options.Index().SetName("request_id")},
			{Keys: bson.D{{Key: "college", Value: 1}, {Key: "timestamp", Value: -1}}, Options: options.Index().SetName("college_recent")},
		},
	}
}

func (m *MongoDB) createIndexes(ctx context.Context) error {
	for coll, models := range m.indexSpec() {
		if _, err := coll.Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("create %s indexes: %w", coll.Name(), err)
		}
	}
	return nil
}

// setTTL replaces the TTL index on field of collection. A zero ttl only
// drops it, so documents are kept.
func setTTL(ctx context.Context, collection *mongo.Collection, field string, ttl time.Duration) error {
	name := "ttl_" + field
	if _, err := collection.Indexes().DropOne(ctx, name); err != nil && !isIndexNotFound(err) {
		return fmt.Errorf("drop %s.%s: %w", collection.Name(), name, err)
	}
	if ttl <= 0 {
		return nil
	}
	_, err := collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: field, Value: 1}},
		Options: options.Index().SetName(name).SetExpireAfterSeconds(int32(ttl.Seconds())),
	})
	if err != nil {
		return fmt.Errorf("create %s.%s: %w", collection.Name(), name, err)
	}
	return nil
}

// isIndexNotFound reports the server error for dropping a missing index
// (code 27) or a collection that does not exist yet (code 26).
func isIndexNotFound(err error) bool {
	var cmdErr mongo.CommandError
	if errors.As(err, &cmdErr) {
		return cmdErr.Code == 27 || cmdErr.Code == 26
	}
	return false
}

// SetLogsTTL expires log entries ttlDays after their timestamp.
func (m *MongoDB) SetLogsTTL(ctx context.Context, ttlDays int) error {
	return setTTL(ctx, m.Logs, "timestamp", time.Duration(ttlDays)*24*time.Hour)
}

// SetDraftsTTL expires drafts ttl after their last update.
func (m *MongoDB) SetDraftsTTL(ctx context.Context, ttl time.Duration) error {
	return setTTL(ctx, m.Drafts, "updated_at", ttl)
}

// Close closes the MongoDB connection.
func (m *MongoDB) Close(ctx context.Context) error {
	return m.Client.Disconnect(ctx)
}

// HealthCheck verifies the MongoDB connection is healthy.
func (m *MongoDB) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return m.Client.Ping(ctx, nil)
}
