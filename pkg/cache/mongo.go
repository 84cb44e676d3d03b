package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoCollection is the collection name used by DialMongo.
const MongoCollection = "cache"

// MongoCache stores entries as documents keyed by _id. Expiry is enforced
// by a TTL index on expires_at and, since the TTL monitor runs only
// periodically, again on read.
type MongoCache struct {
	coll       *mongo.Collection
	disconnect func(context.Context) error
	now        func() time.Time
}

type mongoEntry struct {
	Key       string     `bson:"_id"`
	Data      []byte     `bson:"data"`
	ExpiresAt *time.Time `bson:"expires_at,omitempty"`
}

func (e mongoEntry) expired(now time.Time) bool {
	return e.ExpiresAt != nil && now.After(*e.ExpiresAt)
}

// DialMongo connects to uri, selects database and ensures the TTL index.
func DialMongo(ctx context.Context, uri, database string) (*MongoCache, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("mongo %s: %w", uri, err)
	}

	c := NewMongoCache(client.Database(database).Collection(MongoCollection))
	c.disconnect = client.Disconnect
	if err := c.EnsureIndexes(ctx); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}
	return c, nil
}

// NewMongoCache wraps an existing collection. Close does not disconnect
// the owning client.
func NewMongoCache(coll *mongo.Collection) *MongoCache {
	return &MongoCache{coll: coll, now: time.Now}
}

// EnsureIndexes creates the TTL index on expires_at.
func (c *MongoCache) EnsureIndexes(ctx context.Context) error {
	_, err := c.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "expires_at", Value: 1}},
		Options: options.Index().SetExpireAfterSeconds(0),
	})
	if err != nil {
		return fmt.Errorf("mongo ttl index: %w", err)
	}
	return nil
}

// Get retrieves a value from the cache.
func (c *MongoCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var e mongoEntry
	err := c.coll.FindOne(ctx, bson.M{"_id": key}).Decode(&e)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("%w: %w", ErrNetwork, err)
	}
	if e.expired(c.now()) {
		return nil, false, nil
	}
	return e.Data, true, nil
}

// Set upserts a value. A ttl of zero or less never expires.
func (c *MongoCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	_, err := c.coll.ReplaceOne(ctx, bson.M{"_id": key}, newMongoEntry(key, data, ttl, c.now()),
		options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrNetwork, err)
	}
	return nil
}

// Delete removes a value from the cache.
func (c *MongoCache) Delete(ctx context.Context, key string) error {
	if _, err := c.coll.DeleteOne(ctx, bson.M{"_id": key}); err != nil {
		return fmt.Errorf("%w: %w", ErrNetwork, err)
	}
	return nil
}

// Close disconnects the client if DialMongo created it.
func (c *MongoCache) Close() error {
	if c.disconnect == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return c.disconnect(ctx)
}

func newMongoEntry(key string, data []byte, ttl time.Duration, now time.Time) mongoEntry {
	e := mongoEntry{Key: key, Data: data}
	if ttl > 0 {
		exp := now.Add(ttl).UTC()
		e.ExpiresAt = &exp
	}
	return e
}

var _ Cache = (*MongoCache)(nil)
