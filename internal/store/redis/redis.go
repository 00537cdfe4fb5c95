// Package redis backs DocumentStore with Redis.
//
// Layout:
//   - "<collection>:<id>" holds a top-level document as a JSON string
//   - "<collection>:<id>:<subcollection>" is a hash of subID -> JSON document
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/clgres/resultapi/internal/store"
)

// Config holds Redis connection configuration
type Config struct {
	Addr         string
	Password     string
	DB           int
	PoolSize     int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// DefaultConfig returns local defaults
func DefaultConfig() Config {
	return Config{
		Addr:         "localhost:6379",
		PoolSize:     10,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	}
}

// Store reads JSON documents from Redis
type Store struct {
	client *goredis.Client
}

var (
	_ store.DocumentStore = (*Store)(nil)
	_ store.Pinger        = (*Store)(nil)
)

// New creates a client; the connection is established lazily
func New(cfg Config) *Store {
	return &Store{
		client: goredis.NewClient(&goredis.Options{
			Addr:         cfg.Addr,
			Password:     cfg.Password,
			DB:           cfg.DB,
			PoolSize:     cfg.PoolSize,
			DialTimeout:  cfg.DialTimeout,
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
		}),
	}
}

// DocumentKey is the key of a top-level document
func DocumentKey(collection, id string) string {
	return collection + ":" + id
}

// SubcollectionKey is the hash key holding a subcollection
func SubcollectionKey(collection, id, subcollection string) string {
	return DocumentKey(collection, id) + ":" + subcollection
}

// GetDocument fetches and decodes a top-level document
func (s *Store) GetDocument(ctx context.Context, collection, id string) (store.Document, bool, error) {
	raw, err := s.client.Get(ctx, DocumentKey(collection, id)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to get %s: %w", DocumentKey(collection, id), err)
	}
	return decode(raw)
}

// GetSubcollectionDocuments returns every hash entry ordered by subID
func (s *Store) GetSubcollectionDocuments(ctx context.Context, collection, id, subcollection string) ([]store.Snapshot, error) {
	key := SubcollectionKey(collection, id, subcollection)
	entries, err := s.client.HGetAll(ctx, key).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", key, err)
	}

	ids := make([]string, 0, len(entries))
	for subID := range entries {
		ids = append(ids, subID)
	}
	sort.Strings(ids)

	snapshots := make([]store.Snapshot, 0, len(ids))
	for _, subID := range ids {
		doc, _, err := decode([]byte(entries[subID]))
		if err != nil {
			return nil, fmt.Errorf("%s[%s]: %w", key, subID, err)
		}
		snapshots = append(snapshots, store.Snapshot{ID: subID, Data: doc})
	}
	return snapshots, nil
}

// GetSubcollectionDocument fetches one hash entry
func (s *Store) GetSubcollectionDocument(ctx context.Context, collection, id, subcollection, subID string) (store.Document, bool, error) {
	key := SubcollectionKey(collection, id, subcollection)
	raw, err := s.client.HGet(ctx, key, subID).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read %s[%s]: %w", key, subID, err)
	}
	return decode(raw)
}

// Ping round-trips a PING command
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close closes the client pool
func (s *Store) Close() error {
	return s.client.Close()
}

func decode(raw []byte) (store.Document, bool, error) {
	doc := store.Document{}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, false, fmt.Errorf("failed to decode document: %w", err)
	}
	return doc, true, nil
}
