// Package store defines the read-only document store the result lookup depends on.
// Backends live in subpackages; the service layer only sees DocumentStore.
package store

import (
	"context"
	"errors"
)

// Document is the raw field map of a stored document
type Document map[string]interface{}

// Snapshot pairs a subcollection document with its id
type Snapshot struct {
	ID   string
	Data Document
}

// ErrClosed is returned by backends used after Close
var ErrClosed = errors.New("document store is closed")

// DocumentStore reads documents and their subcollections.
// A missing document is reported through the bool result, never as an error.
type DocumentStore interface {
	GetDocument(ctx context.Context, collection, id string) (Document, bool, error)
	GetSubcollectionDocuments(ctx context.Context, collection, id, subcollection string) ([]Snapshot, error)
	GetSubcollectionDocument(ctx context.Context, collection, id, subcollection, subID string) (Document, bool, error)
	Close() error
}

// Pinger is implemented by backends that can report connectivity for health checks
type Pinger interface {
	Ping(ctx context.Context) error
}
