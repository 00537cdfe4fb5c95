// Package memory is an in-process DocumentStore used for tests and demo runs.
package memory

import (
	"context"
	"sync"

	"github.com/clgres/resultapi/internal/store"
)

type subcollection struct {
	order []string
	docs  map[string]store.Document
}

// Store keeps documents in maps guarded by a RWMutex.
// Subcollection documents are returned in insertion order.
type Store struct {
	mu     sync.RWMutex
	docs   map[string]store.Document
	subs   map[string]*subcollection
	closed bool
}

var (
	_ store.DocumentStore = (*Store)(nil)
	_ store.Pinger        = (*Store)(nil)
)

// New creates an empty Store
func New() *Store {
	return &Store{
		docs: make(map[string]store.Document),
		subs: make(map[string]*subcollection),
	}
}

func docKey(collection, id string) string {
	return collection + "/" + id
}

func subKey(collection, id, sub string) string {
	return collection + "/" + id + "/" + sub
}

// PutDocument stores or replaces a top-level document
func (s *Store) PutDocument(collection, id string, data store.Document) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[docKey(collection, id)] = copyDocument(data)
}

// PutSubcollectionDocument stores or replaces a document in a subcollection
func (s *Store) PutSubcollectionDocument(collection, id, sub, subID string, data store.Document) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := subKey(collection, id, sub)
	sc, ok := s.subs[key]
	if !ok {
		sc = &subcollection{docs: make(map[string]store.Document)}
		s.subs[key] = sc
	}
	if _, exists := sc.docs[subID]; !exists {
		sc.order = append(sc.order, subID)
	}
	sc.docs[subID] = copyDocument(data)
}

// GetDocument returns a copy of the document, or false when it does not exist
func (s *Store) GetDocument(ctx context.Context, collection, id string) (store.Document, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, false, store.ErrClosed
	}

	doc, ok := s.docs[docKey(collection, id)]
	if !ok {
		return nil, false, nil
	}
	return copyDocument(doc), true, nil
}

// GetSubcollectionDocuments returns every document of the subcollection in insertion order
func (s *Store) GetSubcollectionDocuments(ctx context.Context, collection, id, sub string) ([]store.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, store.ErrClosed
	}

	sc, ok := s.subs[subKey(collection, id, sub)]
	if !ok {
		return []store.Snapshot{}, nil
	}

	snapshots := make([]store.Snapshot, 0, len(sc.order))
	for _, subID := range sc.order {
		snapshots = append(snapshots, store.Snapshot{ID: subID, Data: copyDocument(sc.docs[subID])})
	}
	return snapshots, nil
}

// GetSubcollectionDocument returns one subcollection document, or false when it does not exist
func (s *Store) GetSubcollectionDocument(ctx context.Context, collection, id, sub, subID string) (store.Document, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, false, store.ErrClosed
	}

	sc, ok := s.subs[subKey(collection, id, sub)]
	if !ok {
		return nil, false, nil
	}
	doc, ok := sc.docs[subID]
	if !ok {
		return nil, false, nil
	}
	return copyDocument(doc), true, nil
}

// Ping fails only after Close
func (s *Store) Ping(ctx context.Context) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return store.ErrClosed
	}
	return ctx.Err()
}

// Close marks the store unusable
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

// copyDocument makes a shallow copy so callers cannot mutate stored maps
func copyDocument(doc store.Document) store.Document {
	if doc == nil {
		return store.Document{}
	}
	out := make(store.Document, len(doc))
	for k, v := range doc {
		out[k] = v
	}
	return out
}
