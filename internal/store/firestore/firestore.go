// Package firestore backs DocumentStore with Google Cloud Firestore.
package firestore

import (
	"context"
	"fmt"

	gcfirestore "cloud.google.com/go/firestore"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/clgres/resultapi/internal/store"
)

// Config holds the Firestore connection settings
type Config struct {
	ProjectID string
	// CredentialsFile is a service account JSON key; empty means application default credentials
	CredentialsFile string
	// PingCollection is read (one document at most) by Ping
	PingCollection string
}

// Store reads documents through a Firestore client
type Store struct {
	client         *gcfirestore.Client
	pingCollection string
}

var (
	_ store.DocumentStore = (*Store)(nil)
	_ store.Pinger        = (*Store)(nil)
)

// New dials Firestore for the configured project
func New(ctx context.Context, cfg Config) (*Store, error) {
	var opts []option.ClientOption
	if cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}

	client, err := gcfirestore.NewClient(ctx, cfg.ProjectID, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create firestore client: %w", err)
	}
	pingCollection := cfg.PingCollection
	if pingCollection == "" {
		pingCollection = "students"
	}
	return &Store{client: client, pingCollection: pingCollection}, nil
}

// GetDocument fetches collection/id
func (s *Store) GetDocument(ctx context.Context, collection, id string) (store.Document, bool, error) {
	return getDocument(ctx, s.client.Collection(collection).Doc(id))
}

// GetSubcollectionDocuments fetches every document under collection/id/subcollection
func (s *Store) GetSubcollectionDocuments(ctx context.Context, collection, id, subcollection string) ([]store.Snapshot, error) {
	docs, err := s.client.Collection(collection).Doc(id).Collection(subcollection).Documents(ctx).GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to list %s/%s/%s: %w", collection, id, subcollection, err)
	}

	snapshots := make([]store.Snapshot, 0, len(docs))
	for _, doc := range docs {
		snapshots = append(snapshots, store.Snapshot{ID: doc.Ref.ID, Data: doc.Data()})
	}
	return snapshots, nil
}

// GetSubcollectionDocument fetches collection/id/subcollection/subID
func (s *Store) GetSubcollectionDocument(ctx context.Context, collection, id, subcollection, subID string) (store.Document, bool, error) {
	return getDocument(ctx, s.client.Collection(collection).Doc(id).Collection(subcollection).Doc(subID))
}

// Ping reads at most one document of the ping collection; an empty collection is healthy
func (s *Store) Ping(ctx context.Context) error {
	if _, err := s.client.Collection(s.pingCollection).Limit(1).Documents(ctx).GetAll(); err != nil {
		return fmt.Errorf("firestore ping failed: %w", err)
	}
	return nil
}

// Close releases the underlying gRPC connection
func (s *Store) Close() error {
	return s.client.Close()
}

func getDocument(ctx context.Context, ref *gcfirestore.DocumentRef) (store.Document, bool, error) {
	snap, err := ref.Get(ctx)
	if status.Code(err) == codes.NotFound {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to get %s: %w", ref.Path, err)
	}
	if !snap.Exists() {
		return nil, false, nil
	}
	return snap.Data(), true, nil
}
