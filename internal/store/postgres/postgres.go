// Package postgres backs DocumentStore with a JSONB documents table.
//
// Top-level documents have an empty parent_path; subcollection documents use
// "<collection>/<id>" of their parent, so a student's semesters live under
// parent_path "students/<ROLL>" with collection "semesters".
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/clgres/resultapi/internal/pkg/dberrors"
	"github.com/clgres/resultapi/internal/pkg/logger"
	"github.com/clgres/resultapi/internal/store"
)

const documentsTable = "documents"

// Store reads documents from PostgreSQL
type Store struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

var (
	_ store.DocumentStore = (*Store)(nil)
	_ store.Pinger        = (*Store)(nil)
)

// New wraps an established pool
func New(db *pgxpool.Pool) *Store {
	return &Store{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func parentPath(collection, id string) string {
	return collection + "/" + id
}

func (s *Store) documentQuery(parent, collection, id string) (string, []interface{}, error) {
	return s.sb.Select("data").
		From(documentsTable).
		Where(squirrel.Eq{"parent_path": parent, "collection": collection, "doc_id": id}).
		Limit(1).
		ToSql()
}

func (s *Store) subcollectionQuery(parent, collection string) (string, []interface{}, error) {
	return s.sb.Select("doc_id", "data").
		From(documentsTable).
		Where(squirrel.Eq{"parent_path": parent, "collection": collection}).
		OrderBy("created_at ASC", "doc_id ASC").
		ToSql()
}

// GetDocument fetches a top-level document
func (s *Store) GetDocument(ctx context.Context, collection, id string) (store.Document, bool, error) {
	return s.getOne(ctx, "", collection, id)
}

// GetSubcollectionDocument fetches one document of collection/id/subcollection
func (s *Store) GetSubcollectionDocument(ctx context.Context, collection, id, subcollection, subID string) (store.Document, bool, error) {
	return s.getOne(ctx, parentPath(collection, id), subcollection, subID)
}

func (s *Store) getOne(ctx context.Context, parent, collection, id string) (store.Document, bool, error) {
	sql, args, err := s.documentQuery(parent, collection, id)
	if err != nil {
		logger.Error().Err(err).Msg("Error building get document SQL")
		return nil, false, fmt.Errorf("failed to build get document query: %w", err)
	}

	var doc store.Document
	err = s.db.QueryRow(ctx, sql, args...).Scan(&doc)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, false, nil
		}
		err = dberrors.Classify(err)
		logger.Error().Err(err).Str("collection", collection).Str("id", id).Msg("Error scanning document row")
		return nil, false, fmt.Errorf("error getting document %s/%s: %w", collection, id, err)
	}
	if doc == nil {
		doc = store.Document{}
	}
	return doc, true, nil
}

// GetSubcollectionDocuments lists collection/id/subcollection in insertion order
func (s *Store) GetSubcollectionDocuments(ctx context.Context, collection, id, subcollection string) ([]store.Snapshot, error) {
	sql, args, err := s.subcollectionQuery(parentPath(collection, id), subcollection)
	if err != nil {
		logger.Error().Err(err).Msg("Error building list subcollection SQL")
		return nil, fmt.Errorf("failed to build list subcollection query: %w", err)
	}

	rows, err := s.db.Query(ctx, sql, args...)
	if err != nil {
		err = dberrors.Classify(err)
		logger.Error().Err(err).Str("collection", collection).Str("id", id).Msg("Error executing list subcollection query")
		return nil, fmt.Errorf("error querying %s: %w", subcollection, err)
	}
	defer rows.Close()

	snapshots := []store.Snapshot{}
	for rows.Next() {
		var snap store.Snapshot
		if err := rows.Scan(&snap.ID, &snap.Data); err != nil {
			return nil, fmt.Errorf("error scanning %s row: %w", subcollection, err)
		}
		snapshots = append(snapshots, snap)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating %s rows: %w", subcollection, dberrors.Classify(err))
	}

	return snapshots, nil
}

// Ping checks the pool
func (s *Store) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}

// Close closes the pool
func (s *Store) Close() error {
	s.db.Close()
	return nil
}
