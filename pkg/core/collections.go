package core

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
)

// Collection represents a named namespace grouping documents that share a
// comparison space.
type Collection struct {
	ID         int64     `json:"id"`
	Name       string    `json:"name"`
	Dimensions int       `json:"dimensions"`
	CreatedAt  time.Time `json:"created_at"`
}

// GetOrCreateCollection looks a collection up by exact name, creating it if
// absent. Creation is an INSERT OR IGNORE against the UNIQUE(name) constraint
// followed by a re-select, so concurrent callers racing on a new name
// converge on a single row.
func (s *Store) GetOrCreateCollection(ctx context.Context, name string) (*Collection, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, wrapError("get_or_create_collection", ErrStoreClosed)
	}

	col, err := s.getOrCreateCollection(ctx, name)
	if err != nil {
		return nil, wrapError("get_or_create_collection", err)
	}
	return col, nil
}

// getOrCreateCollection is the lock-free worker for GetOrCreateCollection.
func (s *Store) getOrCreateCollection(ctx context.Context, name string) (*Collection, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrEmptyCollection
	}

	res, err := s.db.ExecContext(ctx,
		"INSERT OR IGNORE INTO collections (name) VALUES (?)", name)
	if err != nil {
		return nil, fmt.Errorf("failed to create collection: %w", err)
	}

	if n, err := res.RowsAffected(); err == nil && n > 0 {
		s.logger.Info("created collection", "collection", name)
	}

	col, err := s.getCollection(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to read back collection %q: %w", name, err)
	}
	return col, nil
}

// GetCollection retrieves a collection by exact name. Returns ErrNotFound if
// no collection with that name exists.
func (s *Store) GetCollection(ctx context.Context, name string) (*Collection, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, wrapError("get_collection", ErrStoreClosed)
	}

	col, err := s.getCollection(ctx, name)
	if err != nil {
		return nil, wrapError("get_collection", err)
	}
	return col, nil
}

func (s *Store) getCollection(ctx context.Context, name string) (*Collection, error) {
	col := &Collection{}
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, dimensions, created_at
		FROM collections WHERE name = ?
	`, name).Scan(&col.ID, &col.Name, &col.Dimensions, &col.CreatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get collection: %w", err)
	}
	return col, nil
}

// ListCollections returns all collections ordered by creation.
func (s *Store) ListCollections(ctx context.Context) ([]Collection, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, wrapError("list_collections", ErrStoreClosed)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, dimensions, created_at
		FROM collections ORDER BY id
	`)
	if err != nil {
		return nil, wrapError("list_collections", fmt.Errorf("failed to list collections: %w", err))
	}
	defer func() { _ = rows.Close() }()

	var collections []Collection
	for rows.Next() {
		var col Collection
		if err := rows.Scan(&col.ID, &col.Name, &col.Dimensions, &col.CreatedAt); err != nil {
			return nil, wrapError("list_collections", err)
		}
		collections = append(collections, col)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapError("list_collections", err)
	}

	return collections, nil
}

// pinCollectionDimensions records the embedding dimension on a collection the
// first time a document is written into it. A concurrent first writer may win
// the update; the pinned value is re-read in that case so both writers
// validate against the same dimension.
func (s *Store) pinCollectionDimensions(ctx context.Context, col *Collection, dim int) error {
	if col.Dimensions == dim {
		return nil
	}

	if col.Dimensions == 0 {
		res, err := s.db.ExecContext(ctx,
			"UPDATE collections SET dimensions = ? WHERE id = ? AND dimensions = 0", dim, col.ID)
		if err != nil {
			return fmt.Errorf("failed to pin collection dimensions: %w", err)
		}

		if n, err := res.RowsAffected(); err == nil && n > 0 {
			col.Dimensions = dim
			return nil
		}

		// Lost the race; reload the winner's dimension.
		if err := s.db.QueryRowContext(ctx,
			"SELECT dimensions FROM collections WHERE id = ?", col.ID).Scan(&col.Dimensions); err != nil {
			return fmt.Errorf("failed to reload collection dimensions: %w", err)
		}
		if col.Dimensions == dim {
			return nil
		}
	}

	return fmt.Errorf("%w: collection %q expects %d, got %d",
		ErrDimensionMismatch, col.Name, col.Dimensions, dim)
}
