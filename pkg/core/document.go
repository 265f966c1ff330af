package core

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/agenttools/vecdb/internal/encoding"
)

// Document is a stored text unit with optional metadata and its embedding.
// Documents are immutable once written.
type Document struct {
	ID           int64          `json:"id"`
	CollectionID int64          `json:"collection_id"`
	Text         string         `json:"text"`
	Metadata     map[string]any `json:"metadata,omitempty"`
	Embedding    []float32      `json:"embedding,omitempty"`
}

// Write embeds text and appends it as a new document under the named
// collection, creating the collection if it does not exist yet. It returns
// the id of the new document row.
//
// Collection creation and document insertion commit independently: a failure
// after the collection was created leaves a usable empty collection behind.
func (s *Store) Write(ctx context.Context, collection, text string, metadata map[string]any) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return 0, wrapError("write", ErrStoreClosed)
	}

	if strings.TrimSpace(collection) == "" {
		return 0, wrapError("write", ErrEmptyCollection)
	}
	if strings.TrimSpace(text) == "" {
		return 0, wrapError("write", ErrEmptyText)
	}

	logger := s.logger.With("op", "write", "op_id", uuid.NewString(), "collection", collection)

	metadataJSON, err := encoding.EncodeMetadata(metadata)
	if err != nil {
		return 0, wrapError("write", fmt.Errorf("%w: %v", ErrInvalidMetadata, err))
	}

	vector, err := s.embedder.Embed(ctx, text)
	if err != nil {
		logger.Error("embedding failed", "error", err)
		return 0, wrapError("write", fmt.Errorf("%w: %v", ErrEmbedding, err))
	}
	if len(vector) == 0 {
		logger.Error("embedding failed", "error", "empty vector")
		return 0, wrapError("write", fmt.Errorf("%w: provider returned an empty vector", ErrEmbedding))
	}

	col, err := s.getOrCreateCollection(ctx, collection)
	if err != nil {
		return 0, wrapError("write", err)
	}

	if err := s.pinCollectionDimensions(ctx, col, len(vector)); err != nil {
		return 0, wrapError("write", err)
	}

	blob, err := encoding.EncodeVector(vector)
	if err != nil {
		return 0, wrapError("write", err)
	}

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO documents (collection_id, text, metadata, embedding)
		VALUES (?, ?, ?, ?)
	`, col.ID, text, sqlNullString(metadataJSON), blob)
	if err != nil {
		logger.Error("document insert failed", "error", err)
		return 0, wrapError("write", fmt.Errorf("failed to insert document: %w", err))
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, wrapError("write", fmt.Errorf("failed to get document id: %w", err))
	}

	logger.Info("wrote document", "id", id, "dimensions", len(vector))
	return id, nil
}

// GetDocument retrieves a single document by id, including its embedding.
func (s *Store) GetDocument(ctx context.Context, id int64) (*Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, wrapError("get_document", ErrStoreClosed)
	}

	doc := &Document{}
	var metadataJSON sql.NullString
	var blob []byte

	err := s.db.QueryRowContext(ctx, `
		SELECT id, collection_id, text, metadata, embedding
		FROM documents WHERE id = ?
	`, id).Scan(&doc.ID, &doc.CollectionID, &doc.Text, &metadataJSON, &blob)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, wrapError("get_document", fmt.Errorf("document %d not found", id))
	}
	if err != nil {
		return nil, wrapError("get_document", err)
	}

	if metadataJSON.Valid {
		doc.Metadata, err = encoding.DecodeMetadata(metadataJSON.String)
		if err != nil {
			return nil, wrapError("get_document", err)
		}
	}

	doc.Embedding, err = encoding.DecodeVector(blob)
	if err != nil {
		return nil, wrapError("get_document", err)
	}

	return doc, nil
}

// sqlNullString maps the empty string to SQL NULL.
func sqlNullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
