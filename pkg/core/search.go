package core

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/agenttools/vecdb/internal/encoding"
)

// ScoredDocument is a query result: the stored document plus its similarity
// to the query vector, so callers need no further lookup.
type ScoredDocument struct {
	ID         int64          `json:"id"`
	Text       string         `json:"text"`
	Metadata   map[string]any `json:"metadata"`
	Similarity float64        `json:"similarity"`
}

// Query embeds text and ranks every document in the named collection against
// it, returning at most topK results ordered by descending similarity.
//
// The scan is an exact linear pass over the collection: O(n) in document
// count, no index or pruning. Ties keep insertion order, so repeated queries
// against unchanged data are deterministic. topK <= 0 yields an empty list;
// topK larger than the collection returns everything. Querying a collection
// that was never written returns ErrNotFound.
func (s *Store) Query(ctx context.Context, collection, text string, topK int) ([]ScoredDocument, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, wrapError("query", ErrStoreClosed)
	}

	if strings.TrimSpace(collection) == "" {
		return nil, wrapError("query", ErrEmptyCollection)
	}
	if strings.TrimSpace(text) == "" {
		return nil, wrapError("query", ErrEmptyText)
	}

	logger := s.logger.With("op", "query", "op_id", uuid.NewString(), "collection", collection)

	col, err := s.getCollection(ctx, collection)
	if err != nil {
		return nil, wrapError("query", err)
	}

	query, err := s.embedder.Embed(ctx, text)
	if err != nil {
		logger.Error("embedding failed", "error", err)
		return nil, wrapError("query", fmt.Errorf("%w: %v", ErrEmbedding, err))
	}

	if col.Dimensions > 0 && len(query) != col.Dimensions {
		return nil, wrapError("query", fmt.Errorf("%w: collection %q expects %d, got %d",
			ErrDimensionMismatch, col.Name, col.Dimensions, len(query)))
	}

	results, err := s.scanCollection(ctx, col.ID, query)
	if err != nil {
		return nil, wrapError("query", err)
	}

	// Stable sort keeps insertion order for equal scores.
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Similarity > results[j].Similarity
	})

	if topK < 0 {
		topK = 0
	}
	if topK > len(results) {
		topK = len(results)
	}
	results = results[:topK]

	logger.Info("query complete", "results", len(results))
	return results, nil
}

// scanCollection scores every document in the collection against the query
// vector, in insertion order.
func (s *Store) scanCollection(ctx context.Context, collectionID int64, query []float32) ([]ScoredDocument, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, text, metadata, embedding
		FROM documents
		WHERE collection_id = ?
		ORDER BY id
	`, collectionID)
	if err != nil {
		return nil, fmt.Errorf("failed to scan documents: %w", err)
	}
	defer func() { _ = rows.Close() }()

	results := []ScoredDocument{}
	for rows.Next() {
		var doc ScoredDocument
		var metadataJSON sql.NullString
		var blob []byte

		if err := rows.Scan(&doc.ID, &doc.Text, &metadataJSON, &blob); err != nil {
			return nil, fmt.Errorf("failed to scan document row: %w", err)
		}

		vector, err := encoding.DecodeVector(blob)
		if err != nil {
			return nil, fmt.Errorf("document %d: %w", doc.ID, err)
		}

		if metadataJSON.Valid {
			doc.Metadata, err = encoding.DecodeMetadata(metadataJSON.String)
			if err != nil {
				return nil, fmt.Errorf("document %d: %w", doc.ID, err)
			}
		}

		doc.Similarity = s.similarityFn(query, vector)
		results = append(results, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return results, nil
}
