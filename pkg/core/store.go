package core

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"sync"
	"time"

	_ "modernc.org/sqlite" // SQLite driver
)

// Embedder converts text to a fixed-dimension vector. Implementations must be
// deterministic for a fixed model so that write-path and query-path vectors
// remain comparable.
type Embedder interface {
	// Embed generates the embedding for the given text.
	Embed(ctx context.Context, text string) ([]float32, error)

	// Dimension returns the embedding vector dimension.
	Dimension() int

	// ModelName returns the name of the embedding model.
	ModelName() string
}

// Store persists documents and their embeddings in a single SQLite file.
type Store struct {
	db           *sql.DB
	path         string
	embedder     Embedder
	logger       Logger
	similarityFn SimilarityFunc
	mu           sync.RWMutex
	closed       bool
}

// StoreStats provides statistics about the store
type StoreStats struct {
	Collections int64 `json:"collections"`
	Documents   int64 `json:"documents"`
	Size        int64 `json:"size"`
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used by store operations.
func WithLogger(logger Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithSimilarityFunc overrides the similarity function used for ranking.
func WithSimilarityFunc(fn SimilarityFunc) Option {
	return func(s *Store) {
		if fn != nil {
			s.similarityFn = fn
		}
	}
}

// New creates a store for the SQLite file at path. The embedder serves both
// the write and the query path. Call Init before performing operations.
func New(path string, embedder Embedder, opts ...Option) (*Store, error) {
	if path == "" {
		return nil, wrapError("init", fmt.Errorf("database path cannot be empty"))
	}
	if embedder == nil {
		return nil, wrapError("init", fmt.Errorf("embedder cannot be nil"))
	}

	store := &Store{
		path:         path,
		embedder:     embedder,
		logger:       NopLogger(),
		similarityFn: CosineSimilarity,
	}
	for _, opt := range opts {
		opt(store)
	}

	return store, nil
}

// Init opens the database and creates the schema if it does not exist.
// It is safe to call on an existing database file.
func (s *Store) Init(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return wrapError("init", ErrStoreClosed)
	}

	// WAL for concurrency across processes, busy_timeout so concurrent
	// writers wait up to 5s for the lock instead of failing immediately.
	// The _pragma options apply to every pooled connection.
	dsn := s.path +
		"?_pragma=journal_mode(WAL)" +
		"&_pragma=synchronous(NORMAL)" +
		"&_pragma=busy_timeout(5000)" +
		"&_pragma=foreign_keys(ON)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return wrapError("init", fmt.Errorf("failed to open database: %w", err))
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Hour)

	s.db = db

	if err := s.db.PingContext(ctx); err != nil {
		return wrapError("init", fmt.Errorf("failed to open database: %w", err))
	}

	if err := s.createTables(ctx); err != nil {
		return wrapError("init", err)
	}

	s.logger.Info("store initialized", "path", s.path, "model", s.embedder.ModelName())
	return nil
}

// createTables creates the necessary database tables
func (s *Store) createTables(ctx context.Context) error {
	createTableSQL := `
	CREATE TABLE IF NOT EXISTS collections (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT UNIQUE NOT NULL,
		dimensions INTEGER NOT NULL DEFAULT 0,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS documents (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		collection_id INTEGER NOT NULL,
		text TEXT NOT NULL,
		metadata TEXT,
		embedding BLOB NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (collection_id) REFERENCES collections(id)
	);

	CREATE INDEX IF NOT EXISTS idx_documents_collection_id ON documents(collection_id);
	CREATE INDEX IF NOT EXISTS idx_collections_name ON collections(name);
	`

	if _, err := s.db.ExecContext(ctx, createTableSQL); err != nil {
		return fmt.Errorf("failed to create tables: %w", err)
	}
	return nil
}

// Stats returns collection and document counts plus the database file size.
func (s *Store) Stats(ctx context.Context) (*StoreStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, wrapError("stats", ErrStoreClosed)
	}

	stats := &StoreStats{}

	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM collections").Scan(&stats.Collections); err != nil {
		return nil, wrapError("stats", fmt.Errorf("failed to count collections: %w", err))
	}
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM documents").Scan(&stats.Documents); err != nil {
		return nil, wrapError("stats", fmt.Errorf("failed to count documents: %w", err))
	}

	if info, err := os.Stat(s.path); err == nil {
		stats.Size = info.Size()
	}

	return stats, nil
}

// Embedder returns the embedding provider the store was created with.
func (s *Store) Embedder() Embedder {
	return s.embedder
}

// Close releases the database connection. The store cannot be reused.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true

	if s.db != nil {
		if err := s.db.Close(); err != nil {
			return wrapError("close", err)
		}
	}
	return nil
}
