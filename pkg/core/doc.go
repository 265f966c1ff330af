// Package core provides the storage and retrieval engine for vecdb.
//
// It persists document collections in a single SQLite file and answers
// nearest-neighbor queries by exact linear scan with cosine similarity.
// Text is converted to vectors by a pluggable Embedder; the same embedder
// must serve both the write and the query path so vectors stay comparable.
//
// # Key Components
//
//   - Store: the entry point for all data operations, backed by SQLite.
//   - Collection registry: lazy, race-free get-or-create of named namespaces.
//   - Query engine: brute-force scan, stable descending top-K ranking.
//   - Embedder: the external text-to-vector provider contract.
package core
