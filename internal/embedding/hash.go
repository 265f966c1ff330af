package embedding

import (
	"context"
	"fmt"
	"hash/fnv"
	"math"
	"strings"
	"unicode"
)

// HashEmbedder is a deterministic local embedding provider. It hashes tokens
// and token bigrams into a fixed number of buckets and L2-normalizes the
// result. It captures lexical overlap only, but needs no network or model
// weights, and identical text always produces an identical vector.
type HashEmbedder struct {
	dimension int
}

// NewHashEmbedder creates a feature-hashing embedder with the given output
// dimension.
func NewHashEmbedder(dimension int) (*HashEmbedder, error) {
	if dimension <= 0 {
		return nil, fmt.Errorf("embedding dimension must be positive, got %d", dimension)
	}
	return &HashEmbedder{dimension: dimension}, nil
}

// Embed generates the embedding for the given text.
func (e *HashEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	vec := make([]float32, e.dimension)

	tokens := tokenize(text)
	for i, tok := range tokens {
		vec[e.bucket(tok)]++
		if i > 0 {
			// Bigrams weigh less than unigrams so word order refines rather
			// than dominates the score.
			vec[e.bucket(tokens[i-1]+" "+tok)] += 0.5
		}
	}

	var norm float64
	for _, v := range vec {
		norm += float64(v) * float64(v)
	}
	if norm > 0 {
		inv := float32(1 / math.Sqrt(norm))
		for i := range vec {
			vec[i] *= inv
		}
	}

	return vec, nil
}

// Dimension returns the embedding vector dimension.
func (e *HashEmbedder) Dimension() int {
	return e.dimension
}

// ModelName returns the name of the embedding model.
func (e *HashEmbedder) ModelName() string {
	return fmt.Sprintf("feature-hash-%d", e.dimension)
}

func (e *HashEmbedder) bucket(token string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(token))
	return int(h.Sum32() % uint32(e.dimension))
}

func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}
