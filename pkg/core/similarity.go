package core

import "math"

// SimilarityFunc defines a function that scores the similarity of two vectors.
// Higher scores mean more similar.
type SimilarityFunc func(a, b []float32) float64

// CosineSimilarity calculates cosine similarity between two vectors.
// Returns a value between -1 and 1, where 1 means identical direction.
// Zero-norm vectors score 0.0 rather than dividing by zero.
func CosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) {
		return 0.0
	}

	var dot, normA, normB float64
	for i := 0; i < len(a); i++ {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	if normA == 0.0 || normB == 0.0 {
		return 0.0
	}

	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// DotProduct calculates the dot product between two vectors.
func DotProduct(a, b []float32) float64 {
	if len(a) != len(b) {
		return 0.0
	}

	var result float64
	for i := 0; i < len(a); i++ {
		result += float64(a[i]) * float64(b[i])
	}
	return result
}

// EuclideanDist calculates negative Euclidean distance so that higher values
// indicate more similarity.
func EuclideanDist(a, b []float32) float64 {
	if len(a) != len(b) {
		return -math.Inf(1)
	}

	var sum float64
	for i := 0; i < len(a); i++ {
		diff := float64(a[i]) - float64(b[i])
		sum += diff * diff
	}
	return -math.Sqrt(sum)
}
