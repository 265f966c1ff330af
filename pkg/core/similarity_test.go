package core

import (
	"math"
	"testing"
)

func TestSimilarityFunctions(t *testing.T) {
	tests := []struct {
		name     string
		vectorA  []float32
		vectorB  []float32
		expected map[string]float64
		epsilon  float64
	}{
		{
			name:    "identical vectors",
			vectorA: []float32{1.0, 0.0, 0.0},
			vectorB: []float32{1.0, 0.0, 0.0},
			expected: map[string]float64{
				"cosine": 1.0,
				"dot":    1.0,
			},
			epsilon: 1e-6,
		},
		{
			name:    "orthogonal vectors",
			vectorA: []float32{1.0, 0.0},
			vectorB: []float32{0.0, 1.0},
			expected: map[string]float64{
				"cosine": 0.0,
				"dot":    0.0,
			},
			epsilon: 1e-6,
		},
		{
			name:    "opposite vectors",
			vectorA: []float32{1.0, 0.0},
			vectorB: []float32{-1.0, 0.0},
			expected: map[string]float64{
				"cosine": -1.0,
				"dot":    -1.0,
			},
			epsilon: 1e-6,
		},
		{
			name:    "zero vector scores zero",
			vectorA: []float32{0.0, 0.0},
			vectorB: []float32{1.0, 2.0},
			expected: map[string]float64{
				"cosine": 0.0,
				"dot":    0.0,
			},
			epsilon: 1e-6,
		},
		{
			name:    "mismatched lengths score zero",
			vectorA: []float32{1.0, 2.0, 3.0},
			vectorB: []float32{1.0, 2.0},
			expected: map[string]float64{
				"cosine": 0.0,
				"dot":    0.0,
			},
			epsilon: 1e-6,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cosine := CosineSimilarity(tt.vectorA, tt.vectorB)
			if math.Abs(cosine-tt.expected["cosine"]) > tt.epsilon {
				t.Errorf("CosineSimilarity() = %v, want %v", cosine, tt.expected["cosine"])
			}

			dot := DotProduct(tt.vectorA, tt.vectorB)
			if math.Abs(dot-tt.expected["dot"]) > tt.epsilon {
				t.Errorf("DotProduct() = %v, want %v", dot, tt.expected["dot"])
			}
		})
	}
}

func TestEuclideanDist(t *testing.T) {
	got := EuclideanDist([]float32{0, 0}, []float32{3, 4})
	if math.Abs(got-(-5.0)) > 1e-6 {
		t.Errorf("EuclideanDist() = %v, want -5.0", got)
	}

	if !math.IsInf(EuclideanDist([]float32{1}, []float32{1, 2}), -1) {
		t.Error("expected -Inf for mismatched lengths")
	}
}
