package core

import (
	"math"
	"testing"
)

func TestCosineSimilarityIdentical(t *testing.T) {
	v := []float32{0.5, 0.3, 0.2}
	got := CosineSimilarity(v, v)
	if math.Abs(got-1.0) > 1e-9 {
		t.Fatalf("expected 1.0 for identical vectors, got %v", got)
	}
}

func TestCosineSimilarityOpposite(t *testing.T) {
	a := []float32{1, 2, 3}
	b := []float32{-1, -2, -3}
	got := CosineSimilarity(a, b)
	if math.Abs(got+1.0) > 1e-9 {
		t.Fatalf("expected -1.0 for opposite vectors, got %v", got)
	}
}

func TestCosineSimilarityOrthogonal(t *testing.T) {
	got := CosineSimilarity([]float32{1, 0}, []float32{0, 1})
	if math.Abs(got) > 1e-9 {
		t.Fatalf("expected 0.0 for orthogonal vectors, got %v", got)
	}
}

func TestCosineSimilarityZeroVector(t *testing.T) {
	if got := CosineSimilarity([]float32{0, 0, 0}, []float32{1, 2, 3}); got != 0.0 {
		t.Fatalf("expected 0.0 against zero vector, got %v", got)
	}
	if got := CosineSimilarity(nil, nil); got != 0.0 {
		t.Fatalf("expected 0.0 for empty vectors, got %v", got)
	}
}

func TestCosineSimilaritySymmetric(t *testing.T) {
	a := []float32{0.1, 0.7, 0.2, 0.4}
	b := []float32{0.9, 0.1, 0.5, 0.3}
	if CosineSimilarity(a, b) != CosineSimilarity(b, a) {
		t.Fatal("similarity should be symmetric")
	}
}

func TestCosineSimilarityDimensionMismatch(t *testing.T) {
	// Shorter vector is zero-padded, so the shared prefix decides the score
	a := []float32{1, 0}
	b := []float32{1, 0, 0, 0}
	got := CosineSimilarity(a, b)
	if math.Abs(got-1.0) > 1e-9 {
		t.Fatalf("expected 1.0 with zero padding, got %v", got)
	}
}

func TestNormalizeVector(t *testing.T) {
	v := NormalizeVector([]float32{3, 4})
	var sumSquares float64
	for _, x := range v {
		sumSquares += float64(x) * float64(x)
	}
	if math.Abs(sumSquares-1.0) > 1e-6 {
		t.Fatalf("expected unit length, got norm^2 = %v", sumSquares)
	}
}

func TestNormalizeVectorZero(t *testing.T) {
	v := []float32{0, 0, 0}
	got := NormalizeVector(v)
	for _, x := range got {
		if x != 0 {
			t.Fatalf("zero vector should stay zero, got %v", got)
		}
	}
}
