package core

import "math"

// CosineSimilarity computes the cosine of the angle between two vectors,
// bounded to [-1, 1].
//
// Vectors of different lengths are compared by zero-padding the shorter
// one. This is a known approximation, not a metric-preserving operation;
// it exists so that corpora embedded with different models can still be
// scored instead of failing. A zero-norm vector scores 0.0 against
// anything ("no signal" rather than undefined). Never panics.
func CosineSimilarity(a, b []float32) float64 {
	n := len(a)
	if len(b) > n {
		n = len(b)
	}
	if n == 0 {
		return 0.0
	}

	var dot, normA, normB float64
	for i := 0; i < n; i++ {
		var x, y float64
		if i < len(a) {
			x = float64(a[i])
		}
		if i < len(b) {
			y = float64(b[i])
		}
		dot += x * y
		normA += x * x
		normB += y * y
	}

	if normA == 0 || normB == 0 {
		return 0.0
	}

	sim := dot / (math.Sqrt(normA) * math.Sqrt(normB))
	if math.IsNaN(sim) || math.IsInf(sim, 0) {
		return 0.0
	}
	// Clamp rounding drift
	if sim > 1.0 {
		sim = 1.0
	}
	if sim < -1.0 {
		sim = -1.0
	}
	return sim
}

// NormalizeVector scales a vector to unit length. Zero vectors are
// returned unchanged.
func NormalizeVector(v []float32) []float32 {
	var sumSquares float64
	for _, x := range v {
		sumSquares += float64(x) * float64(x)
	}
	if sumSquares == 0 {
		return v
	}

	norm := math.Sqrt(sumSquares)
	normalized := make([]float32, len(v))
	for i, x := range v {
		normalized[i] = float32(float64(x) / norm)
	}
	return normalized
}
