package util

import "math"

// Clamp bounds v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Mean averages the present values only. Returns 0 for an empty slice.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// MeanPtr averages non-nil values; nils are excluded, never coerced to 0.
// The second return reports how many values were present.
func MeanPtr(values []*float64) (float64, int) {
	sum := 0.0
	count := 0
	for _, v := range values {
		if v == nil {
			continue
		}
		sum += *v
		count++
	}
	if count == 0 {
		return 0, 0
	}
	return sum / float64(count), count
}

// CosineSimilarity between two vectors. Mismatched lengths or a zero vector
// on either side yield 0, never NaN.
func CosineSimilarity(a, b []float64) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}

	dot, normA, normB := 0.0, 0.0, 0.0
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}

	if normA == 0 || normB == 0 {
		return 0
	}

	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// WeightedMeanVectors computes the weighted mean of same-length vectors.
// Vectors whose length differs from dim are skipped. When no vector (or no
// positive weight) qualifies, the result is the zero vector of length dim.
func WeightedMeanVectors(vectors [][]float64, weights []float64, dim int) []float64 {
	result := make([]float64, dim)
	totalWeight := 0.0

	for i, vec := range vectors {
		if len(vec) != dim {
			continue
		}
		w := 1.0
		if i < len(weights) {
			w = weights[i]
		}
		if w <= 0 {
			continue
		}
		for j, v := range vec {
			result[j] += v * w
		}
		totalWeight += w
	}

	if totalWeight == 0 {
		return result
	}

	for j := range result {
		result[j] /= totalWeight
	}
	return result
}
