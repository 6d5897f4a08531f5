// Package similarity compares embedding vectors.
package similarity

import (
	"errors"
	"math"
)

var (
	ErrEmptyVector       = errors.New("vectors must not be empty")
	ErrDimensionMismatch = errors.New("vectors must have same dimension")
)

// Cosine returns the cosine similarity of a and b in [-1, 1]. Zero-magnitude
// vectors have similarity 0.
func Cosine(a, b []float64) (float64, error) {
	if len(a) == 0 || len(b) == 0 {
		return 0, ErrEmptyVector
	}
	if len(a) != len(b) {
		return 0, ErrDimensionMismatch
	}

	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}

	if normA == 0 || normB == 0 {
		return 0, nil
	}

	sim := dot / (math.Sqrt(normA) * math.Sqrt(normB))

	// floating point error can push identical vectors slightly past 1
	return math.Max(-1, math.Min(1, sim)), nil
}

// ToPercent maps a similarity in [-1, 1] linearly onto [0, 100].
func ToPercent(sim float64) int {
	if math.IsNaN(sim) {
		return 0
	}
	return Clamp(int(math.Round((sim+1)/2*100)))
}

// MatchPercent scores two embeddings as a percentage. It returns 0 when either
// vector is empty, the dimensions differ or a vector has zero magnitude.
func MatchPercent(a, b []float64) int {
	if len(a) == 0 || len(b) == 0 || len(a) != len(b) {
		return 0
	}
	if isZero(a) || isZero(b) {
		return 0
	}

	sim, err := Cosine(a, b)
	if err != nil {
		return 0
	}

	return ToPercent(sim)
}

// Clamp bounds a score to [0, 100].
func Clamp(score int) int {
	switch {
	case score < 0:
		return 0
	case score > 100:
		return 100
	default:
		return score
	}
}

func isZero(v []float64) bool {
	for _, x := range v {
		if x != 0 {
			return false
		}
	}
	return true
}
