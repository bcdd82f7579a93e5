package services

import (
	"math"
	"sort"

	"docchat-backend/models"
)

// CosineSimilarity returns 0 when either vector is empty, the lengths
// differ, or either norm is zero. No signal, not an error.
func CosineSimilarity(a, b []float64) float64 {
	if len(a) == 0 || len(b) == 0 || len(a) != len(b) {
		return 0
	}

	var dot, normA, normB float64
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

// RankChunks scores every chunk against the query vector and returns them
// sorted by similarity descending. The sort is stable so ties keep corpus
// order.
func RankChunks(query []float64, corpus []models.EmbeddedChunk) []models.SimilarityResult {
	results := make([]models.SimilarityResult, len(corpus))
	for i, chunk := range corpus {
		results[i] = models.SimilarityResult{
			EmbeddedChunk: chunk,
			Similarity:    CosineSimilarity(query, chunk.Vector),
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Similarity > results[j].Similarity
	})
	return results
}
