package services

import (
	"strings"

	"docchat-backend/models"
)

// NoRelevantContext is returned when no chunk clears the similarity
// threshold. Callers can compare against it to tell "nothing matched"
// apart from real document content.
const NoRelevantContext = "No highly relevant information found in the documents for this specific question."

const chunkSeparator = "\n---\n"

// AssembleContext selects the first topK ranked entries whose similarity
// exceeds threshold and joins their text in ranked order.
func AssembleContext(ranked []models.SimilarityResult, topK int, threshold float64) string {
	if topK > len(ranked) {
		topK = len(ranked)
	}

	var selected []string
	for _, result := range ranked[:topK] {
		if result.Similarity > threshold {
			selected = append(selected, result.Text)
		}
	}

	if len(selected) == 0 {
		return NoRelevantContext
	}
	return strings.Join(selected, chunkSeparator)
}
