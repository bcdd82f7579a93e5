package services

import (
	"testing"

	"docchat-backend/models"
)

func ranked(similarities ...float64) []models.SimilarityResult {
	results := make([]models.SimilarityResult, len(similarities))
	for i, s := range similarities {
		results[i] = models.SimilarityResult{
			EmbeddedChunk: models.EmbeddedChunk{
				Chunk: models.Chunk{Index: i, Text: string(rune('A' + i))},
			},
			Similarity: s,
		}
	}
	return results
}

func TestAssembleContext_JoinsTopChunks(t *testing.T) {
	got := AssembleContext(ranked(0.9, 0.8, 0.7, 0.6), 3, 0.3)
	want := "A\n---\nB\n---\nC"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestAssembleContext_ThresholdFiltersWithinTopK(t *testing.T) {
	// third-ranked chunk is below the floor, so only two survive
	got := AssembleContext(ranked(0.9, 0.5, 0.1, 0.05), 3, 0.3)
	want := "A\n---\nB"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestAssembleContext_SentinelWhenNothingClears(t *testing.T) {
	got := AssembleContext(ranked(0.2, 0.1, 0.0), 3, 0.3)
	if got != NoRelevantContext {
		t.Errorf("expected sentinel, got %q", got)
	}

	if got := AssembleContext(nil, 3, 0.3); got != NoRelevantContext {
		t.Errorf("expected sentinel for empty ranking, got %q", got)
	}
}

func TestAssembleContext_FewerResultsThanTopK(t *testing.T) {
	got := AssembleContext(ranked(0.9), 3, 0.3)
	if got != "A" {
		t.Errorf("expected single chunk %q, got %q", "A", got)
	}
}

func TestAssembleContext_ThresholdIsExclusive(t *testing.T) {
	if got := AssembleContext(ranked(0.3), 3, 0.3); got != NoRelevantContext {
		t.Errorf("similarity equal to threshold should not qualify, got %q", got)
	}
}
