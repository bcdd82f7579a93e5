package services

import (
	"context"
	"strings"

	"docchat-backend/internal/ai"
	"docchat-backend/internal/logger"
	"docchat-backend/models"
)

// EmbeddingService turns chunks and questions into vectors via the Gemini
// embedding endpoint.
type EmbeddingService struct {
	client *ai.Client
}

func NewEmbeddingService(client *ai.Client) *EmbeddingService {
	return &EmbeddingService{client: client}
}

// EmbedTexts returns one vector per input text, preserving input order.
// Blank inputs are skipped without a provider call and yield an empty
// vector. Embedding is all-or-nothing: the first provider failure aborts
// the whole batch with no partial results.
func (s *EmbeddingService) EmbedTexts(ctx context.Context, texts []string) ([][]float64, error) {
	embeddings := make([][]float64, 0, len(texts))
	for i, text := range texts {
		trimmed := strings.TrimSpace(text)
		if trimmed == "" {
			logger.Warn("Skipping empty or whitespace-only text chunk for embedding", "index", i)
			embeddings = append(embeddings, []float64{})
			continue
		}

		vector, err := s.client.EmbedContent(ctx, trimmed)
		if err != nil {
			return nil, err
		}
		if vector == nil {
			vector = []float64{}
		}
		embeddings = append(embeddings, vector)
	}
	return embeddings, nil
}

// EmbedChunks pairs each chunk with its vector, one embedding attempt per
// chunk.
func (s *EmbeddingService) EmbedChunks(ctx context.Context, chunks []models.Chunk) ([]models.EmbeddedChunk, error) {
	texts := make([]string, len(chunks))
	for i, chunk := range chunks {
		texts[i] = chunk.Text
	}

	vectors, err := s.EmbedTexts(ctx, texts)
	if err != nil {
		return nil, err
	}

	embedded := make([]models.EmbeddedChunk, len(chunks))
	for i, chunk := range chunks {
		embedded[i] = models.EmbeddedChunk{Chunk: chunk, Vector: vectors[i]}
	}
	return embedded, nil
}

// EmbedQuery embeds a single question.
func (s *EmbeddingService) EmbedQuery(ctx context.Context, question string) ([]float64, error) {
	vectors, err := s.EmbedTexts(ctx, []string{question})
	if err != nil {
		return nil, err
	}
	return vectors[0], nil
}
