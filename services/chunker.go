package services

import (
	"fmt"
	"strings"

	"docchat-backend/models"
)

// Chunker splits extracted text into fixed-size overlapping windows. It
// has no awareness of sentence or paragraph boundaries.
type Chunker struct {
	size    int
	overlap int
}

// NewChunker rejects overlap >= size up front: the window would never
// advance.
func NewChunker(size, overlap int) (*Chunker, error) {
	if size <= 0 {
		return nil, fmt.Errorf("chunk size must be positive, got %d", size)
	}
	if overlap < 0 || overlap >= size {
		return nil, fmt.Errorf("chunk overlap must be in [0, %d), got %d", size, overlap)
	}
	return &Chunker{size: size, overlap: overlap}, nil
}

// Chunk walks text with a sliding window, advancing by size-overlap each
// step. The last chunk is clamped to the end of the text and may be
// shorter than size. Empty or blank text yields no chunks.
func (c *Chunker) Chunk(text string) []models.Chunk {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	step := c.size - c.overlap
	var chunks []models.Chunk
	for i := 0; i < len(text); i += step {
		end := i + c.size
		if end > len(text) {
			end = len(text)
		}
		chunks = append(chunks, models.Chunk{
			Index: len(chunks),
			Text:  text[i:end],
		})
	}
	return chunks
}
