package models

import "time"

// Chunk is a contiguous window of the combined document text, identified
// by its position in the chunk sequence. Immutable once created.
type Chunk struct {
	Index int    `json:"index"`
	Text  string `json:"text"`
}

// EmbeddedChunk pairs a chunk with its embedding vector. The vector is
// empty when the chunk was blank and never sent to the provider.
type EmbeddedChunk struct {
	Chunk
	Vector []float64 `json:"vector,omitempty"`
}

// SimilarityResult annotates an embedded chunk with its cosine similarity
// against the current query vector. It only exists for the duration of a
// single question-answering call.
type SimilarityResult struct {
	EmbeddedChunk
	Similarity float64 `json:"similarity"`
}

// Chat turn senders.
const (
	SenderUser      = "user"
	SenderAssistant = "assistant"
)

// ChatTurn is one exchange unit in a session's chat history.
type ChatTurn struct {
	Sender    string    `json:"sender"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}
