package models

import "time"

// EmbedRequest is the body of POST /api/gemini/embed.
type EmbedRequest struct {
	Texts []string `json:"texts"`
}

// EmbedResponse returns one vector per input text, in input order. Blank
// inputs map to empty vectors.
type EmbedResponse struct {
	Embeddings [][]float64 `json:"embeddings"`
}

// ChatRequest is the body of POST /api/gemini/chat.
type ChatRequest struct {
	Context  string `json:"context"`
	Question string `json:"question"`
}

// ChatResponse carries the completion text.
type ChatResponse struct {
	Answer string `json:"answer"`
}

// UploadResponse is returned after a document-processing run.
type UploadResponse struct {
	SessionID        string    `json:"session_id"`
	ChunkCount       int       `json:"chunk_count"`
	ExtractionErrors []string  `json:"extraction_errors,omitempty"`
	ProcessedAt      time.Time `json:"processed_at"`
}

// AskRequest is the body of POST /api/ask.
type AskRequest struct {
	SessionID string `json:"session_id"`
	Question  string `json:"question"`
}

// AskResponse carries the answer for a session question.
type AskResponse struct {
	SessionID string    `json:"session_id"`
	Answer    string    `json:"answer"`
	Timestamp time.Time `json:"timestamp"`
}

// HistoryResponse is the ordered chat history of a session.
type HistoryResponse struct {
	SessionID string     `json:"session_id"`
	Turns     []ChatTurn `json:"turns"`
	Total     int        `json:"total"`
}
