package services

import (
	"context"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"docchat-backend/internal/logger"
	"docchat-backend/internal/session"
	"docchat-backend/models"
)

// Pipeline wires the retrieval components together: extract, chunk, embed,
// rank, assemble, answer. Each run is sequential; the session store is the
// only shared state.
type Pipeline struct {
	chunker   *Chunker
	embedder  *EmbeddingService
	answerer  *AnswerService
	sessions  *session.Store
	topK      int
	threshold float64
}

func NewPipeline(chunker *Chunker, embedder *EmbeddingService, answerer *AnswerService,
	sessions *session.Store, topK int, threshold float64) *Pipeline {
	return &Pipeline{
		chunker:   chunker,
		embedder:  embedder,
		answerer:  answerer,
		sessions:  sessions,
		topK:      topK,
		threshold: threshold,
	}
}

// ProcessResult summarizes a document-processing run.
type ProcessResult struct {
	SessionID        string
	ChunkCount       int
	ExtractionErrors []string
}

// ProcessDocuments extracts text from every file, chunks and embeds the
// combined text, and opens a new session owning the result. Extraction
// failures are collected per file and do not abort the run; embedding is
// all-or-nothing.
func (p *Pipeline) ProcessDocuments(ctx context.Context, files []UploadedFile) (*ProcessResult, error) {
	tracer := otel.Tracer("pipeline")
	ctx, span := tracer.Start(ctx, "pipeline.process_documents")
	defer span.End()
	span.SetAttributes(attribute.Int("pipeline.file_count", len(files)))

	if len(files) == 0 {
		return nil, models.NewValidationError("at least one file is required")
	}

	var combined strings.Builder
	var extractionErrors []string
	for _, file := range files {
		text, err := ExtractText(file)
		if err != nil {
			logger.Warn("Extraction failed", "file", file.Name, "error", err)
			extractionErrors = append(extractionErrors, err.Error())
			continue
		}
		combined.WriteString(text)
		combined.WriteString("\n\n")
	}

	if strings.TrimSpace(combined.String()) == "" {
		return nil, &models.AppError{
			Kind:    models.ErrValidation,
			Message: "no text could be extracted from the provided files",
			Status:  422,
			Details: extractionErrors,
		}
	}

	chunks := p.chunker.Chunk(combined.String())
	span.SetAttributes(attribute.Int("pipeline.chunk_count", len(chunks)))

	embedded, err := p.embedder.EmbedChunks(ctx, chunks)
	if err != nil {
		return nil, err
	}

	sess := p.sessions.Create(embedded)
	logger.Info("Documents processed", "session_id", sess.ID, "chunks", len(embedded),
		"extraction_errors", len(extractionErrors))

	return &ProcessResult{
		SessionID:        sess.ID,
		ChunkCount:       len(embedded),
		ExtractionErrors: extractionErrors,
	}, nil
}

// Ask answers a question against a session's chunks and records both
// sides of the exchange in the session history.
func (p *Pipeline) Ask(ctx context.Context, sessionID, question string) (string, error) {
	tracer := otel.Tracer("pipeline")
	ctx, span := tracer.Start(ctx, "pipeline.ask")
	defer span.End()

	question = strings.TrimSpace(question)
	if question == "" {
		return "", models.NewValidationError(`Invalid request: "question" is required and cannot be empty.`)
	}

	corpus, ok := p.sessions.Chunks(sessionID)
	if !ok {
		return "", models.NewNotFoundError("session not found")
	}

	queryVector, err := p.embedder.EmbedQuery(ctx, question)
	if err != nil {
		return "", err
	}
	if len(queryVector) == 0 {
		return "", models.NewUpstreamError(500, "could not get a valid embedding for the question", nil)
	}

	ranked := RankChunks(queryVector, corpus)
	contextText := AssembleContext(ranked, p.topK, p.threshold)
	span.SetAttributes(attribute.Bool("pipeline.context_found", contextText != NoRelevantContext))

	answer, err := p.answerer.Answer(ctx, contextText, question)
	if err != nil {
		return "", err
	}

	now := time.Now()
	p.sessions.AppendTurn(sessionID, models.ChatTurn{Sender: models.SenderUser, Text: question, Timestamp: now})
	p.sessions.AppendTurn(sessionID, models.ChatTurn{Sender: models.SenderAssistant, Text: answer, Timestamp: time.Now()})

	return answer, nil
}

// History returns a session's chat turns.
func (p *Pipeline) History(sessionID string) ([]models.ChatTurn, error) {
	turns, ok := p.sessions.History(sessionID)
	if !ok {
		return nil, models.NewNotFoundError("session not found")
	}
	return turns, nil
}
