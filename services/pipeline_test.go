package services

import (
	"context"
	"errors"
	"testing"

	"docchat-backend/internal/session"
	"docchat-backend/models"
)

func newTestPipeline(t *testing.T, stub *providerStub) (*Pipeline, *session.Store) {
	t.Helper()

	chunker, err := NewChunker(50, 10)
	if err != nil {
		t.Fatalf("NewChunker: %v", err)
	}
	client := newStubClient(t, stub)
	store := session.NewStore()
	pipeline := NewPipeline(
		chunker,
		NewEmbeddingService(client),
		NewAnswerService(client, 0.3),
		store,
		3,
		0.3,
	)
	return pipeline, store
}

func TestPipeline_ProcessDocumentsAndAsk(t *testing.T) {
	stub := &providerStub{answerText: "the capital is Paris"}
	pipeline, _ := newTestPipeline(t, stub)

	result, err := pipeline.ProcessDocuments(context.Background(), []UploadedFile{
		{
			Name:        "geo.txt",
			ContentType: "text/plain",
			Data:        []byte("Paris is the capital of France. It is known for the Eiffel Tower and the Louvre museum."),
		},
	})
	if err != nil {
		t.Fatalf("ProcessDocuments: %v", err)
	}
	if result.SessionID == "" {
		t.Error("expected a session id")
	}
	if result.ChunkCount == 0 {
		t.Error("expected at least one chunk")
	}
	if len(result.ExtractionErrors) != 0 {
		t.Errorf("expected no extraction errors, got %v", result.ExtractionErrors)
	}

	embeds, _ := stub.counts()
	if embeds != result.ChunkCount {
		t.Errorf("expected one embed call per chunk, got %d calls for %d chunks", embeds, result.ChunkCount)
	}

	answer, err := pipeline.Ask(context.Background(), result.SessionID, "What is the capital of France?")
	if err != nil {
		t.Fatalf("Ask: %v", err)
	}
	if answer != "the capital is Paris" {
		t.Errorf("unexpected answer %q", answer)
	}

	history, err := pipeline.History(result.SessionID)
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(history) != 2 {
		t.Fatalf("expected 2 turns, got %d", len(history))
	}
	if history[0].Sender != models.SenderUser || history[0].Text != "What is the capital of France?" {
		t.Errorf("unexpected user turn %+v", history[0])
	}
	if history[1].Sender != models.SenderAssistant || history[1].Text != "the capital is Paris" {
		t.Errorf("unexpected assistant turn %+v", history[1])
	}
}

func TestPipeline_ProcessDocuments_NoFiles(t *testing.T) {
	stub := &providerStub{}
	pipeline, _ := newTestPipeline(t, stub)

	_, err := pipeline.ProcessDocuments(context.Background(), nil)
	if err == nil {
		t.Fatal("expected validation error for empty file list")
	}

	var appErr *models.AppError
	if !errors.As(err, &appErr) || appErr.Kind != models.ErrValidation {
		t.Fatalf("expected validation AppError, got %v", err)
	}
}

func TestPipeline_ProcessDocuments_AllFilesUnreadable(t *testing.T) {
	stub := &providerStub{}
	pipeline, _ := newTestPipeline(t, stub)

	_, err := pipeline.ProcessDocuments(context.Background(), []UploadedFile{
		{Name: "scan.png", ContentType: "image/png", Data: []byte{0x89}},
	})
	if err == nil {
		t.Fatal("expected error when no text could be extracted")
	}

	var appErr *models.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected AppError, got %v", err)
	}
	if appErr.Status != 422 {
		t.Errorf("expected status 422, got %d", appErr.Status)
	}
	if len(appErr.Details.([]string)) != 1 {
		t.Errorf("expected one collected extraction error, got %v", appErr.Details)
	}

	embeds, _ := stub.counts()
	if embeds != 0 {
		t.Errorf("expected no embed calls, got %d", embeds)
	}
}

func TestPipeline_ProcessDocuments_PartialExtractionFailure(t *testing.T) {
	stub := &providerStub{}
	pipeline, _ := newTestPipeline(t, stub)

	result, err := pipeline.ProcessDocuments(context.Background(), []UploadedFile{
		{Name: "scan.png", ContentType: "image/png", Data: []byte{0x89}},
		{Name: "notes.txt", ContentType: "text/plain", Data: []byte("usable content survives a bad sibling")},
	})
	if err != nil {
		t.Fatalf("ProcessDocuments: %v", err)
	}
	if len(result.ExtractionErrors) != 1 {
		t.Errorf("expected one extraction error, got %v", result.ExtractionErrors)
	}
	if result.ChunkCount == 0 {
		t.Error("expected chunks from the readable file")
	}
}

func TestPipeline_Ask_UnknownSession(t *testing.T) {
	stub := &providerStub{}
	pipeline, _ := newTestPipeline(t, stub)

	_, err := pipeline.Ask(context.Background(), "no-such-session", "anything?")
	if err == nil {
		t.Fatal("expected not found error")
	}

	var appErr *models.AppError
	if !errors.As(err, &appErr) || appErr.Kind != models.ErrNotFound {
		t.Fatalf("expected not_found AppError, got %v", err)
	}
}

func TestPipeline_Ask_BlankQuestion(t *testing.T) {
	stub := &providerStub{}
	pipeline, _ := newTestPipeline(t, stub)

	_, err := pipeline.Ask(context.Background(), "irrelevant", "   ")
	if err == nil {
		t.Fatal("expected validation error")
	}

	var appErr *models.AppError
	if !errors.As(err, &appErr) || appErr.Kind != models.ErrValidation {
		t.Fatalf("expected validation AppError, got %v", err)
	}

	embeds, generates := stub.counts()
	if embeds != 0 || generates != 0 {
		t.Errorf("expected no provider calls, got %d embeds and %d generates", embeds, generates)
	}
}

func TestPipeline_Ask_EmbedFailureAbortsBeforeGeneration(t *testing.T) {
	stub := &providerStub{}
	pipeline, store := newTestPipeline(t, stub)

	sess := store.Create([]models.EmbeddedChunk{
		{Chunk: models.Chunk{Index: 0, Text: "some content"}, Vector: []float64{12}},
	})

	stub.embedStatus = 429
	_, err := pipeline.Ask(context.Background(), sess.ID, "will the embed fail?")
	if err == nil {
		t.Fatal("expected upstream error")
	}

	var appErr *models.AppError
	if !errors.As(err, &appErr) || appErr.Kind != models.ErrUpstream {
		t.Fatalf("expected upstream AppError, got %v", err)
	}
	if appErr.Status != 429 {
		t.Errorf("expected status 429, got %d", appErr.Status)
	}

	_, generates := stub.counts()
	if generates != 0 {
		t.Errorf("expected no generation call after embed failure, got %d", generates)
	}

	history, ok := store.History(sess.ID)
	if !ok || len(history) != 0 {
		t.Errorf("expected empty history after failed ask, got %v", history)
	}
}
