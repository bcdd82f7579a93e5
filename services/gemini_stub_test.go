package services

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"docchat-backend/internal/ai"
	"docchat-backend/internal/config"
)

// providerStub fakes the Gemini REST endpoints so pipeline tests never
// touch the network.
type providerStub struct {
	mu            sync.Mutex
	embedCalls    int
	generateCalls int
	lastGenerate  ai.GenerateContentRequest

	embedStatus int // when >= 400, embed calls fail with this status
	answerText  string
	noCandidate bool
}

func (p *providerStub) handler(t *testing.T) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("key") == "" {
			t.Error("provider called without api key")
		}

		p.mu.Lock()
		defer p.mu.Unlock()

		switch {
		case r.URL.Path == "/embedding-001:embedContent":
			p.embedCalls++
			if p.embedStatus >= 400 {
				w.WriteHeader(p.embedStatus)
				json.NewEncoder(w).Encode(map[string]any{
					"error": map[string]any{
						"code":    p.embedStatus,
						"message": "Resource has been exhausted",
						"status":  "RESOURCE_EXHAUSTED",
					},
				})
				return
			}

			var req ai.EmbedContentRequest
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				t.Errorf("bad embed request body: %v", err)
			}
			// deterministic one-dimensional vector derived from input length
			text := req.Content.Parts[0].Text
			json.NewEncoder(w).Encode(ai.EmbedContentResponse{
				Embedding: &ai.ContentEmbedding{Values: []float64{float64(len(text))}},
			})

		case r.URL.Path == "/gemini-1.5-flash-latest:generateContent":
			p.generateCalls++
			if err := json.NewDecoder(r.Body).Decode(&p.lastGenerate); err != nil {
				t.Errorf("bad generate request body: %v", err)
			}
			if p.noCandidate {
				json.NewEncoder(w).Encode(ai.GenerateContentResponse{})
				return
			}
			answer := p.answerText
			if answer == "" {
				answer = "stub answer"
			}
			json.NewEncoder(w).Encode(ai.GenerateContentResponse{
				Candidates: []ai.Candidate{
					{Content: ai.Content{Parts: []ai.Part{{Text: answer}}}},
				},
			})

		default:
			t.Errorf("unexpected provider path %q", r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}
}

func (p *providerStub) counts() (embeds, generates int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.embedCalls, p.generateCalls
}

func (p *providerStub) lastPrompt() (prompt string, temperature float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.lastGenerate.Contents) == 0 || len(p.lastGenerate.Contents[0].Parts) == 0 {
		return "", 0
	}
	return p.lastGenerate.Contents[0].Parts[0].Text, p.lastGenerate.GenerationConfig.Temperature
}

func newStubClient(t *testing.T, stub *providerStub) *ai.Client {
	t.Helper()
	srv := httptest.NewServer(stub.handler(t))
	t.Cleanup(srv.Close)

	cfg := &config.Config{
		GeminiAPIKey:    "test-key",
		GeminiAPIBase:   srv.URL,
		EmbeddingModel:  "embedding-001",
		GenerationModel: "gemini-1.5-flash-latest",
	}
	return ai.NewClient(cfg)
}
