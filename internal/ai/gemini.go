package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sony/gobreaker"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/time/rate"

	"docchat-backend/internal/config"
	"docchat-backend/internal/logger"
	"docchat-backend/models"
)

// Request/response shapes of the generativelanguage v1beta REST API.

type Part struct {
	Text string `json:"text"`
}

type Content struct {
	Parts []Part `json:"parts"`
}

type EmbedContentRequest struct {
	Content Content `json:"content"`
}

type ContentEmbedding struct {
	Values []float64 `json:"values"`
}

type EmbedContentResponse struct {
	Embedding *ContentEmbedding `json:"embedding"`
}

type GenerationConfig struct {
	Temperature float64 `json:"temperature"`
}

type GenerateContentRequest struct {
	Contents         []Content        `json:"contents"`
	GenerationConfig GenerationConfig `json:"generationConfig"`
}

type Candidate struct {
	Content Content `json:"content"`
}

type GenerateContentResponse struct {
	Candidates []Candidate `json:"candidates"`
}

type apiError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Status  string `json:"status"`
	Details any    `json:"details,omitempty"`
}

type apiErrorEnvelope struct {
	Error *apiError `json:"error"`
}

// Free tier allows ~150 embedding requests per minute; stay under it.
const (
	providerRPM   = 120
	providerBurst = 10
)

// Client talks to the Gemini REST API. The API key never leaves this
// package; callers only see vectors, completions, and AppErrors.
type Client struct {
	apiKey          string
	baseURL         string
	embeddingModel  string
	generationModel string
	httpClient      *http.Client
	breaker         *gobreaker.CircuitBreaker
	limiter         *rate.Limiter
}

func NewClient(cfg *config.Config) *Client {
	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "GeminiAPI",
		MaxRequests: 5,
		Interval:    10 * time.Second,
		Timeout:     60 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= 3 && failureRatio >= 0.6
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.Warn("Circuit breaker state change", "name", name, "from", from.String(), "to", to.String())
		},
	})

	return &Client{
		apiKey:          cfg.GeminiAPIKey,
		baseURL:         cfg.GeminiAPIBase,
		embeddingModel:  cfg.EmbeddingModel,
		generationModel: cfg.GenerationModel,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		breaker: breaker,
		limiter: rate.NewLimiter(rate.Limit(float64(providerRPM)/60.0), providerBurst),
	}
}

// EmbedContent returns the embedding vector for a single text. A nil
// vector means the provider responded without an embedding.
func (c *Client) EmbedContent(ctx context.Context, text string) ([]float64, error) {
	request := EmbedContentRequest{
		Content: Content{Parts: []Part{{Text: text}}},
	}

	var response EmbedContentResponse
	if err := c.post(ctx, c.embeddingModel+":embedContent", request, &response); err != nil {
		return nil, err
	}

	if response.Embedding == nil {
		return nil, nil
	}
	return response.Embedding.Values, nil
}

// GenerateContent runs a completion for the given prompt.
func (c *Client) GenerateContent(ctx context.Context, prompt string, temperature float64) (*GenerateContentResponse, error) {
	request := GenerateContentRequest{
		Contents:         []Content{{Parts: []Part{{Text: prompt}}}},
		GenerationConfig: GenerationConfig{Temperature: temperature},
	}

	var response GenerateContentResponse
	if err := c.post(ctx, c.generationModel+":generateContent", request, &response); err != nil {
		return nil, err
	}
	return &response, nil
}

func (c *Client) post(ctx context.Context, modelAction string, payload any, out any) error {
	tracer := otel.Tracer("gemini-client")
	ctx, span := tracer.Start(ctx, "gemini.request")
	defer span.End()
	span.SetAttributes(attribute.String("gemini.model_action", modelAction))

	if err := c.limiter.Wait(ctx); err != nil {
		span.SetAttributes(attribute.Bool("gemini.rate_limited", true))
		return err
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	_, err = c.breaker.Execute(func() (interface{}, error) {
		url := fmt.Sprintf("%s/%s?key=%s", c.baseURL, modelAction, c.apiKey)

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, models.NewUpstreamError(http.StatusInternalServerError,
				"Internal server error while contacting Gemini API", err.Error())
		}
		defer resp.Body.Close()

		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, models.NewUpstreamError(http.StatusInternalServerError,
				"failed to read Gemini API response", err.Error())
		}

		span.SetAttributes(attribute.Int("gemini.status_code", resp.StatusCode))

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			var envelope apiErrorEnvelope
			if jsonErr := json.Unmarshal(body, &envelope); jsonErr != nil || envelope.Error == nil {
				return nil, models.NewUpstreamError(resp.StatusCode,
					"Gemini API returned non-JSON response", string(body))
			}
			return nil, models.NewUpstreamError(resp.StatusCode, envelope.Error.Message, envelope.Error.Details)
		}

		if err := json.Unmarshal(body, out); err != nil {
			return nil, models.NewUpstreamError(resp.StatusCode,
				"Gemini API returned non-JSON response", string(body))
		}
		return nil, nil
	})

	if err == gobreaker.ErrOpenState || err == gobreaker.ErrTooManyRequests {
		span.SetAttributes(attribute.Bool("gemini.circuit_breaker_open", true))
		return models.NewUpstreamError(http.StatusServiceUnavailable,
			"Gemini API temporarily unavailable", err.Error())
	}
	return err
}
