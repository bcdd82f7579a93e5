package services

import (
	"context"
	"fmt"
	"strings"

	"docchat-backend/internal/ai"
	"docchat-backend/internal/logger"
	"docchat-backend/models"
)

// AnswerFallback is the soft-fail reply used when the provider responds
// successfully but without a usable candidate. Keeps the chat usable
// instead of surfacing a hard error.
const AnswerFallback = "Sorry, I couldn't formulate a response based on the provided information."

const promptTemplate = `
Answer the question as detailed as possible from the provided context, make sure to provide all the details, if the answer is not in
provided context just say, "answer is not available in the context", don't provide the wrong answer.

Context:
%s

Question:
%s

Answer:
`

// AnswerService forwards assembled context plus a question to the
// generation endpoint.
type AnswerService struct {
	client      *ai.Client
	temperature float64
}

func NewAnswerService(client *ai.Client, temperature float64) *AnswerService {
	return &AnswerService{client: client, temperature: temperature}
}

// Answer validates the question, builds the grounding prompt, and returns
// the first candidate's first text part.
func (s *AnswerService) Answer(ctx context.Context, contextText, question string) (string, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return "", models.NewValidationError(`Invalid request: "question" is required and cannot be empty.`)
	}

	if strings.TrimSpace(contextText) == "" {
		contextText = "No context provided."
	}

	prompt := fmt.Sprintf(promptTemplate, contextText, question)

	response, err := s.client.GenerateContent(ctx, prompt, s.temperature)
	if err != nil {
		return "", err
	}

	if len(response.Candidates) == 0 || len(response.Candidates[0].Content.Parts) == 0 {
		logger.Warn("No usable candidate in generation response, using fallback")
		return AnswerFallback, nil
	}
	return response.Candidates[0].Content.Parts[0].Text, nil
}
