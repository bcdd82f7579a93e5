package routes

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"docchat-backend/internal/logger"
	"docchat-backend/models"
	"docchat-backend/services"
	"docchat-backend/utils"
)

// SetupGeminiRoutes registers the stateless relay endpoints. The API key
// stays server-side; clients only ever see vectors and answers.
func SetupGeminiRoutes(router *gin.Engine, embedder *services.EmbeddingService, answerer *services.AnswerService) {
	api := router.Group("/api/gemini")

	api.POST("/embed", func(c *gin.Context) {
		var req models.EmbedRequest
		if err := c.ShouldBindJSON(&req); err != nil || len(req.Texts) == 0 {
			utils.RespondWithBadRequest(c, `Invalid request: "texts" must be a non-empty array.`)
			return
		}

		logger.Debug("Embed request received", "texts", len(req.Texts))

		embeddings, err := embedder.EmbedTexts(c.Request.Context(), req.Texts)
		if err != nil {
			logger.Error("Embed request failed", "error", err)
			utils.RespondWithAppError(c, err, "Failed to get embeddings")
			return
		}

		c.JSON(http.StatusOK, models.EmbedResponse{Embeddings: embeddings})
	})

	api.POST("/chat", func(c *gin.Context) {
		var req models.ChatRequest
		if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Question) == "" {
			utils.RespondWithBadRequest(c, `Invalid request: "question" is required and cannot be empty.`)
			return
		}

		logger.Debug("Chat request received", "question", req.Question)

		answer, err := answerer.Answer(c.Request.Context(), req.Context, req.Question)
		if err != nil {
			logger.Error("Chat request failed", "error", err)
			utils.RespondWithAppError(c, err, "Failed to get chat response")
			return
		}

		c.JSON(http.StatusOK, models.ChatResponse{Answer: answer})
	})
}
