package routes

import (
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"docchat-backend/internal/config"
	"docchat-backend/internal/logger"
	"docchat-backend/models"
	"docchat-backend/services"
	"docchat-backend/utils"
)

// SetupDocumentRoutes registers the session-backed document chat surface:
// upload and process documents, ask questions against a session, read the
// chat history back.
func SetupDocumentRoutes(router *gin.Engine, cfg *config.Config, pipeline *services.Pipeline) {
	api := router.Group("/api")

	api.POST("/documents", func(c *gin.Context) {
		form, err := c.MultipartForm()
		if err != nil {
			utils.RespondWithBadRequest(c, "Invalid multipart form")
			return
		}

		fileHeaders := form.File["files"]
		if len(fileHeaders) == 0 {
			utils.RespondWithBadRequest(c, `Invalid request: "files" must contain at least one document.`)
			return
		}

		var files []services.UploadedFile
		for _, header := range fileHeaders {
			if header.Size > cfg.MaxFileSize {
				utils.RespondWithError(c, http.StatusRequestEntityTooLarge,
					"File too large", gin.H{"file": header.Filename, "max_bytes": cfg.MaxFileSize})
				return
			}

			f, err := header.Open()
			if err != nil {
				utils.RespondWithError(c, http.StatusInternalServerError, "Failed to read uploaded file",
					gin.H{"file": header.Filename})
				return
			}
			data, err := io.ReadAll(f)
			f.Close()
			if err != nil {
				utils.RespondWithError(c, http.StatusInternalServerError, "Failed to read uploaded file",
					gin.H{"file": header.Filename})
				return
			}

			files = append(files, services.UploadedFile{
				Name:        header.Filename,
				ContentType: header.Header.Get("Content-Type"),
				Data:        data,
			})
		}

		result, err := pipeline.ProcessDocuments(c.Request.Context(), files)
		if err != nil {
			logger.Error("Document processing failed", "error", err)
			utils.RespondWithAppError(c, err, "Failed to process documents")
			return
		}

		c.JSON(http.StatusOK, models.UploadResponse{
			SessionID:        result.SessionID,
			ChunkCount:       result.ChunkCount,
			ExtractionErrors: result.ExtractionErrors,
			ProcessedAt:      time.Now(),
		})
	})

	api.POST("/ask", func(c *gin.Context) {
		var req models.AskRequest
		if err := c.ShouldBindJSON(&req); err != nil || req.SessionID == "" {
			utils.RespondWithBadRequest(c, `Invalid request: "session_id" is required.`)
			return
		}

		answer, err := pipeline.Ask(c.Request.Context(), req.SessionID, req.Question)
		if err != nil {
			logger.Error("Ask failed", "session_id", req.SessionID, "error", err)
			utils.RespondWithAppError(c, err, "Failed to answer question")
			return
		}

		c.JSON(http.StatusOK, models.AskResponse{
			SessionID: req.SessionID,
			Answer:    answer,
			Timestamp: time.Now(),
		})
	})

	api.GET("/sessions/:id/history", func(c *gin.Context) {
		turns, err := pipeline.History(c.Param("id"))
		if err != nil {
			utils.RespondWithAppError(c, err, "Failed to load history")
			return
		}

		c.JSON(http.StatusOK, models.HistoryResponse{
			SessionID: c.Param("id"),
			Turns:     turns,
			Total:     len(turns),
		})
	})
}
