package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	GeminiAPIKey    string
	GeminiAPIBase   string
	EmbeddingModel  string
	GenerationModel string
	Port            string
	GinMode         string
	CORSOrigins     []string
	MaxFileSize     int64

	ChunkSize           int
	ChunkOverlap        int
	TopKChunks          int
	SimilarityThreshold float64
	Temperature         float64

	RateLimitReqs   int
	RateLimitWindow int

	TracingEnabled bool
	OTLPEndpoint   string
}

func LoadConfig() (*Config, error) {
	// Load .env file if exists
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			return nil, fmt.Errorf("error loading .env file: %v", err)
		}
	}

	cfg := &Config{
		GeminiAPIKey:    getEnv("GEMINI_API_KEY", ""),
		GeminiAPIBase:   getEnv("GEMINI_API_BASE", "https://generativelanguage.googleapis.com/v1beta/models"),
		EmbeddingModel:  getEnv("GEMINI_EMBEDDING_MODEL", "embedding-001"),
		GenerationModel: getEnv("GEMINI_GENERATION_MODEL", "gemini-1.5-flash-latest"),
		Port:            getEnv("PORT", "8080"),
		GinMode:         getEnv("GIN_MODE", "debug"),
		CORSOrigins:     strings.Split(getEnv("CORS_ORIGINS", "http://localhost:5173,http://localhost:3000"), ","),
		MaxFileSize:     getEnvInt64("MAX_FILE_SIZE", 20971520), // 20MB per upload

		ChunkSize:           getEnvInt("MAX_CHUNK_SIZE", 1000),
		ChunkOverlap:        getEnvInt("CHUNK_OVERLAP", 200),
		TopKChunks:          getEnvInt("TOP_K_CHUNKS", 3),
		SimilarityThreshold: getEnvFloat64("SIMILARITY_THRESHOLD", 0.3),
		Temperature:         getEnvFloat64("GENERATION_TEMPERATURE", 0.3),

		RateLimitReqs:   getEnvInt("RATE_LIMIT_REQUESTS", 100),
		RateLimitWindow: getEnvInt("RATE_LIMIT_WINDOW", 60),

		TracingEnabled: getEnvBool("TRACING_ENABLED", false),
		OTLPEndpoint:   getEnv("OTLP_ENDPOINT", "localhost:4317"),
	}

	// Validate required fields
	if cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY is required - set it in .env file")
	}

	if cfg.ChunkSize <= 0 {
		return nil, fmt.Errorf("MAX_CHUNK_SIZE must be positive, got %d", cfg.ChunkSize)
	}

	// An overlap at or above the chunk size would stop the chunking window
	// from ever advancing.
	if cfg.ChunkOverlap < 0 || cfg.ChunkOverlap >= cfg.ChunkSize {
		return nil, fmt.Errorf("CHUNK_OVERLAP must be in [0, MAX_CHUNK_SIZE), got %d", cfg.ChunkOverlap)
	}

	if cfg.TopKChunks <= 0 {
		return nil, fmt.Errorf("TOP_K_CHUNKS must be positive, got %d", cfg.TopKChunks)
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvFloat64(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}
