package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App       AppConfig
	Knowledge KnowledgeConfig
	Ai        AIConfig
	Database  DatabaseConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
	UploadDir          string
	SessionSecret      string
}

type KnowledgeConfig struct {
	VectorStorePath  string
	RegistryPath     string
	TopicMemoryPath  string
	ChunkSize        int
	ChunkOverlap     int
	TopK             int
	ScoreThreshold   float64
	ExtractTopicName string
	MaxUploadBytes   int64
}

type AIConfig struct {
	EmbeddingProvider string // "gemini" or "ollama"
	OllamaBaseURL     string
	OllamaModel       string
	GoogleGeminiKey   string
}

type DatabaseConfig struct {
	// VectorBackend selects where chunk embeddings live: "snapshot" keeps the
	// original single-file JSON store, "pgvector" uses Postgres.
	VectorBackend string
	Connection    string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, using system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "5002"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:5002"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
			UploadDir:          getEnv("UPLOAD_DIR", "uploads"),
			SessionSecret:      getEnv("SESSION_SECRET", "pdf_knowledge_secret_key"),
		},
		Knowledge: KnowledgeConfig{
			VectorStorePath:  getEnv("VECTOR_STORE_PATH", "pdf_knowledge_vectorstore.json"),
			RegistryPath:     getEnv("DOCUMENT_REGISTRY_PATH", "DocumentRegistry.json"),
			TopicMemoryPath:  getEnv("TOPIC_MEMORY_PATH", "TopicMemory.json"),
			ChunkSize:        getEnvAsInt("CHUNK_SIZE", 1500),
			ChunkOverlap:     getEnvAsInt("CHUNK_OVERLAP", 200),
			TopK:             getEnvAsInt("RETRIEVAL_TOP_K", 4),
			ScoreThreshold:   getEnvAsFloat("RETRIEVAL_SCORE_THRESHOLD", 0.35),
			ExtractTopicName: getEnv("EXTRACT_KNOWLEDGE_TOPIC_NAME", "EXTRACT_PDF_KNOWLEDGE"),
			MaxUploadBytes:   int64(getEnvAsInt("MAX_UPLOAD_MB", 50)) * 1024 * 1024,
		},
		Ai: AIConfig{
			EmbeddingProvider: getEnv("EMBEDDING_PROVIDER", "ollama"),
			OllamaBaseURL:     getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			OllamaModel:       getEnv("OLLAMA_EMBEDDING_MODEL", "nomic-embed-text"),
			GoogleGeminiKey:   getEnv("GOOGLE_GEMINI_API_KEY", ""),
		},
		Database: DatabaseConfig{
			VectorBackend: getEnv("VECTOR_BACKEND", "snapshot"),
			Connection:    getEnv("DB_CONNECTION_STRING", ""),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsFloat(key string, fallback float64) float64 {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseFloat(strValue, 64); err == nil {
		return value
	}
	return fallback
}
