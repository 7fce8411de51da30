package entity

import (
	"time"

	"github.com/google/uuid"
)

// Chunk is a segment of extracted document text stored together with its
// embedding. Chunks are append-only: re-ingesting a file adds new chunks and
// never replaces old ones.
type Chunk struct {
	Id         uuid.UUID `json:"id"`
	Document   string    `json:"document"`
	Embedding  []float32 `json:"embedding"`
	Source     string    `json:"source"`
	Page       int       `json:"page"`
	ChunkIndex int       `json:"chunk_index"`
	CreatedAt  time.Time `json:"created_at"`
}

// ScoredChunk pairs a chunk with its cosine similarity against a query vector.
type ScoredChunk struct {
	Chunk      *Chunk
	Similarity float64
}
