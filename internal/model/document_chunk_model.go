package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/datatypes"
)

// DocumentChunk is the Postgres representation of a stored chunk, used only
// by the pgvector backend.
type DocumentChunk struct {
	Id             uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Document       string          `gorm:"type:text"`
	EmbeddingValue pgvector.Vector `gorm:"type:vector(768)"` // nomic-embed-text and text-embedding-004 both emit 768 dims
	Metadata       datatypes.JSON  `gorm:"type:jsonb"`
	Source         string          `gorm:"index"`
	Page           int
	ChunkIndex     int       `gorm:"default:0"`
	CreatedAt      time.Time `gorm:"autoCreateTime"`
}

func (DocumentChunk) TableName() string {
	return "document_chunks"
}
