package pgstore

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	"pdf-knowledge-be/internal/entity"
	"pdf-knowledge-be/internal/model"

	"github.com/pgvector/pgvector-go"
	"gorm.io/datatypes"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Store keeps chunks in Postgres with pgvector cosine-distance search. Used
// when VECTOR_BACKEND=pgvector; functionally interchangeable with the JSON
// snapshot backend, including its append-only duplicate behavior.
type Store struct {
	db *gorm.DB
}

type chunkMetadata struct {
	Source     string `json:"source"`
	Page       int    `json:"page"`
	ChunkIndex int    `json:"chunk_index"`
}

func getLogger() gormlogger.Interface {
	return gormlogger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		gormlogger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
			ParameterizedQueries:      true,
			Colorful:                  true,
		},
	)
}

// Open connects to Postgres from a DSN, tunes the pool and runs the chunk
// table migration.
func Open(dsn string) (*Store, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: getLogger(),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := db.Exec("CREATE EXTENSION IF NOT EXISTS vector").Error; err != nil {
		return nil, fmt.Errorf("failed to ensure pgvector extension: %w", err)
	}
	if err := db.AutoMigrate(&model.DocumentChunk{}); err != nil {
		return nil, fmt.Errorf("failed to migrate document_chunks: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Add(ctx context.Context, chunks []*entity.Chunk) error {
	if len(chunks) == 0 {
		return nil
	}

	models := make([]*model.DocumentChunk, len(chunks))
	for i, c := range chunks {
		meta, err := json.Marshal(chunkMetadata{
			Source:     c.Source,
			Page:       c.Page,
			ChunkIndex: c.ChunkIndex,
		})
		if err != nil {
			return err
		}
		models[i] = &model.DocumentChunk{
			Id:             c.Id,
			Document:       c.Document,
			EmbeddingValue: pgvector.NewVector(c.Embedding),
			Metadata:       datatypes.JSON(meta),
			Source:         c.Source,
			Page:           c.Page,
			ChunkIndex:     c.ChunkIndex,
			CreatedAt:      c.CreatedAt,
		}
	}

	return s.db.WithContext(ctx).Create(models).Error
}

func (s *Store) Search(ctx context.Context, vector []float32, limit int, threshold float64) ([]*entity.ScoredChunk, error) {
	if limit <= 0 {
		limit = 5
	}

	// pgvector cosine distance is 1 - cosine_similarity
	type result struct {
		model.DocumentChunk
		Similarity float64
	}
	var results []result

	queryVector := pgvector.NewVector(vector)

	err := s.db.WithContext(ctx).
		Table("document_chunks").
		Select("document_chunks.*, 1 - (embedding_value <=> ?) as similarity", queryVector).
		Where("1 - (embedding_value <=> ?) >= ?", queryVector, threshold).
		Order("similarity DESC").
		Limit(limit).
		Scan(&results).Error
	if err != nil {
		return nil, err
	}

	scored := make([]*entity.ScoredChunk, len(results))
	for i, res := range results {
		scored[i] = &entity.ScoredChunk{
			Chunk: &entity.Chunk{
				Id:         res.Id,
				Document:   res.Document,
				Embedding:  res.EmbeddingValue.Slice(),
				Source:     res.Source,
				Page:       res.Page,
				ChunkIndex: res.ChunkIndex,
				CreatedAt:  res.CreatedAt,
			},
			Similarity: res.Similarity,
		}
	}
	return scored, nil
}

func (s *Store) Count(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.DocumentChunk{}).Count(&count).Error
	return count, err
}

// Save is a no-op: Postgres persists on Add.
func (s *Store) Save(ctx context.Context) error {
	return nil
}
