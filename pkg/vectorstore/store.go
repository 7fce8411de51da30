package vectorstore

import (
	"context"

	"pdf-knowledge-be/internal/entity"
)

// Store persists (embedding, text chunk, metadata) triples and answers
// nearest-neighbor queries. Ingestion only ever appends; nothing compacts or
// deduplicates, so re-ingesting a file duplicates its chunks.
type Store interface {
	// Add appends chunks to the store.
	Add(ctx context.Context, chunks []*entity.Chunk) error

	// Search returns up to limit chunks whose cosine similarity against the
	// query vector is at least threshold, most similar first.
	Search(ctx context.Context, vector []float32, limit int, threshold float64) ([]*entity.ScoredChunk, error)

	// Count reports the number of stored chunks.
	Count(ctx context.Context) (int64, error)

	// Save flushes the store to its persistence layer. A no-op for backends
	// that persist on Add.
	Save(ctx context.Context) error
}
