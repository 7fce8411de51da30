package snapshot

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"pdf-knowledge-be/internal/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chunk(text string, embedding []float32) *entity.Chunk {
	return &entity.Chunk{
		Id:        uuid.New(),
		Document:  text,
		Embedding: embedding,
		Source:    "test.pdf",
		CreatedAt: time.Now(),
	}
}

func TestSnapshotRoundtrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "store.json")

	s, err := New(path)
	require.NoError(t, err)

	require.NoError(t, s.Add(ctx, []*entity.Chunk{
		chunk("alpha", []float32{1, 0}),
		chunk("beta", []float32{0, 1}),
	}))
	require.NoError(t, s.Save(ctx))
	assert.True(t, Exists(path))

	reloaded, err := New(path)
	require.NoError(t, err)

	count, err := reloaded.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	res, err := reloaded.Search(ctx, []float32{1, 0}, 1, 0.5)
	require.NoError(t, err)
	require.Len(t, res, 1)
	assert.Equal(t, "alpha", res[0].Chunk.Document)
}

func TestSnapshotAppendOnlyDuplicates(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "store.json")

	s, err := New(path)
	require.NoError(t, err)

	same := []*entity.Chunk{chunk("repeat", []float32{1, 0})}
	require.NoError(t, s.Add(ctx, same))
	require.NoError(t, s.Add(ctx, same))

	count, err := s.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count, "re-ingestion must accumulate, not dedupe")
}

func TestSnapshotSearchRankingAndThreshold(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "store.json")

	s, err := New(path)
	require.NoError(t, err)

	require.NoError(t, s.Add(ctx, []*entity.Chunk{
		chunk("exact", []float32{1, 0}),
		chunk("close", []float32{0.9, 0.435}),
		chunk("orthogonal", []float32{0, 1}),
	}))

	res, err := s.Search(ctx, []float32{1, 0}, 10, 0.35)
	require.NoError(t, err)

	require.Len(t, res, 2, "orthogonal chunk is below threshold")
	assert.Equal(t, "exact", res[0].Chunk.Document)
	assert.Equal(t, "close", res[1].Chunk.Document)
	assert.Greater(t, res[0].Similarity, res[1].Similarity)

	limited, err := s.Search(ctx, []float32{1, 0}, 1, 0.0)
	require.NoError(t, err)
	require.Len(t, limited, 1)
	assert.Equal(t, "exact", limited[0].Chunk.Document)
}

func TestSnapshotMissingFileStartsEmpty(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "absent.json")

	assert.False(t, Exists(path))

	s, err := New(path)
	require.NoError(t, err)

	count, err := s.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
}
