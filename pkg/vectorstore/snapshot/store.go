package snapshot

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"pdf-knowledge-be/internal/entity"
)

// Store is a brute-force cosine similarity vector store persisted as a single
// JSON snapshot file. Vectors are expected to be L2-normalized by the
// embedding provider, so dot product equals cosine similarity.
type Store struct {
	mu     sync.RWMutex
	path   string
	chunks []*entity.Chunk
}

type snapshotFile struct {
	Chunks []*entity.Chunk `json:"chunks"`
}

// Exists reports whether a snapshot file has been written yet.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// New loads the snapshot at path if one exists, otherwise starts empty.
func New(path string) (*Store, error) {
	s := &Store{path: path}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read vector store snapshot: %w", err)
	}

	var file snapshotFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("vector store snapshot is corrupted: %w", err)
	}
	s.chunks = file.Chunks

	return s, nil
}

func (s *Store) Add(ctx context.Context, chunks []*entity.Chunk) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	// Append-only: duplicates from re-ingestion are preserved
	s.chunks = append(s.chunks, chunks...)
	return nil
}

func (s *Store) Search(ctx context.Context, vector []float32, limit int, threshold float64) ([]*entity.ScoredChunk, error) {
	if limit <= 0 {
		limit = 5
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	scored := make([]*entity.ScoredChunk, 0, len(s.chunks))
	for _, c := range s.chunks {
		sim := dot(c.Embedding, vector)
		if sim < threshold {
			continue
		}
		scored = append(scored, &entity.ScoredChunk{Chunk: c, Similarity: sim})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Similarity > scored[j].Similarity
	})

	if len(scored) > limit {
		scored = scored[:limit]
	}
	return scored, nil
}

func (s *Store) Count(ctx context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.chunks)), nil
}

// Save writes the whole store to a temp file and renames it into place so a
// crash mid-write can never leave a torn snapshot behind.
func (s *Store) Save(ctx context.Context) error {
	s.mu.RLock()
	data, err := json.MarshalIndent(snapshotFile{Chunks: s.chunks}, "", "  ")
	s.mu.RUnlock()
	if err != nil {
		return fmt.Errorf("failed to marshal vector store: %w", err)
	}

	dir := filepath.Dir(s.path)
	if dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	tmp, err := os.CreateTemp(dir, ".vectorstore-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}

	return os.Rename(tmpName, s.path)
}

func dot(a, b []float32) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	sum := 0.0
	for i := 0; i < n; i++ {
		sum += float64(a[i]) * float64(b[i])
	}
	return sum
}
