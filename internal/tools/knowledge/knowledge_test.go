package knowledge

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"pdf-knowledge-be/internal/entity"
	"pdf-knowledge-be/internal/store"
	"pdf-knowledge-be/pkg/embedding"
	"pdf-knowledge-be/pkg/pdfdoc"
	"pdf-knowledge-be/pkg/vectorstore/snapshot"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Debug(string, string, map[string]interface{}) {}
func (nopLogger) Info(string, string, map[string]interface{})  {}
func (nopLogger) Warn(string, string, map[string]interface{})  {}
func (nopLogger) Error(string, string, map[string]interface{}) {}
func (nopLogger) Sync() error                                  { return nil }

// fakeEmbedder returns a fixed unit vector per known text and the x axis for
// everything else.
type fakeEmbedder struct {
	vectors map[string][]float32
}

func (f *fakeEmbedder) Generate(text string, taskType string) (*embedding.EmbeddingResponse, error) {
	vec, ok := f.vectors[text]
	if !ok {
		vec = []float32{1, 0}
	}
	return &embedding.EmbeddingResponse{
		Embedding: embedding.EmbeddingResponseEmbedding{Values: vec},
	}, nil
}

func newTestQueryTool(t *testing.T) (*QueryPdfKnowledge, *snapshot.Store) {
	t.Helper()
	s, err := snapshot.New(filepath.Join(t.TempDir(), "store.json"))
	require.NoError(t, err)
	tool := NewQueryPdfKnowledge(&fakeEmbedder{}, s, 4, 0.35, nopLogger{})
	return tool, s
}

func TestAddPdfMissingInput(t *testing.T) {
	dir := t.TempDir()
	s, err := snapshot.New(filepath.Join(dir, "store.json"))
	require.NoError(t, err)
	reg := store.NewDocumentRegistry(filepath.Join(dir, "registry.json"))

	tool := NewAddPdfToKnowledge(pdfdoc.NewLoader(), &fakeEmbedder{}, s, reg, 1500, 200, nopLogger{})

	result := tool.Invoke(context.Background(), map[string]interface{}{}, nil)
	assert.Equal(t, "Error: Missing required input 'file_path'.", result)
}

func TestAddPdfFileNotFound(t *testing.T) {
	dir := t.TempDir()
	s, err := snapshot.New(filepath.Join(dir, "store.json"))
	require.NoError(t, err)
	reg := store.NewDocumentRegistry(filepath.Join(dir, "registry.json"))

	tool := NewAddPdfToKnowledge(pdfdoc.NewLoader(), &fakeEmbedder{}, s, reg, 1500, 200, nopLogger{})

	missing := filepath.Join(dir, "nope.pdf")
	result := tool.Invoke(context.Background(), map[string]interface{}{"file_path": missing}, nil)
	assert.Equal(t, "Error: File not found: "+missing, result)
}

func TestAddPdfRejectsNonPdf(t *testing.T) {
	dir := t.TempDir()
	s, err := snapshot.New(filepath.Join(dir, "store.json"))
	require.NoError(t, err)
	reg := store.NewDocumentRegistry(filepath.Join(dir, "registry.json"))

	txtPath := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(txtPath, []byte("plain text"), 0o644))

	tool := NewAddPdfToKnowledge(pdfdoc.NewLoader(), &fakeEmbedder{}, s, reg, 1500, 200, nopLogger{})

	result := tool.Invoke(context.Background(), map[string]interface{}{"file_path": txtPath}, nil)
	assert.Equal(t, "Error: File must be a PDF: "+txtPath, result)

	// Nothing was ingested.
	count, err := s.Count(context.Background())
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestQueryMissingInput(t *testing.T) {
	tool, _ := newTestQueryTool(t)
	result := tool.Invoke(context.Background(), map[string]interface{}{}, nil)
	assert.Equal(t, "Error: Missing required input 'query'.", result)
}

func TestQueryEmptyKnowledgeBase(t *testing.T) {
	tool, _ := newTestQueryTool(t)
	result := tool.Invoke(context.Background(), map[string]interface{}{"query": "anything"}, nil)
	assert.Equal(t, "Error: No knowledge base found. Please upload PDF documents first.", result)
}

func TestQueryReturnsMatchingChunks(t *testing.T) {
	tool, s := newTestQueryTool(t)
	seedChunks(t, s)

	result := tool.Invoke(context.Background(), map[string]interface{}{"query": "what about gloves"}, nil)
	text, ok := result.(string)
	require.True(t, ok)
	assert.Contains(t, text, "Wear gloves at all times.")
	assert.NotContains(t, text, "Unrelated content.")
}

func TestQueryNoMatchesAboveThreshold(t *testing.T) {
	tool, s := newTestQueryTool(t)
	seedChunks(t, s)

	// Embed the query orthogonally to everything in the store.
	tool.embedder = &fakeEmbedder{vectors: map[string][]float32{
		"off topic": {0, 0},
	}}

	result := tool.Invoke(context.Background(), map[string]interface{}{"query": "off topic"}, nil)
	assert.Equal(t, "No relevant information found in the knowledge base for this query.", result)
}

func chunkFor(text string, vec []float32) []*entity.Chunk {
	return []*entity.Chunk{{
		Id:        uuid.New(),
		Document:  text,
		Embedding: vec,
		CreatedAt: time.Now(),
	}}
}

func seedChunks(t *testing.T, s *snapshot.Store) {
	t.Helper()
	require.NoError(t, s.Add(context.Background(), chunkFor("Wear gloves at all times.", []float32{1, 0})))
	require.NoError(t, s.Add(context.Background(), chunkFor("Unrelated content.", []float32{0, 1})))
}

func TestExtractMissingFile(t *testing.T) {
	tool := NewExtractPdfKnowledge(pdfdoc.NewLoader(), nopLogger{})

	result := tool.Invoke(context.Background(), map[string]interface{}{}, nil)
	assert.Equal(t, "Error: Missing required input 'file_path'.", result)

	missing := filepath.Join(t.TempDir(), "gone.pdf")
	result = tool.Invoke(context.Background(), map[string]interface{}{"file_path": missing}, nil)
	assert.Equal(t, "Error: File not found: "+missing, result)
}

func TestCommitAndRecallMemory(t *testing.T) {
	mem := store.NewTopicMemory(filepath.Join(t.TempDir(), "TopicMemory.json"))
	commit := NewCommitToMemory(mem, nopLogger{})
	recall := NewRecallMemory(mem, nopLogger{})

	result := commit.Invoke(context.Background(), map[string]interface{}{
		"topic":    "materials",
		"new_fact": "PVC softens near 180C.",
	}, nil)
	assert.Equal(t, "Committed fact to memory under topic 'materials'.", result)

	result = recall.Invoke(context.Background(), map[string]interface{}{"topic": "materials"}, nil)
	assert.Equal(t, "PVC softens near 180C.", result)

	result = recall.Invoke(context.Background(), map[string]interface{}{"topic": "nothing"}, nil)
	assert.Equal(t, "No facts found for this topic.", result)
}

func TestCommitMemoryValidation(t *testing.T) {
	mem := store.NewTopicMemory(filepath.Join(t.TempDir(), "TopicMemory.json"))
	commit := NewCommitToMemory(mem, nopLogger{})

	result := commit.Invoke(context.Background(), map[string]interface{}{"new_fact": "orphan"}, nil)
	assert.Equal(t, "Error: Missing required input 'topic'.", result)

	result = commit.Invoke(context.Background(), map[string]interface{}{"topic": "empty"}, nil)
	assert.Equal(t, "Error: Missing required input 'new_fact'.", result)
}

func TestBuildDocumentSummaryFocusAreas(t *testing.T) {
	summary := buildDocumentSummary("report.pdf", 3, "sample text", []string{"safety", "pricing"})

	assert.Contains(t, summary, "Document: report.pdf")
	assert.Contains(t, summary, "Pages: 3")
	assert.Contains(t, summary, "CONTENT OVERVIEW:")
	assert.Contains(t, summary, "Focus areas requested: safety, pricing")
	assert.Contains(t, summary, "commit_to_memory")

	plain := buildDocumentSummary("report.pdf", 3, "sample text", nil)
	assert.NotContains(t, plain, "Focus areas requested")
}

func TestQueryJoinsChunksWithBlankLine(t *testing.T) {
	tool, s := newTestQueryTool(t)
	require.NoError(t, s.Add(context.Background(), chunkFor("First chunk.", []float32{1, 0})))
	require.NoError(t, s.Add(context.Background(), chunkFor("Second chunk.", []float32{0.99, 0.14})))

	result := tool.Invoke(context.Background(), map[string]interface{}{"query": "anything"}, nil)
	text, ok := result.(string)
	require.True(t, ok)
	assert.True(t, strings.Contains(text, "First chunk.\n\nSecond chunk."), "chunks join with a blank line, got %q", text)
}

func TestTruncateRunesKeepsValidUTF8(t *testing.T) {
	// "é" is two bytes; an odd byte limit lands mid-rune.
	text := strings.Repeat("é", 10)
	cut := truncateRunes(text, 7)

	assert.True(t, utf8.ValidString(cut))
	assert.Equal(t, strings.Repeat("é", 3), cut)

	// ASCII and short inputs pass through untouched.
	assert.Equal(t, "plain", truncateRunes("plain", 100))
	assert.Equal(t, "pla", truncateRunes("plain", 3))
}
