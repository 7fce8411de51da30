package store

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"pdf-knowledge-be/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocumentRegistryAppend(t *testing.T) {
	path := filepath.Join(t.TempDir(), "DocumentRegistry.json")
	reg := NewDocumentRegistry(path)

	docs, err := reg.All()
	require.NoError(t, err)
	assert.Empty(t, docs)

	record := entity.DocumentRecord{
		Filename:  "manual.pdf",
		FilePath:  "/tmp/manual.pdf",
		PageCount: 12,
		Status:    entity.DocumentStatusProcessed,
	}
	require.NoError(t, reg.Append(record))
	require.NoError(t, reg.Append(record))

	docs, err = reg.All()
	require.NoError(t, err)
	require.Len(t, docs, 2, "uploading the same file twice yields two entries")
	assert.Equal(t, "manual.pdf", docs[0].Filename)

	count, err := reg.Count()
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestDocumentRegistryFileShape(t *testing.T) {
	path := filepath.Join(t.TempDir(), "DocumentRegistry.json")
	reg := NewDocumentRegistry(path)

	require.NoError(t, reg.Append(entity.DocumentRecord{Filename: "a.pdf"}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Contains(t, raw, "documents")
}
