package tools

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type namedTool struct {
	name string
}

func (n *namedTool) Name() string { return n.name }
func (n *namedTool) Invoke(context.Context, map[string]interface{}, map[string]interface{}) interface{} {
	return n.name
}

func TestRegistryNamesSorted(t *testing.T) {
	reg := NewRegistry()
	reg.Register(&namedTool{name: "recall_memory"})
	reg.Register(&namedTool{name: "add_pdf_to_knowledge"})
	reg.Register(&namedTool{name: "commit_to_memory"})

	assert.Equal(t, []string{"add_pdf_to_knowledge", "commit_to_memory", "recall_memory"}, reg.Names())

	tool, ok := reg.Get("commit_to_memory")
	require.True(t, ok)
	assert.Equal(t, "commit_to_memory", tool.Name())

	_, ok = reg.Get("unknown_tool")
	assert.False(t, ok)
}

func TestErrorResultDetection(t *testing.T) {
	assert.True(t, IsErrorResult(Errorf("something failed: %d", 7)))
	assert.True(t, IsErrorResult("Error: plain"))
	assert.False(t, IsErrorResult("fine"))
	assert.False(t, IsErrorResult(42))
}
