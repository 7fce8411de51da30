package agent

import (
	"context"
	"testing"

	"pdf-knowledge-be/internal/constant"
	"pdf-knowledge-be/internal/tools"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Debug(string, string, map[string]interface{}) {}
func (nopLogger) Info(string, string, map[string]interface{})  {}
func (nopLogger) Warn(string, string, map[string]interface{})  {}
func (nopLogger) Error(string, string, map[string]interface{}) {}
func (nopLogger) Sync() error                                  { return nil }

// recordingTool captures its last invocation and answers with a fixed result.
type recordingTool struct {
	name     string
	result   interface{}
	lastArgs map[string]interface{}
	lastSly  map[string]interface{}
}

func (r *recordingTool) Name() string { return r.name }

func (r *recordingTool) Invoke(ctx context.Context, args map[string]interface{}, slyData map[string]interface{}) interface{} {
	r.lastArgs = args
	r.lastSly = slyData
	return r.result
}

func newTestSession(queryResult, addResult interface{}) (*Session, *recordingTool, *recordingTool) {
	registry := tools.NewRegistry()
	query := &recordingTool{name: constant.ToolQueryPdfKnowledge, result: queryResult}
	add := &recordingTool{name: constant.ToolAddPdfToKnowledge, result: addResult}
	registry.Register(query)
	registry.Register(add)
	return NewSession(registry, nopLogger{}), query, add
}

func TestProcessTurnRoutesToQueryTool(t *testing.T) {
	session, query, add := newTestSession("answer text", "unused")

	thread := NewThread()
	response, next, err := session.ProcessTurn(context.Background(), thread, "what is PVC?")
	require.NoError(t, err)

	assert.Equal(t, "answer text", response)
	assert.Equal(t, "what is PVC?", query.lastArgs["query"])
	assert.Nil(t, add.lastArgs, "upload tool must not run on a plain query")

	assert.Equal(t, 1, next.NumInput)
	assert.Equal(t, "answer text", next.LastChatResponse)
	assert.Equal(t, "what is PVC?", next.UserInput)
}

func TestProcessUploadRoutesToAddTool(t *testing.T) {
	session, query, add := newTestSession("unused", "Successfully added doc.pdf to knowledge base - 3 pages processed.")

	thread := NewThread()
	response, next, err := session.ProcessUpload(context.Background(), thread, "/tmp/doc.pdf")
	require.NoError(t, err)

	assert.Contains(t, response, "Successfully added")
	assert.Equal(t, "/tmp/doc.pdf", add.lastArgs["file_path"])
	assert.Equal(t, "/tmp/doc.pdf", add.lastSly["file_path"], "path travels the side channel too")
	assert.Nil(t, query.lastArgs)

	assert.Equal(t, 1, next.NumInput)
	assert.Contains(t, next.UserInput, "A PDF file has been uploaded at: /tmp/doc.pdf")
}

func TestProcessTurnLeavesInputThreadUntouched(t *testing.T) {
	session, _, _ := newTestSession("resp", "unused")

	original := NewThread()
	_, next, err := session.ProcessTurn(context.Background(), original, "hello")
	require.NoError(t, err)

	// The input thread is a value; the turn produced a successor instead of
	// mutating it.
	assert.Zero(t, original.NumInput)
	assert.Empty(t, original.LastChatResponse)
	assert.Empty(t, original.UserInput)
	assert.Equal(t, 1, next.NumInput)
}

func TestThreadWithSlyDataCopies(t *testing.T) {
	original := NewThread()
	derived := original.WithSlyData("file_path", "/tmp/a.pdf")

	assert.Empty(t, original.SlyData["file_path"])
	assert.Equal(t, "/tmp/a.pdf", derived.SlyData["file_path"])

	derived.SlyData["extra"] = "x"
	assert.NotContains(t, original.SlyData, "extra")
}

func TestProcessTurnUnknownToolErrors(t *testing.T) {
	session := NewSession(tools.NewRegistry(), nopLogger{})

	_, _, err := session.ProcessTurn(context.Background(), NewThread(), "hi")
	require.Error(t, err)
}

func TestRenderResultStructured(t *testing.T) {
	out := renderResult(map[string]interface{}{"key": "value"})
	assert.JSONEq(t, `{"key":"value"}`, out)

	assert.Equal(t, "plain", renderResult("plain"))
}
