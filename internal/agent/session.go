package agent

import (
	"context"
	"encoding/json"
	"fmt"

	"pdf-knowledge-be/internal/constant"
	"pdf-knowledge-be/internal/pkg/apperr"
	"pdf-knowledge-be/internal/pkg/logger"
	"pdf-knowledge-be/internal/tools"
)

// Session drives one conversation against the coded tool registry. Turns are
// answered from the knowledge base; uploads run as a synthetic turn that
// ingests the file and reports the outcome in the chat stream.
type Session struct {
	registry *tools.Registry
	log      logger.ILogger
}

func NewSession(registry *tools.Registry, log logger.ILogger) *Session {
	return &Session{registry: registry, log: log}
}

// ProcessTurn runs one user turn and returns the agent response together with
// the successor thread state. The input thread is left untouched.
func (s *Session) ProcessTurn(ctx context.Context, thread Thread, input string) (string, Thread, error) {
	ctx, cancel := turnContext(ctx, thread)
	defer cancel()

	result, err := s.invoke(ctx, constant.ToolQueryPdfKnowledge,
		map[string]interface{}{"query": input}, thread.SlyData)
	if err != nil {
		return "", thread, err
	}

	response := renderResult(result)
	return response, thread.WithTurn(input, response), nil
}

// ProcessUpload runs the ingestion turn for an uploaded file. The file path
// travels through the thread's side-channel data, never through the chat
// text the user typed.
func (s *Session) ProcessUpload(ctx context.Context, thread Thread, filePath string) (string, Thread, error) {
	ctx, cancel := turnContext(ctx, thread)
	defer cancel()

	thread = thread.WithSlyData("file_path", filePath)

	instruction := fmt.Sprintf(
		"A PDF file has been uploaded at: %s\n"+
			"Please add this document to the knowledge base and extract key topics and facts from it.",
		filePath,
	)

	result, err := s.invoke(ctx, constant.ToolAddPdfToKnowledge,
		map[string]interface{}{"file_path": filePath}, thread.SlyData)
	if err != nil {
		return "", thread, err
	}

	response := renderResult(result)
	return response, thread.WithTurn(instruction, response), nil
}

// InvokeTool runs a named tool directly, outside the conversational routing.
// Background workers use this for extraction and memory commits.
func (s *Session) InvokeTool(ctx context.Context, name string, args map[string]interface{}) (interface{}, error) {
	return s.invoke(ctx, name, args, map[string]interface{}{})
}

func (s *Session) invoke(ctx context.Context, name string, args map[string]interface{}, slyData map[string]interface{}) (interface{}, error) {
	tool, ok := s.registry.Get(name)
	if !ok {
		return nil, apperr.NotFoundf("tool '%s' is not registered", name)
	}

	s.log.Info("Session", "Invoking tool", map[string]interface{}{"tool": name})
	return tool.Invoke(ctx, args, slyData), nil
}

func turnContext(ctx context.Context, thread Thread) (context.Context, context.CancelFunc) {
	if thread.Timeout > 0 {
		return context.WithTimeout(ctx, thread.Timeout)
	}
	return context.WithCancel(ctx)
}

// renderResult flattens a tool result to the chat string the client sees.
// Structured results are rendered as JSON; error strings pass through as-is
// so the user sees exactly what went wrong.
func renderResult(result interface{}) string {
	switch v := result.(type) {
	case string:
		return v
	default:
		data, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%v", v)
		}
		return string(data)
	}
}
