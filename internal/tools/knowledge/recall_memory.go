package knowledge

import (
	"context"

	"pdf-knowledge-be/internal/constant"
	"pdf-knowledge-be/internal/pkg/logger"
	"pdf-knowledge-be/internal/store"
	"pdf-knowledge-be/internal/tools"
)

// RecallMemory retrieves the accumulated facts for a topic from the long-term
// topic memory.
type RecallMemory struct {
	memory *store.TopicMemory
	log    logger.ILogger
}

func NewRecallMemory(memory *store.TopicMemory, log logger.ILogger) *RecallMemory {
	return &RecallMemory{memory: memory, log: log}
}

func (t *RecallMemory) Name() string {
	return constant.ToolRecallMemory
}

func (t *RecallMemory) Invoke(ctx context.Context, args map[string]interface{}, slyData map[string]interface{}) interface{} {
	topic := tools.StringArg(args, "topic")
	if topic == "" {
		return "Error: Missing required input 'topic'."
	}

	facts, ok, err := t.memory.Facts(topic)
	if err != nil {
		t.log.Error("RecallMemory", "Failed to load topic memory", map[string]interface{}{"error": err.Error()})
		return tools.Errorf("Failed to load memory: %v", err)
	}
	if !ok {
		return "No facts found for this topic."
	}

	t.log.Info("RecallMemory", "Recalled facts for topic", map[string]interface{}{"topic": topic})

	return facts
}
