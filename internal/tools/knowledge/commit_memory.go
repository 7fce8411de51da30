package knowledge

import (
	"context"
	"fmt"

	"pdf-knowledge-be/internal/constant"
	"pdf-knowledge-be/internal/pkg/logger"
	"pdf-knowledge-be/internal/store"
	"pdf-knowledge-be/internal/tools"
)

// CommitToMemory stores a fact under a topic in the long-term topic memory.
type CommitToMemory struct {
	memory *store.TopicMemory
	log    logger.ILogger
}

func NewCommitToMemory(memory *store.TopicMemory, log logger.ILogger) *CommitToMemory {
	return &CommitToMemory{memory: memory, log: log}
}

func (t *CommitToMemory) Name() string {
	return constant.ToolCommitToMemory
}

func (t *CommitToMemory) Invoke(ctx context.Context, args map[string]interface{}, slyData map[string]interface{}) interface{} {
	topic := tools.StringArg(args, "topic")
	fact := tools.StringArg(args, "new_fact")

	if topic == "" {
		return "Error: Missing required input 'topic'."
	}
	if fact == "" {
		return "Error: Missing required input 'new_fact'."
	}

	if err := t.memory.Commit(topic, fact); err != nil {
		t.log.Error("CommitToMemory", "Failed to persist fact", map[string]interface{}{"topic": topic, "error": err.Error()})
		return tools.Errorf("Failed to save memory: %v", err)
	}

	t.log.Info("CommitToMemory", "Committed fact to memory", map[string]interface{}{"topic": topic})

	return fmt.Sprintf("Committed fact to memory under topic '%s'.", topic)
}
