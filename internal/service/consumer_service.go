package service

import (
	"context"
	"encoding/json"
	"path/filepath"
	"strings"
	"time"

	"pdf-knowledge-be/internal/agent"
	"pdf-knowledge-be/internal/constant"
	"pdf-knowledge-be/internal/dto"
	"pdf-knowledge-be/internal/pkg/logger"
	"pdf-knowledge-be/internal/tools"
	"pdf-knowledge-be/pkg/events"
	pktNats "pdf-knowledge-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService drains the extraction pipeline: for each uploaded document
// it runs the extraction tool and commits the resulting overview to the topic
// memory under a topic named after the file.
type consumerService struct {
	pubSub    *gochannel.GoChannel
	topicName string
	session   *agent.Session
	natsPub   *pktNats.Publisher
	log       logger.ILogger
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	session *agent.Session,
	natsPub *pktNats.Publisher,
	log logger.ILogger,
) IConsumerService {
	return &consumerService{
		pubSub:    pubSub,
		topicName: topicName,
		session:   session,
		natsPub:   natsPub,
		log:       log,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.PublishExtractKnowledgeMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		cs.log.Error("ConsumerService", "Failed to unmarshal extract message", map[string]interface{}{"error": err.Error()})
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	cs.log.Info("ConsumerService", "Extracting knowledge", map[string]interface{}{"file_path": payload.FilePath})

	result, err := cs.session.InvokeTool(ctx, constant.ToolExtractPdfKnowledge, map[string]interface{}{
		"file_path": payload.FilePath,
	})
	if err != nil {
		cs.log.Error("ConsumerService", "Extraction failed", map[string]interface{}{"error": err.Error()})
		msg.Nack()
		return
	}

	overview, _ := result.(string)
	if tools.IsErrorResult(result) {
		// The file is gone or unreadable; retrying won't change that.
		cs.log.Error("ConsumerService", "Extraction tool rejected document", map[string]interface{}{"result": overview})
		msg.Ack()
		return
	}

	topic := topicFromFilename(payload.Filename)
	commitResult, err := cs.session.InvokeTool(ctx, constant.ToolCommitToMemory, map[string]interface{}{
		"topic":    topic,
		"new_fact": overview,
	})
	if err != nil || tools.IsErrorResult(commitResult) {
		cs.log.Error("ConsumerService", "Failed to commit extracted knowledge", map[string]interface{}{"topic": topic})
		msg.Nack()
		return
	}

	if cs.natsPub != nil {
		event := events.BaseEvent{
			Type: constant.EventTopicCommitted,
			Data: map[string]interface{}{
				"topic":    topic,
				"filename": payload.Filename,
			},
			OccurredAt: time.Now(),
		}
		if err := cs.natsPub.Publish(ctx, event); err != nil {
			cs.log.Warn("ConsumerService", "Failed to publish topic event", map[string]interface{}{"error": err.Error()})
		}
	}

	cs.log.Info("ConsumerService", "Knowledge committed", map[string]interface{}{"topic": topic})
	msg.Ack()
}

// topicFromFilename turns "Safety Manual v2.pdf" into "safety_manual_v2".
func topicFromFilename(filename string) string {
	base := strings.TrimSuffix(filename, filepath.Ext(filename))
	return strings.ReplaceAll(strings.ToLower(base), " ", "_")
}
