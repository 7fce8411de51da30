package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"pdf-knowledge-be/internal/constant"
	"pdf-knowledge-be/internal/dto"
	"pdf-knowledge-be/internal/pkg/apperr"
	"pdf-knowledge-be/internal/pkg/logger"
	"pdf-knowledge-be/internal/tools"
	"pdf-knowledge-be/pkg/events"
	pktNats "pdf-knowledge-be/pkg/nats"
)

type IKnowledgeService interface {
	// ProcessUpload ingests a saved PDF into the knowledge base through the
	// uploader's conversation and kicks off background topic extraction. The
	// returned string is the ingestion message shown to the uploader.
	ProcessUpload(ctx context.Context, sessionID string, filePath string, filename string) (string, error)
}

type knowledgeService struct {
	chatService      IChatService
	publisherService IPublisherService
	natsPub          *pktNats.Publisher
	log              logger.ILogger
}

func NewKnowledgeService(
	chatService IChatService,
	publisherService IPublisherService,
	natsPub *pktNats.Publisher,
	log logger.ILogger,
) IKnowledgeService {
	return &knowledgeService{
		chatService:      chatService,
		publisherService: publisherService,
		natsPub:          natsPub,
		log:              log,
	}
}

func (s *knowledgeService) ProcessUpload(ctx context.Context, sessionID string, filePath string, filename string) (string, error) {
	message, err := s.chatService.HandleUpload(ctx, sessionID, filePath)
	if err != nil {
		return "", err
	}
	if tools.IsErrorResult(message) {
		return "", apperr.InvalidInputf("%s", message)
	}

	// Hand the document to the background extraction pipeline.
	payload, err := json.Marshal(dto.PublishExtractKnowledgeMessage{
		FilePath: filePath,
		Filename: filename,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal extract message: %w", err)
	}
	if err := s.publisherService.Publish(ctx, payload); err != nil {
		s.log.Error("KnowledgeService", "Failed to publish extract message", map[string]interface{}{"error": err.Error()})
		// Ingestion itself succeeded; extraction can be retried by re-upload.
	}

	if s.natsPub != nil {
		event := events.BaseEvent{
			Type: constant.EventDocumentIngested,
			Data: map[string]interface{}{
				"filename":  filename,
				"file_path": filePath,
			},
			OccurredAt: time.Now(),
		}
		if err := s.natsPub.Publish(ctx, event); err != nil {
			s.log.Warn("KnowledgeService", "Failed to publish ingestion event", map[string]interface{}{"error": err.Error()})
		}
	}

	s.log.Info("KnowledgeService", "Document ingested", map[string]interface{}{"filename": filename})
	return message, nil
}
