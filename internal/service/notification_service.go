package service

import (
	"context"
	"fmt"

	"pdf-knowledge-be/internal/constant"
	"pdf-knowledge-be/internal/dto"
	"pdf-knowledge-be/internal/pkg/logger"
	"pdf-knowledge-be/pkg/events"
	pktNats "pdf-knowledge-be/pkg/nats"
)

// NotificationDelivery defines how to push real-time updates.
// Typically implemented by the WebSocket Hub.
type NotificationDelivery interface {
	Broadcast(event dto.ChatEvent)
}

// NotificationService turns bus events into chat notifications so every
// connected client sees ingestion and extraction progress.
type NotificationService struct {
	subscriber *pktNats.Subscriber
	delivery   NotificationDelivery
	logger     logger.ILogger
}

func NewNotificationService(sub *pktNats.Subscriber, delivery NotificationDelivery, log logger.ILogger) *NotificationService {
	return &NotificationService{
		subscriber: sub,
		delivery:   delivery,
		logger:     log,
	}
}

// Start begins listening to the event bus.
func (s *NotificationService) Start() {
	err := s.subscriber.Subscribe("events.>", "notif-service-worker", s.handleEvent)
	if err != nil {
		s.logger.Error("NotificationService", "Failed to start notification subscriber", map[string]interface{}{"error": err})
		return
	}
	s.logger.Info("NotificationService", "Notification service started, listening to events.>", nil)
}

func (s *NotificationService) handleEvent(ctx context.Context, event events.Event) error {
	s.logger.Info("NotificationService", "Processing event", map[string]interface{}{"type": event.EventType()})

	text := renderNotification(event)
	if text == "" {
		return nil
	}

	if s.delivery != nil {
		s.delivery.Broadcast(dto.ChatEvent{
			Event: constant.ChatEventNotification,
			Data:  text,
		})
	}
	return nil
}

func renderNotification(event events.Event) string {
	payload := event.Payload()
	switch event.EventType() {
	case constant.EventDocumentIngested:
		return fmt.Sprintf("Document '%v' was added to the knowledge base.", payload["filename"])
	case constant.EventTopicCommitted:
		return fmt.Sprintf("Topic '%v' is now available in memory.", payload["topic"])
	default:
		return ""
	}
}
