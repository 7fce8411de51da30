package service

import (
	"context"
	"strings"

	"pdf-knowledge-be/internal/agent"
	"pdf-knowledge-be/internal/pkg/logger"
	"pdf-knowledge-be/internal/repository/memory"
)

type IChatService interface {
	// HandleQuery runs one conversational turn for the session and returns
	// the agent response.
	HandleQuery(ctx context.Context, sessionID string, query string) (string, error)

	// HandleUpload runs the ingestion turn for a freshly saved file and
	// returns the agent's ingestion message.
	HandleUpload(ctx context.Context, sessionID string, filePath string) (string, error)

	// Greeting returns the prompt a fresh connection shows.
	Greeting(sessionID string) string
}

type chatService struct {
	sessionRepo *memory.SessionRepository
	session     *agent.Session
	log         logger.ILogger
}

func NewChatService(sessionRepo *memory.SessionRepository, session *agent.Session, log logger.ILogger) IChatService {
	return &chatService{
		sessionRepo: sessionRepo,
		session:     session,
		log:         log,
	}
}

func (s *chatService) HandleQuery(ctx context.Context, sessionID string, query string) (string, error) {
	if strings.TrimSpace(query) == "" {
		return "Error: Empty query received.", nil
	}

	thread := s.thread(sessionID)

	response, next, err := s.session.ProcessTurn(ctx, thread, query)
	if err != nil {
		return "", err
	}

	s.sessionRepo.Save(sessionID, next)
	return response, nil
}

func (s *chatService) HandleUpload(ctx context.Context, sessionID string, filePath string) (string, error) {
	thread := s.thread(sessionID)

	response, next, err := s.session.ProcessUpload(ctx, thread, filePath)
	if err != nil {
		return "", err
	}

	s.sessionRepo.Save(sessionID, next)
	return response, nil
}

func (s *chatService) Greeting(sessionID string) string {
	return s.thread(sessionID).Prompt
}

func (s *chatService) thread(sessionID string) agent.Thread {
	thread, found := s.sessionRepo.Get(sessionID)
	if !found {
		thread = agent.NewThread()
		s.sessionRepo.Save(sessionID, thread)
	}
	return thread
}
