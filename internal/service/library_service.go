package service

import (
	"context"
	"time"

	"pdf-knowledge-be/internal/dto"
	"pdf-knowledge-be/internal/store"
	"pdf-knowledge-be/pkg/vectorstore"

	"github.com/patrickmn/go-cache"
)

const statsCacheKey = "knowledge_stats"

type ILibraryService interface {
	Documents(ctx context.Context) (*dto.DocumentsResponse, error)
	Topics(ctx context.Context) (*dto.TopicsResponse, error)
	TopicFacts(ctx context.Context, topic string) (*dto.TopicFactsResponse, error)
	Stats(ctx context.Context) (*dto.StatsResponse, error)
}

// libraryService answers the read-only browsing surface over the registry,
// the topic memory and the vector store.
type libraryService struct {
	registry    *store.DocumentRegistry
	topicMemory *store.TopicMemory
	vectorStore vectorstore.Store
	statsCache  *cache.Cache
}

func NewLibraryService(
	registry *store.DocumentRegistry,
	topicMemory *store.TopicMemory,
	vectorStore vectorstore.Store,
) ILibraryService {
	return &libraryService{
		registry:    registry,
		topicMemory: topicMemory,
		vectorStore: vectorStore,
		// Stats are cheap but hit three stores; a short TTL keeps dashboard
		// polling off the disk.
		statsCache: cache.New(10*time.Second, time.Minute),
	}
}

func (s *libraryService) Documents(ctx context.Context) (*dto.DocumentsResponse, error) {
	docs, err := s.registry.All()
	if err != nil {
		return nil, err
	}
	return &dto.DocumentsResponse{Documents: docs}, nil
}

func (s *libraryService) Topics(ctx context.Context) (*dto.TopicsResponse, error) {
	topics, err := s.topicMemory.Topics()
	if err != nil {
		return nil, err
	}
	return &dto.TopicsResponse{Topics: topics}, nil
}

func (s *libraryService) TopicFacts(ctx context.Context, topic string) (*dto.TopicFactsResponse, error) {
	facts, ok, err := s.topicMemory.Facts(topic)
	if err != nil {
		return nil, err
	}
	if !ok {
		facts = "No facts found for this topic."
	}
	return &dto.TopicFactsResponse{Topic: topic, Facts: facts}, nil
}

func (s *libraryService) Stats(ctx context.Context) (*dto.StatsResponse, error) {
	if cached, found := s.statsCache.Get(statsCacheKey); found {
		return cached.(*dto.StatsResponse), nil
	}

	docCount, err := s.registry.Count()
	if err != nil {
		return nil, err
	}
	topicCount, err := s.topicMemory.Count()
	if err != nil {
		return nil, err
	}
	chunkCount, err := s.vectorStore.Count(ctx)
	if err != nil {
		return nil, err
	}

	stats := &dto.StatsResponse{
		DocumentCount: docCount,
		TopicCount:    topicCount,
		ChunkCount:    chunkCount,
	}
	s.statsCache.Set(statsCacheKey, stats, cache.DefaultExpiration)
	return stats, nil
}
