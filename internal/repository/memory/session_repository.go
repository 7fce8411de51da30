package memory

import (
	"time"

	"pdf-knowledge-be/internal/agent"

	"github.com/patrickmn/go-cache"
)

// SessionRepository keeps per-session conversation threads in process memory.
// Threads expire after an hour of inactivity; an expired session simply
// starts a fresh conversation.
type SessionRepository struct {
	cache *cache.Cache
}

func NewSessionRepository() *SessionRepository {
	// Default expiration 1 hour, expired entries purged every 10 minutes
	c := cache.New(1*time.Hour, 10*time.Minute)
	return &SessionRepository{cache: c}
}

func (r *SessionRepository) Save(sessionID string, thread agent.Thread) {
	r.cache.Set(sessionID, thread, cache.DefaultExpiration)
}

func (r *SessionRepository) Get(sessionID string) (agent.Thread, bool) {
	if x, found := r.cache.Get(sessionID); found {
		return x.(agent.Thread), true
	}
	return agent.Thread{}, false
}

func (r *SessionRepository) Delete(sessionID string) {
	r.cache.Delete(sessionID)
}
