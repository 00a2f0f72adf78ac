package inmemory

import (
	"sync"

	"github.com/admin/tg-bots/astro-miniapp/internal/domain"
	"github.com/admin/tg-bots/astro-miniapp/internal/ports/cache"
	"github.com/google/uuid"
)

// RequestCache in-memory реализация кэша последних request_id.
// Один экземпляр на сессию, поэтому ключ - только секция.
type RequestCache struct {
	mu            sync.RWMutex
	lastRequestID map[domain.SectionID]uuid.UUID
}

// NewRequestCache создаёт новый in-memory кэш для request_id
func NewRequestCache() cache.IRequestCache {
	return &RequestCache{
		lastRequestID: make(map[domain.SectionID]uuid.UUID),
	}
}

func (c *RequestCache) Issue(section domain.SectionID) uuid.UUID {
	requestID := uuid.New()
	c.SetLastRequestID(section, requestID)
	return requestID
}

// SetLastRequestID сохраняет последний request_id для секции
func (c *RequestCache) SetLastRequestID(section domain.SectionID, requestID uuid.UUID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lastRequestID[section] = requestID
}

// IsLastRequestID проверяет, является ли request_id последним для секции
func (c *RequestCache) IsLastRequestID(section domain.SectionID, requestID uuid.UUID) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	lastID, exists := c.lastRequestID[section]
	return exists && lastID == requestID
}
