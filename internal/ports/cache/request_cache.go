package cache

import (
	"github.com/admin/tg-bots/astro-miniapp/internal/domain"
	"github.com/google/uuid"
)

// IRequestCache последний отправленный request_id по секции сессии
type IRequestCache interface {
	// Issue выдаёт новый request_id и делает его последним для секции
	Issue(section domain.SectionID) uuid.UUID
	SetLastRequestID(section domain.SectionID, requestID uuid.UUID)
	IsLastRequestID(section domain.SectionID, requestID uuid.UUID) bool
}
