package service

import (
	"context"

	"github.com/admin/tg-bots/astro-miniapp/internal/domain"
)

// IBackendService типизированные операции бэкенда мини-приложения.
// Ошибки: *domain.TransportError или *domain.ServerError.
type IBackendService interface {
	GetProfile(ctx context.Context, userID domain.UserID) (*domain.ProfileEnvelope, error)
	UpdateProfile(ctx context.Context, profile domain.Profile) error
	DailyAdvice(ctx context.Context, userID domain.UserID) (string, error)
	NatalChart(ctx context.Context, userID domain.UserID) (domain.NatalChart, error)
	AnalyzeNatalChart(ctx context.Context, userID domain.UserID) (string, error)
	Numerology(ctx context.Context, userID domain.UserID) (string, error)
	Affirmation(ctx context.Context, userID domain.UserID) (string, error)
	Ping(ctx context.Context) error
}
