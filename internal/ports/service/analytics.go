package service

import "github.com/admin/tg-bots/astro-miniapp/internal/domain"

// IAnalyticsService принимает события без блокировки вызывающего
type IAnalyticsService interface {
	Track(event domain.AnalyticsEvent)
}
