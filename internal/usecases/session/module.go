package session

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/admin/tg-bots/astro-miniapp/internal/domain"
	"github.com/admin/tg-bots/astro-miniapp/internal/pkg/logger"
	"github.com/admin/tg-bots/astro-miniapp/internal/pkg/metrics"
	"github.com/admin/tg-bots/astro-miniapp/internal/ports/cache"
	"github.com/admin/tg-bots/astro-miniapp/internal/ports/scheduler"
	"github.com/admin/tg-bots/astro-miniapp/internal/ports/service"
	"github.com/admin/tg-bots/astro-miniapp/internal/ports/view"
	"github.com/admin/tg-bots/astro-miniapp/internal/usecases/dashboard"
	"github.com/admin/tg-bots/astro-miniapp/internal/usecases/navigation"
	"github.com/admin/tg-bots/astro-miniapp/internal/usecases/practice"
	"github.com/admin/tg-bots/astro-miniapp/internal/usecases/texts"
	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

var ErrThrottled = errors.New("too many actions")

// Результаты действий для метрик
const (
	resultOK        = "ok"
	resultInvalid   = "invalid"
	resultThrottled = "throttled"
	resultIgnored   = "ignored"
)

// Deps внешние зависимости сессии
type Deps struct {
	Backend   service.IBackendService
	Document  view.IDocument
	Haptics   view.IHaptics
	Loop      scheduler.IScheduler
	Requests  cache.IRequestCache
	Analytics service.IAnalyticsService
	Log       *slog.Logger
}

// Session одно открытое мини-приложение: собирает кэш секций, навигацию и практику
// поверх одного цикла событий. Start и Dispatch вызываются только из этого цикла.
type Session struct {
	ID       string
	Identity domain.Identity

	Dashboard *dashboard.Service
	Navigator *navigation.Service
	Breathing *practice.Breathing

	analytics service.IAnalyticsService
	limiter   *rate.Limiter
	log       *slog.Logger
	now       func() time.Time
}

func New(cfg Config, identity domain.Identity, deps Deps) (*Session, error) {
	policy, err := dashboard.ParseRacePolicy(cfg.RacePolicy)
	if err != nil {
		return nil, err
	}

	id := uuid.NewString()
	log := logger.ForSession(deps.Log, id, int64(identity.UserID))

	dash := dashboard.New(
		deps.Backend,
		deps.Document,
		deps.Haptics,
		deps.Loop,
		deps.Requests,
		dashboard.Config{
			RacePolicy:     policy,
			SaveCloseDelay: cfg.SaveCloseDelay,
		},
		log,
	)
	nav := navigation.New(deps.Document, deps.Haptics, log)
	breathing := practice.New(deps.Document, deps.Haptics, deps.Loop, cfg.Practice, log)

	limit := rate.Inf
	if cfg.ActionRate > 0 {
		limit = rate.Limit(cfg.ActionRate)
	}
	burst := cfg.ActionBurst
	if burst <= 0 {
		burst = 1
	}

	s := &Session{
		ID:        id,
		Identity:  identity,
		Dashboard: dash,
		Navigator: nav,
		Breathing: breathing,
		analytics: deps.Analytics,
		limiter:   rate.NewLimiter(limit, burst),
		log:       log,
		now:       time.Now,
	}

	nav.OnEnter(domain.ScreenAstro, func(ctx context.Context) {
		dash.LoadNatalChart(ctx, false)
	})

	return s, nil
}

// Start первичная отрисовка и загрузка профиля
func (s *Session) Start(ctx context.Context) {
	s.Navigator.Render()
	s.Document().SetText(domain.ElBreathText, texts.BreathIdle)
	s.Document().SetText(domain.ElBtnBreath, texts.BtnStartBreath)

	s.Dashboard.Start(ctx, s.Identity)

	s.track(domain.EventSessionStart, "")
	s.log.Info("session started", "guest", s.Identity.Guest)
}

// Document документ сессии
func (s *Session) Document() view.IDocument {
	return s.Dashboard.Document
}

// Dispatch выполняет действие пользователя. Ошибка означает, что действие отклонено;
// сбои запросов к бэкенду сюда не попадают, они показываются в самих секциях.
func (s *Session) Dispatch(ctx context.Context, action domain.Action) error {
	if s.limited(action) && !s.limiter.Allow() {
		metrics.ObserveAction(actionLabel(action.Type), resultThrottled)
		return ErrThrottled
	}

	if err := action.Validate(); err != nil {
		metrics.ObserveAction(actionLabel(action.Type), resultInvalid)
		return err
	}

	result := resultOK

	switch action.Type {
	case domain.ActionSwitchTab:
		if err := s.Navigator.SwitchTab(ctx, action.Screen); err != nil {
			return err
		}
		s.track(domain.EventTabSwitch, string(action.Screen))

	case domain.ActionOpenSettings:
		s.Navigator.OpenSettings()

	case domain.ActionCloseSettings:
		if !s.Navigator.CloseSettings(action.Target) {
			result = resultIgnored
		}

	case domain.ActionDismissSettings:
		s.Navigator.DismissSettings()

	case domain.ActionSaveProfile:
		birthDataChanged := s.Dashboard.SaveProfile(ctx, *action.Profile)
		details := ""
		if birthDataChanged {
			details = "birth_data_changed"
		}
		s.track(domain.EventProfileSaved, details)

	case domain.ActionRegenerate:
		if err := s.Dashboard.Regenerate(ctx, action.Section); err != nil {
			return err
		}
		s.track(domain.EventSectionRegenerate, string(action.Section))

	case domain.ActionToggleBreathing:
		if s.Breathing.Toggle() {
			s.track(domain.EventPracticeStart, "")
		} else {
			s.track(domain.EventPracticeStop, "")
		}
	}

	metrics.ObserveAction(string(action.Type), result)
	return nil
}

// limited - действие расходует токен лимитера. Закрытие модалки и остановка
// практики только возвращают интерфейс в покой, их нельзя отклонять.
func (s *Session) limited(action domain.Action) bool {
	switch action.Type {
	case domain.ActionCloseSettings, domain.ActionDismissSettings:
		return false
	case domain.ActionToggleBreathing:
		return !s.Breathing.Running()
	}
	return true
}

// Close останавливает таймеры сессии. Запросы в полёте дорабатывают сами.
func (s *Session) Close() {
	if s.Breathing.Running() {
		s.track(domain.EventPracticeStop, "session_closed")
	}
	s.Breathing.Close()
	s.Dashboard.Close()
	s.log.Info("session closed")
}

func (s *Session) track(eventType domain.EventType, details string) {
	if s.analytics == nil {
		return
	}
	s.analytics.Track(domain.AnalyticsEvent{
		UserID:    s.Identity.UserID,
		SessionID: s.ID,
		EventType: eventType,
		Details:   details,
		CreatedAt: s.now().UTC(),
	})
}

// actionLabel неизвестные типы схлопываются в один лейбл метрики
func actionLabel(t domain.ActionType) string {
	switch t {
	case domain.ActionSwitchTab,
		domain.ActionOpenSettings,
		domain.ActionCloseSettings,
		domain.ActionDismissSettings,
		domain.ActionSaveProfile,
		domain.ActionRegenerate,
		domain.ActionToggleBreathing:
		return string(t)
	default:
		return "unknown"
	}
}
