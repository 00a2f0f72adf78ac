package dashboard

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/admin/tg-bots/astro-miniapp/internal/domain"
	"github.com/admin/tg-bots/astro-miniapp/internal/ports/cache"
	"github.com/admin/tg-bots/astro-miniapp/internal/ports/scheduler"
	"github.com/admin/tg-bots/astro-miniapp/internal/ports/service"
	"github.com/admin/tg-bots/astro-miniapp/internal/ports/view"
)

// RacePolicy что показывать, если по одной секции в полёте несколько запросов
type RacePolicy string

const (
	// RaceLastResponse - побеждает ответ, пришедший последним, независимо от порядка отправки
	RaceLastResponse RacePolicy = "last_response"
	// RaceLastRequest - ответы на вытесненные запросы отбрасываются
	RaceLastRequest RacePolicy = "last_request"
)

func ParseRacePolicy(s string) (RacePolicy, error) {
	switch p := RacePolicy(s); p {
	case "":
		return RaceLastResponse, nil
	case RaceLastResponse, RaceLastRequest:
		return p, nil
	default:
		return "", fmt.Errorf("unknown race policy %q", s)
	}
}

const defaultSaveCloseDelay = time.Second

type Config struct {
	RacePolicy     RacePolicy
	SaveCloseDelay time.Duration
}

// Service кэш секций дашборда одной сессии: гидрация из профиля, ленивая натальная карта,
// перегенерация и сохранение профиля. Все методы вызываются только из цикла событий сессии.
type Service struct {
	Backend  service.IBackendService
	Document view.IDocument
	Haptics  view.IHaptics
	Loop     scheduler.IScheduler
	Requests cache.IRequestCache
	Log      *slog.Logger

	cfg Config

	identity domain.Identity
	profile  domain.Profile
	sections map[domain.SectionID]*domain.SectionEntry

	chart        domain.NatalChart
	chartLoading bool
	chartEpoch   int

	closeTimer scheduler.Timer
}

// New создаёт контроллер секций
func New(
	backend service.IBackendService,
	document view.IDocument,
	haptics view.IHaptics,
	loop scheduler.IScheduler,
	requests cache.IRequestCache,
	cfg Config,
	log *slog.Logger,
) *Service {
	if cfg.RacePolicy == "" {
		cfg.RacePolicy = RaceLastResponse
	}
	if cfg.SaveCloseDelay <= 0 {
		cfg.SaveCloseDelay = defaultSaveCloseDelay
	}

	sections := make(map[domain.SectionID]*domain.SectionEntry, len(domain.Sections()))
	for _, id := range domain.Sections() {
		sections[id] = &domain.SectionEntry{ID: id}
	}

	return &Service{
		Backend:  backend,
		Document: document,
		Haptics:  haptics,
		Loop:     loop,
		Requests: requests,
		Log:      log,
		cfg:      cfg,
		sections: sections,
	}
}

func (s *Service) UserID() domain.UserID {
	return s.profile.UserID
}

func (s *Service) Profile() domain.Profile {
	return s.profile
}

// Section копия состояния секции
func (s *Service) Section(id domain.SectionID) domain.SectionEntry {
	if entry, ok := s.sections[id]; ok {
		return *entry
	}
	return domain.SectionEntry{ID: id}
}

func (s *Service) Chart() domain.NatalChart {
	return s.chart
}

// Close отменяет отложенное закрытие настроек
func (s *Service) Close() {
	if s.closeTimer != nil {
		s.closeTimer.Stop()
		s.closeTimer = nil
	}
}

func (s *Service) haptic(signal domain.HapticSignal) {
	if s.Haptics != nil {
		s.Haptics.Signal(signal)
	}
}
