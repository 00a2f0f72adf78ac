package navigation

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/admin/tg-bots/astro-miniapp/internal/domain"
	"github.com/admin/tg-bots/astro-miniapp/internal/ports/view"
)

// Hook действие при входе на экран
type Hook func(ctx context.Context)

// Service переключение вкладок и оверлей настроек.
// Ровно один экран активен в любой момент; оверлей не входит в набор экранов.
type Service struct {
	Document view.IDocument
	Haptics  view.IHaptics
	Log      *slog.Logger

	active       domain.Screen
	previous     domain.Screen
	settingsOpen bool
	hooks        map[domain.Screen][]Hook
}

// New стартовый экран - home
func New(document view.IDocument, haptics view.IHaptics, log *slog.Logger) *Service {
	return &Service{
		Document: document,
		Haptics:  haptics,
		Log:      log,
		active:   domain.ScreenHome,
		hooks:    make(map[domain.Screen][]Hook),
	}
}

// OnEnter добавляет хук входа на экран, хуки выполняются в порядке регистрации
func (s *Service) OnEnter(screen domain.Screen, hook Hook) {
	s.hooks[screen] = append(s.hooks[screen], hook)
}

func (s *Service) Active() domain.Screen {
	return s.active
}

func (s *Service) Previous() domain.Screen {
	return s.previous
}

func (s *Service) SettingsOpen() bool {
	return s.settingsOpen
}

// Render выставляет активность всех экранов по текущему состоянию
func (s *Service) Render() {
	s.apply(s.active)
}

// SwitchTab переключает экран и запускает хуки входа. Повторный выбор активного экрана
// тоже считается входом: ленивые загрузчики сами решают, нужен ли запрос.
func (s *Service) SwitchTab(ctx context.Context, screen domain.Screen) error {
	if !screen.IsValid() {
		return fmt.Errorf("%w: %q", domain.ErrUnknownScreen, screen)
	}

	s.apply(screen)
	s.previous, s.active = s.active, screen
	s.haptic(domain.Impact(domain.ImpactLight))

	s.Log.Debug("tab switched", "from", s.previous, "to", s.active)

	for _, hook := range s.hooks[screen] {
		hook(ctx)
	}
	return nil
}

func (s *Service) OpenSettings() {
	s.settingsOpen = true
	s.Document.SetActive(domain.ElSettingsModal, true)
	s.haptic(domain.Impact(domain.ImpactLight))
}

// CloseSettings клик по оверлею закрывает его, только если попал в фон, а не в содержимое
func (s *Service) CloseSettings(target domain.ElementID) bool {
	if target != domain.ElSettingsModal {
		return false
	}
	s.DismissSettings()
	return true
}

// DismissSettings явное закрытие
func (s *Service) DismissSettings() {
	s.settingsOpen = false
	s.Document.SetActive(domain.ElSettingsModal, false)
}

// apply деактивирует все экраны, кроме target, в одной задаче цикла.
// Патчи задачи уходят клиенту одним кадром, промежуточного состояния он не видит.
func (s *Service) apply(target domain.Screen) {
	for _, screen := range domain.Screens() {
		active := screen == target
		s.Document.SetActive(domain.PageElement(screen), active)
		s.Document.SetActive(domain.NavElement(screen), active)
	}
}

func (s *Service) haptic(signal domain.HapticSignal) {
	if s.Haptics != nil {
		s.Haptics.Signal(signal)
	}
}
