package practice

import (
	"log/slog"
	"time"

	"github.com/admin/tg-bots/astro-miniapp/internal/domain"
	"github.com/admin/tg-bots/astro-miniapp/internal/pkg/metrics"
	"github.com/admin/tg-bots/astro-miniapp/internal/ports/scheduler"
	"github.com/admin/tg-bots/astro-miniapp/internal/ports/view"
	"github.com/admin/tg-bots/astro-miniapp/internal/usecases/texts"
)

// Config длительности цикла, синхронные с CSS-анимацией круга:
// 0-35% вдох, 35-65% задержка, 65-100% выдох
type Config struct {
	Cycle    time.Duration `envconfig:"CYCLE" default:"12s"`
	HoldAt   time.Duration `envconfig:"HOLD_AT" default:"4200ms"`
	ExhaleAt time.Duration `envconfig:"EXHALE_AT" default:"7800ms"`
}

// доли цикла в процентах
const (
	holdPercent   = 35
	exhalePercent = 65
)

func DefaultConfig() Config {
	return Config{
		Cycle:    12 * time.Second,
		HoldAt:   4200 * time.Millisecond,
		ExhaleAt: 7800 * time.Millisecond,
	}
}

// Breathing дыхательная практика: Stopped/Running, внутри Running три фазы по кругу.
// Остановка отменяет повтор цикла; уже запланированные смены фаз проверяют
// running и эпоху запуска и после остановки ничего не делают.
type Breathing struct {
	Document view.IDocument
	Haptics  view.IHaptics
	Loop     scheduler.IScheduler
	Log      *slog.Logger

	cfg Config

	running bool
	epoch   int
	phase   domain.Phase
	cycle   scheduler.Timer
	phases  []scheduler.Timer
}

func New(document view.IDocument, haptics view.IHaptics, loop scheduler.IScheduler, cfg Config, log *slog.Logger) *Breathing {
	def := DefaultConfig()
	if cfg.Cycle <= 0 {
		cfg.Cycle = def.Cycle
	}
	// смещения фаз вне цикла пересчитываются в тех же долях, что у анимации
	if cfg.HoldAt <= 0 || cfg.HoldAt >= cfg.Cycle {
		cfg.HoldAt = cfg.Cycle / 100 * holdPercent
	}
	if cfg.ExhaleAt <= cfg.HoldAt || cfg.ExhaleAt >= cfg.Cycle {
		cfg.ExhaleAt = cfg.Cycle / 100 * exhalePercent
	}

	return &Breathing{
		Document: document,
		Haptics:  haptics,
		Loop:     loop,
		Log:      log,
		cfg:      cfg,
	}
}

func (b *Breathing) Running() bool {
	return b.running
}

// Phase текущая фаза, пустая строка - практика остановлена
func (b *Breathing) Phase() domain.Phase {
	return b.phase
}

// Toggle возвращает true, если практика запущена
func (b *Breathing) Toggle() bool {
	if b.running {
		b.Stop()
		return false
	}
	b.Start()
	return true
}

func (b *Breathing) Start() {
	if b.running {
		return
	}
	b.running = true
	b.epoch++
	epoch := b.epoch

	b.Document.SetActive(domain.ElBreathCircle, true)
	b.Document.SetText(domain.ElBtnBreath, texts.BtnStopBreath)

	b.runCycle(epoch)
	b.cycle = b.Loop.Every(b.cfg.Cycle, func() {
		if !b.current(epoch) {
			return
		}
		b.runCycle(epoch)
	})

	b.Log.Debug("breathing started", "epoch", epoch)
}

func (b *Breathing) Stop() {
	if !b.running {
		return
	}
	b.running = false
	b.phase = ""

	if b.cycle != nil {
		b.cycle.Stop()
		b.cycle = nil
	}

	b.Document.SetActive(domain.ElBreathCircle, false)
	b.Document.SetText(domain.ElBreathText, texts.BreathIdle)
	b.Document.SetText(domain.ElBtnBreath, texts.BtnStartBreath)

	b.Log.Debug("breathing stopped", "epoch", b.epoch)
}

// Close останавливает практику и все отложенные смены фаз, вызывается при закрытии сессии
func (b *Breathing) Close() {
	b.Stop()
	for _, t := range b.phases {
		t.Stop()
	}
	b.phases = nil
}

func (b *Breathing) runCycle(epoch int) {
	b.enter(domain.PhaseInhale)
	metrics.BreathingCycleStarted()

	b.phases = append(b.phases[:0],
		b.Loop.AfterFunc(b.cfg.HoldAt, func() {
			if !b.current(epoch) {
				return
			}
			b.enter(domain.PhaseHold)
		}),
		b.Loop.AfterFunc(b.cfg.ExhaleAt, func() {
			if !b.current(epoch) {
				return
			}
			b.enter(domain.PhaseExhale)
		}),
	)
}

func (b *Breathing) enter(phase domain.Phase) {
	b.phase = phase

	switch phase {
	case domain.PhaseInhale:
		b.Document.SetText(domain.ElBreathText, texts.BreathInhale)
		b.haptic(domain.Impact(domain.ImpactMedium))
	case domain.PhaseHold:
		b.Document.SetText(domain.ElBreathText, texts.BreathHold)
	case domain.PhaseExhale:
		b.Document.SetText(domain.ElBreathText, texts.BreathExhale)
		b.haptic(domain.Impact(domain.ImpactLight))
	}
}

// current колбэк относится к текущему запуску и практика не остановлена
func (b *Breathing) current(epoch int) bool {
	return b.running && epoch == b.epoch
}

func (b *Breathing) haptic(signal domain.HapticSignal) {
	if b.Haptics != nil {
		b.Haptics.Signal(signal)
	}
}
