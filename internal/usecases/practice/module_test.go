package practice

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/admin/tg-bots/astro-miniapp/internal/adapters/secondary/webview"
	"github.com/admin/tg-bots/astro-miniapp/internal/domain"
	"github.com/admin/tg-bots/astro-miniapp/internal/pkg/eventloop"
	"github.com/admin/tg-bots/astro-miniapp/internal/pkg/eventloop/eventlooptest"
	"github.com/admin/tg-bots/astro-miniapp/internal/pkg/logger"
	"github.com/admin/tg-bots/astro-miniapp/internal/usecases/texts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type harness struct {
	b       *Breathing
	doc     *webview.Document
	loop    *eventlooptest.Scheduler
	labels  []string
	haptics []string
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	h := &harness{loop: eventlooptest.New()}
	h.doc = webview.New(func(p domain.Patch) {
		switch {
		case p.Op == domain.PatchHaptic:
			h.haptics = append(h.haptics, p.Value)
		case p.Op == domain.PatchText && p.Element == domain.ElBreathText:
			h.labels = append(h.labels, p.Value)
		}
	})
	h.b = New(h.doc, h.doc, h.loop, DefaultConfig(), logger.NewNop())
	return h
}

func (h *harness) label() string {
	return h.doc.Element(domain.ElBreathText).Content
}

func TestCycleLabelsAndHaptics(t *testing.T) {
	h := newHarness(t)
	h.loop.Run(h.b.Start)

	assert.True(t, h.b.Running())
	assert.True(t, h.doc.Element(domain.ElBreathCircle).Active)
	assert.Equal(t, texts.BtnStopBreath, h.doc.Element(domain.ElBtnBreath).Content)
	assert.Equal(t, texts.BreathInhale, h.label())
	assert.Equal(t, domain.PhaseInhale, h.b.Phase())
	assert.Equal(t, []string{"impact:medium"}, h.haptics)

	h.loop.Advance(4199 * time.Millisecond)
	assert.Equal(t, texts.BreathInhale, h.label())

	h.loop.Advance(time.Millisecond)
	assert.Equal(t, texts.BreathHold, h.label())
	assert.Equal(t, domain.PhaseHold, h.b.Phase())
	assert.Equal(t, []string{"impact:medium"}, h.haptics)

	h.loop.Advance(3600 * time.Millisecond)
	assert.Equal(t, texts.BreathExhale, h.label())
	assert.Equal(t, domain.PhaseExhale, h.b.Phase())
	assert.Equal(t, []string{"impact:medium", "impact:light"}, h.haptics)

	h.loop.Advance(4200 * time.Millisecond)
	assert.Equal(t, texts.BreathInhale, h.label())
	assert.Equal(t, []string{"impact:medium", "impact:light", "impact:medium"}, h.haptics)

	// ещё два полных цикла
	h.loop.Advance(24 * time.Second)
	assert.Equal(t, []string{
		texts.BreathInhale, texts.BreathHold, texts.BreathExhale,
		texts.BreathInhale, texts.BreathHold, texts.BreathExhale,
		texts.BreathInhale, texts.BreathHold, texts.BreathExhale,
		texts.BreathInhale,
	}, h.labels)
}

// Остановка на границе фазы: колбэк смены фазы уже стоит в очереди цикла,
// но выполняется после Stop.
func TestStopAtPhaseBoundaries(t *testing.T) {
	boundaries := []time.Duration{
		4200 * time.Millisecond,
		7800 * time.Millisecond,
		12 * time.Second,
	}
	offsets := []time.Duration{-50 * time.Millisecond, 0, 50 * time.Millisecond}

	for _, boundary := range boundaries {
		for _, offset := range offsets {
			t.Run(fmt.Sprintf("%v%+v", boundary, offset), func(t *testing.T) {
				h := newHarness(t)
				h.loop.Run(h.b.Start)

				h.loop.Advance(boundary - 100*time.Millisecond)
				h.loop.Step(100*time.Millisecond + offset)

				h.b.Stop()
				labelsAtStop := len(h.labels)
				hapticsAtStop := len(h.haptics)

				h.loop.Flush()
				h.loop.Advance(30 * time.Second)

				assert.False(t, h.b.Running())
				assert.Empty(t, h.b.Phase())
				assert.Equal(t, texts.BreathIdle, h.label())
				assert.Len(t, h.labels, labelsAtStop, "метка фазы сменилась после остановки")
				assert.Len(t, h.haptics, hapticsAtStop)
				assert.Equal(t, texts.BtnStartBreath, h.doc.Element(domain.ElBtnBreath).Content)
				assert.False(t, h.doc.Element(domain.ElBreathCircle).Active)
			})
		}
	}
}

func TestRestartWithinCycleIgnoresStalePhases(t *testing.T) {
	h := newHarness(t)
	h.loop.Run(h.b.Start)

	h.loop.Advance(4 * time.Second)
	h.loop.Run(h.b.Stop)
	h.loop.Run(h.b.Start)
	assert.Equal(t, texts.BreathInhale, h.label())

	// старые таймеры задержки (4.2с) и выдоха (7.8с)
	h.loop.Advance(200 * time.Millisecond)
	assert.Equal(t, texts.BreathInhale, h.label())
	h.loop.Advance(3600 * time.Millisecond)
	assert.Equal(t, texts.BreathInhale, h.label())

	// новый цикл отсчитывается от повторного запуска
	h.loop.Advance(400 * time.Millisecond)
	assert.Equal(t, texts.BreathHold, h.label())
	h.loop.Advance(3600 * time.Millisecond)
	assert.Equal(t, texts.BreathExhale, h.label())
	h.loop.Advance(4200 * time.Millisecond)
	assert.Equal(t, texts.BreathInhale, h.label())
}

func TestToggle(t *testing.T) {
	h := newHarness(t)

	var started bool
	h.loop.Run(func() { started = h.b.Toggle() })
	assert.True(t, started)
	assert.True(t, h.b.Running())

	h.loop.Run(func() { started = h.b.Toggle() })
	assert.False(t, started)
	assert.False(t, h.b.Running())
	assert.Equal(t, texts.BreathIdle, h.label())
}

func TestStartStopIdempotent(t *testing.T) {
	h := newHarness(t)

	h.loop.Run(h.b.Stop)
	assert.Empty(t, h.labels)

	h.loop.Run(h.b.Start)
	h.loop.Run(h.b.Start)
	assert.Equal(t, 3, h.loop.ActiveTimers())
	assert.Equal(t, []string{"impact:medium"}, h.haptics)

	h.loop.Run(h.b.Close)
	assert.Zero(t, h.loop.ActiveTimers())
}

func TestConfigFallback(t *testing.T) {
	b := New(nil, nil, eventlooptest.New(), Config{Cycle: 10 * time.Second}, logger.NewNop())
	assert.Equal(t, 3500*time.Millisecond, b.cfg.HoldAt)
	assert.Equal(t, 6500*time.Millisecond, b.cfg.ExhaleAt)

	b = New(nil, nil, eventlooptest.New(), Config{}, logger.NewNop())
	assert.Equal(t, DefaultConfig(), b.cfg)
}

func TestWithEventLoop(t *testing.T) {
	loop := eventloop.New(logger.NewNop())
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = loop.Run(ctx)
	}()
	defer func() {
		cancel()
		<-done
	}()

	doc := webview.New(nil)
	b := New(doc, doc, loop, Config{
		Cycle:    90 * time.Millisecond,
		HoldAt:   30 * time.Millisecond,
		ExhaleAt: 60 * time.Millisecond,
	}, logger.NewNop())

	loop.Post(b.Start)
	require.Eventually(t, func() bool {
		return doc.Element(domain.ElBreathText).Content == texts.BreathExhale
	}, 2*time.Second, 5*time.Millisecond)

	stopped := make(chan struct{})
	loop.Post(func() {
		b.Stop()
		close(stopped)
	})
	<-stopped

	time.Sleep(200 * time.Millisecond)
	assert.Equal(t, texts.BreathIdle, doc.Element(domain.ElBreathText).Content)
}
