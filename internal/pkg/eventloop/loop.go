// Package eventloop - однопоточный цикл событий сессии.
//
// Действия пользователя, завершения сетевых запросов и срабатывания таймеров выполняются
// последовательно в одной горутине, поэтому код use case работает без блокировок.
package eventloop

import (
	"context"
	"log/slog"
	"runtime/debug"
	"sync"
	"sync/atomic"
	"time"

	"github.com/admin/tg-bots/astro-miniapp/internal/ports/scheduler"
)

// Loop реализует scheduler.IScheduler
type Loop struct {
	log *slog.Logger

	mu     sync.Mutex
	queue  []func()
	timers map[*timer]struct{}
	closed bool

	wake     chan struct{}
	inflight sync.WaitGroup

	afterTask []func()
}

var _ scheduler.IScheduler = (*Loop)(nil)

func New(log *slog.Logger) *Loop {
	return &Loop{
		log:    log,
		timers: make(map[*timer]struct{}),
		wake:   make(chan struct{}, 1),
	}
}

// Run обрабатывает очередь до отмены ctx. После выхода новые задачи отбрасываются,
// а все таймеры останавливаются.
func (l *Loop) Run(ctx context.Context) error {
	defer l.shutdown()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-l.wake:
		}

		for {
			fn := l.next()
			if fn == nil {
				break
			}
			l.exec(fn)
			for _, hook := range l.afterTask {
				l.exec(hook)
			}

			if ctx.Err() != nil {
				return nil
			}
		}
	}
}

// AfterTask добавляет hook, который выполняется в горутине цикла после каждой задачи.
// Так все изменения одной задачи можно отправить клиенту разом. Вызывать до Run.
func (l *Loop) AfterTask(hook func()) {
	l.afterTask = append(l.afterTask, hook)
}

// Post ставит fn в конец очереди
func (l *Loop) Post(fn func()) {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return
	}
	l.queue = append(l.queue, fn)
	l.mu.Unlock()

	select {
	case l.wake <- struct{}{}:
	default:
	}
}

// Go запускает work в отдельной горутине. work не зависит от жизни цикла:
// запрос, ушедший до закрытия сессии, доходит до конца (аналог fetch keepalive).
func (l *Loop) Go(work func(), done func()) {
	l.inflight.Add(1)
	go func() {
		defer l.inflight.Done()
		work()
		if done != nil {
			l.Post(done)
		}
	}()
}

// Wait дожидается всех горутин, запущенных через Go
func (l *Loop) Wait() {
	l.inflight.Wait()
}

func (l *Loop) AfterFunc(d time.Duration, fn func()) scheduler.Timer {
	return l.schedule(d, 0, fn)
}

func (l *Loop) Every(d time.Duration, fn func()) scheduler.Timer {
	return l.schedule(d, d, fn)
}

func (l *Loop) schedule(d, period time.Duration, fn func()) *timer {
	t := &timer{loop: l}

	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		t.stopped.Store(true)
		return t
	}
	l.timers[t] = struct{}{}

	t.mu.Lock()
	t.t = time.AfterFunc(d, func() {
		if t.stopped.Load() {
			return
		}
		l.Post(func() {
			// таймер могли остановить, пока колбэк стоял в очереди
			if t.stopped.Load() {
				return
			}
			if period == 0 {
				t.release()
			}
			fn()
		})
		if period > 0 {
			t.mu.Lock()
			if !t.stopped.Load() {
				t.t.Reset(period)
			}
			t.mu.Unlock()
		}
	})
	t.mu.Unlock()
	l.mu.Unlock()

	return t
}

func (l *Loop) next() func() {
	l.mu.Lock()
	defer l.mu.Unlock()

	if len(l.queue) == 0 {
		return nil
	}
	fn := l.queue[0]
	l.queue[0] = nil
	l.queue = l.queue[1:]
	return fn
}

func (l *Loop) exec(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			l.log.Error("panic in session task",
				"panic", r,
				"stack", string(debug.Stack()),
			)
		}
	}()
	fn()
}

func (l *Loop) shutdown() {
	l.mu.Lock()
	l.closed = true
	l.queue = nil
	timers := l.timers
	l.timers = make(map[*timer]struct{})
	l.mu.Unlock()

	for t := range timers {
		t.halt()
	}
}

type timer struct {
	loop    *Loop
	mu      sync.Mutex
	t       *time.Timer
	stopped atomic.Bool
}

func (t *timer) Stop() bool {
	if t.stopped.Swap(true) {
		return false
	}
	t.release()

	t.mu.Lock()
	defer t.mu.Unlock()
	if t.t == nil {
		return false
	}
	t.t.Stop()
	return true
}

func (t *timer) halt() {
	t.stopped.Store(true)
	t.mu.Lock()
	if t.t != nil {
		t.t.Stop()
	}
	t.mu.Unlock()
}

func (t *timer) release() {
	t.loop.mu.Lock()
	delete(t.loop.timers, t)
	t.loop.mu.Unlock()
}
