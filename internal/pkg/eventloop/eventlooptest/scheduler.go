// Package eventlooptest - детерминированный планировщик для тестов: виртуальное время,
// ручное завершение сетевых запросов.
package eventlooptest

import (
	"sort"
	"time"

	"github.com/admin/tg-bots/astro-miniapp/internal/ports/scheduler"
)

// Scheduler реализует scheduler.IScheduler без горутин.
// Post и done-колбэки копятся в очереди и выполняются в Flush.
type Scheduler struct {
	now     time.Duration
	seq     int
	queue   []func()
	timers  []*timer
	pending []job
	manual  bool
}

var _ scheduler.IScheduler = (*Scheduler)(nil)

type job struct {
	work func()
	done func()
}

// New - Go выполняет work сразу, как будто ответ пришёл мгновенно
func New() *Scheduler {
	return &Scheduler{}
}

// NewManual - Go откладывает запрос до Complete
func NewManual() *Scheduler {
	return &Scheduler{manual: true}
}

func (s *Scheduler) Now() time.Duration {
	return s.now
}

func (s *Scheduler) Post(fn func()) {
	s.queue = append(s.queue, fn)
}

func (s *Scheduler) Go(work func(), done func()) {
	if s.manual {
		s.pending = append(s.pending, job{work: work, done: done})
		return
	}
	work()
	if done != nil {
		s.Post(done)
	}
}

// Run выполняет fn как задачу цикла и разбирает очередь
func (s *Scheduler) Run(fn func()) {
	s.Post(fn)
	s.Flush()
}

// Flush выполняет очередь, включая задачи, поставленные по ходу
func (s *Scheduler) Flush() {
	for len(s.queue) > 0 {
		fn := s.queue[0]
		s.queue = s.queue[1:]
		fn()
	}
}

// Pending число незавершённых запросов (только NewManual)
func (s *Scheduler) Pending() int {
	return len(s.pending)
}

// Complete завершает i-й по порядку отправки незавершённый запрос
func (s *Scheduler) Complete(i int) {
	j := s.pending[i]
	s.pending = append(s.pending[:i:i], s.pending[i+1:]...)
	j.work()
	if j.done != nil {
		s.Post(j.done)
	}
	s.Flush()
}

// CompleteAll завершает запросы в порядке отправки, включая порождённые по ходу
func (s *Scheduler) CompleteAll() {
	for len(s.pending) > 0 {
		s.Complete(0)
	}
}

func (s *Scheduler) AfterFunc(d time.Duration, fn func()) scheduler.Timer {
	return s.add(d, 0, fn)
}

func (s *Scheduler) Every(d time.Duration, fn func()) scheduler.Timer {
	return s.add(d, d, fn)
}

// ActiveTimers число неостановленных и не сработавших таймеров
func (s *Scheduler) ActiveTimers() int {
	n := 0
	for _, t := range s.timers {
		if !t.stopped {
			n++
		}
	}
	return n
}

// Advance сдвигает время на d, выполняя сработавшие таймеры по одному
func (s *Scheduler) Advance(d time.Duration) {
	s.Flush()
	target := s.now + d
	for {
		t := s.nextDue(target)
		if t == nil {
			break
		}
		s.fire(t)
		s.Flush()
	}
	s.now = target
}

// Step сдвигает время на d и ставит колбэки сработавших таймеров в очередь, не выполняя их.
// Так моделируется таймер, сработавший одновременно с действием пользователя.
func (s *Scheduler) Step(d time.Duration) {
	target := s.now + d
	for {
		t := s.nextDue(target)
		if t == nil {
			break
		}
		s.fire(t)
	}
	s.now = target
}

func (s *Scheduler) add(d, period time.Duration, fn func()) *timer {
	s.seq++
	t := &timer{at: s.now + d, period: period, fn: fn, seq: s.seq}
	s.timers = append(s.timers, t)
	return t
}

func (s *Scheduler) nextDue(target time.Duration) *timer {
	active := s.timers[:0]
	for _, t := range s.timers {
		if !t.stopped {
			active = append(active, t)
		}
	}
	s.timers = active

	sort.SliceStable(s.timers, func(i, j int) bool {
		if s.timers[i].at == s.timers[j].at {
			return s.timers[i].seq < s.timers[j].seq
		}
		return s.timers[i].at < s.timers[j].at
	})

	if len(s.timers) == 0 || s.timers[0].at > target {
		return nil
	}
	return s.timers[0]
}

func (s *Scheduler) fire(t *timer) {
	s.now = t.at
	fn := t.fn
	s.Post(func() {
		if t.cancelled {
			return
		}
		fn()
	})

	if t.period > 0 {
		t.at += t.period
		return
	}
	t.stopped = true
}

type timer struct {
	at        time.Duration
	period    time.Duration
	seq       int
	fn        func()
	stopped   bool
	cancelled bool
}

func (t *timer) Stop() bool {
	wasActive := !t.stopped
	t.stopped = true
	t.cancelled = true
	return wasActive
}
