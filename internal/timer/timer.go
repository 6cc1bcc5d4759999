// Package timer abstracts delayed and repeating callbacks so widgets can be
// driven by a wall clock in production and stepped by hand in tests.
package timer

import (
	"sort"
	"sync"
	"time"
)

type Stopper interface {
	// Stop cancels future firings. It reports whether anything was cancelled.
	Stop() bool
}

type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Stopper
	Every(d time.Duration, f func()) Stopper
}

// Real runs callbacks on the runtime timers.
type Real struct{}

func (Real) AfterFunc(d time.Duration, f func()) Stopper {
	return time.AfterFunc(d, f)
}

func (Real) Every(d time.Duration, f func()) Stopper {
	t := &ticker{t: time.NewTicker(d), done: make(chan struct{})}
	go func() {
		for {
			select {
			case <-t.t.C:
				f()
			case <-t.done:
				return
			}
		}
	}()
	return t
}

type ticker struct {
	t    *time.Ticker
	once sync.Once
	done chan struct{}
}

func (t *ticker) Stop() bool {
	stopped := false
	t.once.Do(func() {
		t.t.Stop()
		close(t.done)
		stopped = true
	})
	return stopped
}

// Manual is a virtual clock. Nothing fires until Advance is called, and
// callbacks run on the caller's goroutine in deadline order.
type Manual struct {
	mu    sync.Mutex
	now   time.Duration
	seq   int
	tasks map[int]*task
}

type task struct {
	id     int
	due    time.Duration
	period time.Duration
	f      func()
}

func NewManual() *Manual {
	return &Manual{tasks: map[int]*task{}}
}

func (m *Manual) AfterFunc(d time.Duration, f func()) Stopper {
	return m.add(d, 0, f)
}

func (m *Manual) Every(d time.Duration, f func()) Stopper {
	if d <= 0 {
		d = time.Nanosecond
	}
	return m.add(d, d, f)
}

func (m *Manual) add(d, period time.Duration, f func()) Stopper {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	t := &task{id: m.seq, due: m.now + d, period: period, f: f}
	m.tasks[t.id] = t
	return manualStopper{m: m, id: t.id}
}

// Advance moves the clock forward by d, firing everything that comes due.
// Callbacks may schedule more work; it fires too if it lands inside the window.
func (m *Manual) Advance(d time.Duration) {
	m.mu.Lock()
	end := m.now + d
	m.mu.Unlock()

	for {
		m.mu.Lock()
		next := m.nextDue(end)
		if next == nil {
			m.now = end
			m.mu.Unlock()
			return
		}
		m.now = next.due
		if next.period > 0 {
			next.due += next.period
		} else {
			delete(m.tasks, next.id)
		}
		f := next.f
		m.mu.Unlock()

		f()
	}
}

func (m *Manual) nextDue(end time.Duration) *task {
	var ready []*task
	for _, t := range m.tasks {
		if t.due <= end {
			ready = append(ready, t)
		}
	}
	if len(ready) == 0 {
		return nil
	}
	sort.Slice(ready, func(i, j int) bool {
		if ready[i].due != ready[j].due {
			return ready[i].due < ready[j].due
		}
		return ready[i].id < ready[j].id
	})
	return ready[0]
}

// Pending is the number of scheduled callbacks, periodic ones included.
func (m *Manual) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.tasks)
}

// Now is the virtual time elapsed since NewManual.
func (m *Manual) Now() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

type manualStopper struct {
	m  *Manual
	id int
}

func (s manualStopper) Stop() bool {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	if _, ok := s.m.tasks[s.id]; !ok {
		return false
	}
	delete(s.m.tasks, s.id)
	return true
}
