package core

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/huangsam/tempdash/core/window"
	"github.com/huangsam/tempdash/schema"
)

// Subscriber is notified with the post-append snapshot of every tick.
type Subscriber func(snap schema.Snapshot)

// Scheduler drives the tick loop. It is the only writer of its buffer:
// each tick generates a reading, appends it, publishes a fresh Snapshot
// and hands that same Snapshot to every subscriber in registration order.
//
// Readers on other goroutines use Latest, which returns the most recently
// published Snapshot without touching the buffer.
type Scheduler struct {
	gen      Generator
	buf      *window.Buffer
	interval time.Duration
	maxTicks int
	logger   *slog.Logger

	subs   []Subscriber
	tick   int64
	latest atomic.Pointer[schema.Snapshot]
}

// NewScheduler wires a generator and buffer to a timer. A maxTicks of zero
// lets Run continue until its context is cancelled.
func NewScheduler(gen Generator, buf *window.Buffer, interval time.Duration, maxTicks int) *Scheduler {
	if interval <= 0 {
		interval = schema.DefaultInterval
	}
	return &Scheduler{
		gen:      gen,
		buf:      buf,
		interval: interval,
		maxTicks: maxTicks,
		logger:   slog.New(slog.DiscardHandler),
	}
}

// SetLogger replaces the scheduler's logger. A nil logger is ignored.
func (s *Scheduler) SetLogger(logger *slog.Logger) {
	if logger != nil {
		s.logger = logger
	}
}

// Subscribe registers fn for every subsequent tick. It must be called before Run.
func (s *Scheduler) Subscribe(fn Subscriber) {
	s.subs = append(s.subs, fn)
}

// Interval returns the tick period.
func (s *Scheduler) Interval() time.Duration {
	return s.interval
}

// Capacity returns the capacity of the owned buffer.
func (s *Scheduler) Capacity() int {
	return s.buf.Cap()
}

// Tick runs one full cycle synchronously and returns the published Snapshot.
func (s *Scheduler) Tick() schema.Snapshot {
	s.buf.Append(s.gen.Generate())
	s.tick++

	reading, _ := s.buf.Newest()
	snap := schema.Snapshot{
		Tick:     s.tick,
		Readings: s.buf.Snapshot(),
		Latest:   reading,
	}
	s.latest.Store(&snap)

	s.logger.Debug("tick", "tick", snap.Tick, "temp", reading.Temp, "window", snap.Len())
	for _, fn := range s.subs {
		fn(snap)
	}
	return snap
}

// Latest returns the last published Snapshot, or false before the first tick.
// It is safe to call from any goroutine.
func (s *Scheduler) Latest() (schema.Snapshot, bool) {
	snap := s.latest.Load()
	if snap == nil {
		return schema.Snapshot{}, false
	}
	return *snap, true
}

// Run ticks once immediately and then once per interval until ctx is done or
// maxTicks ticks have run. A tick in progress always completes.
func (s *Scheduler) Run(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return nil
	}
	s.Tick()
	if s.done() {
		return nil
	}

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Debug("scheduler stopped", "ticks", s.tick)
			return nil
		case <-ticker.C:
			if ctx.Err() != nil {
				return nil
			}
			s.Tick()
			if s.done() {
				return nil
			}
		}
	}
}

// RunImmediate performs n ticks back to back without waiting on the timer.
func (s *Scheduler) RunImmediate(n int) schema.Snapshot {
	var snap schema.Snapshot
	for range n {
		snap = s.Tick()
	}
	return snap
}

func (s *Scheduler) done() bool {
	return s.maxTicks > 0 && s.tick >= int64(s.maxTicks)
}
