// Package core has the tick loop of the dashboard and the entry points of each mode.
package core

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/huangsam/tempdash/core/algo"
	"github.com/huangsam/tempdash/core/window"
	"github.com/huangsam/tempdash/internal/contract"
	"github.com/huangsam/tempdash/internal/mcp"
	"github.com/huangsam/tempdash/internal/outwriter"
	"github.com/huangsam/tempdash/internal/web"
	"github.com/huangsam/tempdash/schema"
	"golang.org/x/sync/errgroup"
)

// ExecutorFunc defines the function signature for executing the different dashboard modes.
type ExecutorFunc func(ctx context.Context, cfg *contract.Config, mgr contract.JournalManager) error

// logOutput receives the structured logs of every mode.
var logOutput io.Writer = os.Stderr

// NewSchedulerFromConfig builds a scheduler with an empty window and a
// generator seeded from the configuration, stamped with the wall clock.
func NewSchedulerFromConfig(cfg *contract.Config, maxTicks int) *Scheduler {
	return newScheduler(cfg, maxTicks, nil)
}

func newScheduler(cfg *contract.Config, maxTicks int, clock Clock) *Scheduler {
	gen := NewRandomGenerator(NewSource(cfg.Seed), clock, cfg.MinTemp, cfg.MaxTemp)
	return NewScheduler(gen, window.New(cfg.Capacity), cfg.Interval, maxTicks)
}

// newLogger returns the stderr logger used by every mode.
func newLogger(cfg *contract.Config) *slog.Logger {
	return contract.NewLogger(logOutput, cfg.LogLevel, cfg.UseColors)
}

// ExecuteSnapshot runs the configured number of ticks back to back and
// prints the final window. Readings are stamped one interval apart, ending
// now, as if the ticks had run on the timer.
// It serves as the main entry point for the 'snapshot' mode.
func ExecuteSnapshot(_ context.Context, cfg *contract.Config, mgr contract.JournalManager) error {
	ticks := cfg.Ticks
	if ticks == 0 {
		ticks = cfg.Capacity
	}
	start := time.Now().Add(-time.Duration(ticks-1) * cfg.Interval)
	sched := newScheduler(cfg, ticks, SteppedClock(start, cfg.Interval))
	session := beginSession(cfg, mgr, newLogger(cfg))

	snap := sched.RunImmediate(ticks)
	session.finish(sched)

	report := algo.BuildReport(snap, contract.GetPlainLabel)
	ow := outwriter.NewOutWriter()
	if err := ow.WriteSnapshot(report, cfg); err != nil {
		return err
	}
	return ow.WriteChart(report, cfg)
}

// ExecuteWatch redraws the terminal dashboard on every tick until ctx is
// cancelled or the configured ticks have run.
// It serves as the main entry point for the 'watch' mode.
func ExecuteWatch(ctx context.Context, cfg *contract.Config, mgr contract.JournalManager) error {
	logger := newLogger(cfg)
	sched := NewSchedulerFromConfig(cfg, cfg.Ticks)
	sched.SetLogger(logger)

	ow := outwriter.NewOutWriter()
	sched.Subscribe(func(snap schema.Snapshot) {
		report := algo.BuildReport(snap, contract.GetPlainLabel)
		if err := ow.WriteDashboard(os.Stdout, report, cfg); err != nil {
			logger.Error("failed to draw dashboard", "tick", snap.Tick, "error", err)
		}
	})

	session := beginSession(cfg, mgr, logger)
	err := sched.Run(ctx)
	session.finish(sched)
	if err != nil {
		return err
	}

	snap, ok := sched.Latest()
	if !ok {
		return nil
	}
	return ow.WriteChart(algo.BuildReport(snap, contract.GetPlainLabel), cfg)
}

// ExecuteServe runs the scheduler alongside the web dashboard until ctx is cancelled.
// It serves as the main entry point for the 'serve' mode.
func ExecuteServe(ctx context.Context, cfg *contract.Config, mgr contract.JournalManager) error {
	logger := newLogger(cfg)
	sched := NewSchedulerFromConfig(cfg, cfg.Ticks)
	sched.SetLogger(logger)

	metrics := web.NewMetrics()
	sched.Subscribe(metrics.Observe)

	srv := web.NewServer(sched, cfg, logger, metrics)
	if err := srv.Listen(); err != nil {
		return fmt.Errorf("failed to listen on %s: %w", cfg.Addr, err)
	}

	session := beginSession(cfg, mgr, logger)
	defer session.finish(sched)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return sched.Run(gCtx)
	})
	g.Go(func() error {
		return srv.Run(gCtx)
	})
	return g.Wait()
}

// ExecuteMCP runs the scheduler in the background and serves its snapshots
// as MCP tools over stdio. It serves as the main entry point for the 'mcp' mode.
func ExecuteMCP(ctx context.Context, cfg *contract.Config, mgr contract.JournalManager) error {
	logger := newLogger(cfg)
	sched := NewSchedulerFromConfig(cfg, cfg.Ticks)
	sched.SetLogger(logger)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	session := beginSession(cfg, mgr, logger)
	defer session.finish(sched)

	done := make(chan error, 1)
	go func() { done <- sched.Run(ctx) }()

	serveErr := mcp.StartMCPServer(ctx, cfg, sched)
	cancel()
	return errors.Join(serveErr, <-done)
}
