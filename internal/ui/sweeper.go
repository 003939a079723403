package ui

import (
	"context"
	"fmt"
	"time"

	"github.com/adhocore/gronx"
)

// DefaultSweepCron runs the session sweep every 15 minutes.
const DefaultSweepCron = "*/15 * * * *"

// SweepOnce deletes expired sessions, drops the tables of sessions that
// no longer exist and forgets idle login limiters.
func (ui *UI) SweepOnce(ctx context.Context) error {
	deleted, err := ui.sessions.Sweep(ctx)
	if err != nil {
		return fmt.Errorf("delete expired sessions: %w", err)
	}
	ids, err := ui.store.ListSessionIDs(ctx)
	if err != nil {
		return fmt.Errorf("list sessions: %w", err)
	}
	dropped := ui.tables.retain(ids)
	idle := ui.limiter.prune()
	if ui.metrics != nil {
		ui.metrics.SetTableSessions(ui.tables.len())
	}
	if deleted > 0 || dropped > 0 || idle > 0 {
		ui.logger.Info("session sweep", "expired", deleted, "tables_dropped", dropped, "limiters_dropped", idle)
	}
	return nil
}

// StartSweeper validates the cron expression and runs SweepOnce on each
// tick until ctx is cancelled.
func (ui *UI) StartSweeper(ctx context.Context, cronExpr string) error {
	if cronExpr == "" {
		cronExpr = DefaultSweepCron
	}
	if !gronx.IsValid(cronExpr) {
		return fmt.Errorf("invalid session sweep cron expression: %q", cronExpr)
	}
	ui.logger.Info("session sweeper started", "cron", cronExpr)
	go ui.runSweeper(ctx, cronExpr)
	return nil
}

func (ui *UI) runSweeper(ctx context.Context, cronExpr string) {
	for {
		next, err := gronx.NextTickAfter(cronExpr, time.Now(), false)
		wait := time.Until(next)
		if err != nil {
			ui.logger.Error("session sweeper next tick failed", "cron", cronExpr, "error", err)
			wait = time.Minute
		}

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			ui.logger.Info("session sweeper stopped")
			return
		case <-timer.C:
		}

		if err := ui.SweepOnce(ctx); err != nil {
			ui.logger.Error("session sweep failed", "error", err)
		}
	}
}
