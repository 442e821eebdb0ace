package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/haulops/payroll-engine/internal/domain/shift"
)

type ShiftJobs struct {
	shiftService shift.ShiftService
	interval     time.Duration
	now          func() time.Time
}

func NewShiftJobs(shiftService shift.ShiftService, interval time.Duration) *ShiftJobs {
	return &ShiftJobs{
		shiftService: shiftService,
		interval:     interval,
		now:          time.Now,
	}
}

// RegisterJobs registers the stale-shift sweep. A zero interval disables it.
func (j *ShiftJobs) RegisterJobs(scheduler *Scheduler) {
	if j.interval <= 0 {
		slog.Info("Cron: stale shift sweep disabled")
		return
	}
	scheduler.AddJob("close_stale_shifts", j.interval, j.CloseStaleShifts)
}

// CloseStaleShifts force-closes open shifts left over from previous days.
func (j *ShiftJobs) CloseStaleShifts(ctx context.Context) error {
	closed, err := j.shiftService.CloseStaleShifts(ctx, j.now())
	if err != nil {
		return fmt.Errorf("failed to close stale shifts: %w", err)
	}
	if closed > 0 {
		slog.Info("Cron: auto-closed stale shifts", "count", closed)
	}
	return nil
}
