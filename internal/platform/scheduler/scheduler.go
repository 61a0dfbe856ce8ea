// Copyright (c) 2026 Techradar. All rights reserved.
// Author: mc-aweaver

// Package scheduler runs periodic maintenance jobs on a cron schedule.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

const jobTimeout = time.Minute

// Job is a unit of periodic work.
type Job func(ctx context.Context) error

// Scheduler wraps a cron instance with structured logging.
type Scheduler struct {
	cron   *cron.Cron
	logger *slog.Logger
}

// New creates a scheduler accepting standard 5-field specs and descriptors
// such as @hourly.
func New(logger *slog.Logger) *Scheduler {
	return &Scheduler{
		cron:   cron.New(cron.WithParser(cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor))),
		logger: logger,
	}
}

// Add registers job under name. Each run gets its own timeout-bound context.
func (scheduler *Scheduler) Add(name, spec string, job Job) error {
	_, err := scheduler.cron.AddFunc(spec, func() {
		scheduler.Run(name, job)
	})
	if err != nil {
		return fmt.Errorf("scheduler_add_job_failed: %s: %w", name, err)
	}

	scheduler.logger.Info("scheduler_job_registered", slog.String("job", name), slog.String("schedule", spec))
	return nil
}

// Run executes job once and logs its outcome.
func (scheduler *Scheduler) Run(name string, job Job) {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	start := time.Now()
	if err := job(ctx); err != nil {
		scheduler.logger.Error("scheduler_job_failed", slog.String("job", name), slog.Any("error", err))
		return
	}
	scheduler.logger.Debug("scheduler_job_finished",
		slog.String("job", name),
		slog.Int64("duration_ms", time.Since(start).Milliseconds()),
	)
}

// Start runs the scheduler until context is cancelled, then waits for
// running jobs to finish.
func (scheduler *Scheduler) Start(context context.Context) {
	scheduler.cron.Start()

	go func() {
		<-context.Done()
		<-scheduler.cron.Stop().Done()
		scheduler.logger.Info("scheduler_stopped")
	}()
}

// Entries reports how many jobs are registered.
func (scheduler *Scheduler) Entries() int {
	return len(scheduler.cron.Entries())
}
