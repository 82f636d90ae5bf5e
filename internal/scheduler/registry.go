// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// ErrJobRunning is returned by TriggerNow when the job is already running.
var ErrJobRunning = errors.New("job already running")

// registeredJob holds a job and the outcome of its last run.
type registeredJob struct {
	name        string
	description string
	schedule    string
	entryID     cron.EntryID
	fn          JobFunc

	running sync.Mutex // held for the duration of a run

	mu           sync.Mutex
	lastRun      time.Time
	lastDuration time.Duration
	lastErr      error
	runs         int
}

// JobInfo is the public view of a registered job.
type JobInfo struct {
	Name         string    `json:"name"`
	Description  string    `json:"description,omitempty"`
	Schedule     string    `json:"schedule"`
	LastRun      time.Time `json:"last_run,omitzero"`
	LastDuration string    `json:"last_duration,omitempty"`
	LastError    string    `json:"last_error,omitempty"`
	NextRun      time.Time `json:"next_run,omitzero"`
	Runs         int       `json:"runs"`
}

// ValidateSchedule checks a standard five-field cron expression or a
// descriptor such as "@hourly" or "@every 5m".
func ValidateSchedule(expr string) error {
	if strings.TrimSpace(expr) == "" {
		return fmt.Errorf("schedule is required")
	}
	if _, err := cron.ParseStandard(expr); err != nil {
		return fmt.Errorf("invalid cron expression %q: %w", expr, err)
	}
	return nil
}

// Register adds a job to run on schedule. Names are unique.
func (s *Scheduler) Register(name, description, schedule string, fn JobFunc) error {
	if name == "" {
		return fmt.Errorf("job name is required")
	}
	if fn == nil {
		return fmt.Errorf("job %s has no function", name)
	}
	if err := ValidateSchedule(schedule); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.jobs[name]; ok {
		return fmt.Errorf("job already registered: %s", name)
	}

	job := &registeredJob{
		name:        name,
		description: description,
		schedule:    schedule,
		fn:          fn,
	}
	entryID, err := s.cron.AddFunc(schedule, func() {
		_, _ = s.run(job)
	})
	if err != nil {
		return fmt.Errorf("scheduling job %s: %w", name, err)
	}
	job.entryID = entryID
	s.jobs[name] = job

	s.logger.Debug("registered scheduled job", "name", name, "schedule", schedule)
	return nil
}

// List returns all registered jobs sorted by name.
func (s *Scheduler) List() []JobInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]JobInfo, 0, len(s.jobs))
	for _, job := range s.jobs {
		info := JobInfo{
			Name:        job.name,
			Description: job.description,
			Schedule:    job.schedule,
			NextRun:     s.cron.Entry(job.entryID).Next,
		}

		job.mu.Lock()
		info.LastRun = job.lastRun
		info.Runs = job.runs
		if job.runs > 0 {
			info.LastDuration = job.lastDuration.String()
		}
		if job.lastErr != nil {
			info.LastError = job.lastErr.Error()
		}
		job.mu.Unlock()

		result = append(result, info)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Name < result[j].Name
	})
	return result
}

// TriggerNow runs a job immediately and returns its error.
func (s *Scheduler) TriggerNow(name string) error {
	s.mu.RLock()
	job, ok := s.jobs[name]
	s.mu.RUnlock()

	if !ok {
		return fmt.Errorf("job not found: %s", name)
	}

	s.logger.Info("manually triggering job", "name", name)
	ran, err := s.run(job)
	if !ran {
		return fmt.Errorf("%s: %w", name, ErrJobRunning)
	}
	return err
}

// run executes job unless a previous run is still active, and records the
// outcome. It reports whether the job ran.
func (s *Scheduler) run(job *registeredJob) (bool, error) {
	if !job.running.TryLock() {
		s.logger.Debug("skipping job, previous run still active", "name", job.name)
		return false, nil
	}
	defer job.running.Unlock()

	ctx, cancel := context.WithTimeout(s.ctx, s.timeout)
	defer cancel()

	start := time.Now()
	err := job.fn(ctx)
	elapsed := time.Since(start)

	job.mu.Lock()
	job.lastRun = start
	job.lastDuration = elapsed
	job.lastErr = err
	job.runs++
	job.mu.Unlock()

	if err != nil {
		s.logger.Warn("scheduled job failed", "name", job.name, "duration", elapsed, "error", err)
	} else {
		s.logger.Debug("scheduled job finished", "name", job.name, "duration", elapsed)
	}
	return true, err
}
