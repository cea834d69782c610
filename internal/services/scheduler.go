package services

import (
	"fmt"
	"sync"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// Scheduler re-runs the dashboard batch on a cron schedule when the process
// is kept alive in daemon mode.
type Scheduler struct {
	cron      *cron.Cron
	logger    *logrus.Logger
	schedule  string
	run       func()
	mu        sync.Mutex
	isRunning bool
}

// NewScheduler creates a scheduler that invokes run per the cron spec
// (standard five-field syntax, evaluated in local time).
func NewScheduler(schedule string, run func(), logger *logrus.Logger) *Scheduler {
	return &Scheduler{
		cron:     cron.New(),
		logger:   logger,
		schedule: schedule,
		run:      run,
	}
}

// Start registers the schedule and begins running. It also triggers one
// immediate run so a freshly started daemon produces a dashboard right away.
func (s *Scheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return fmt.Errorf("scheduler is already running")
	}

	if _, err := s.cron.AddFunc(s.schedule, s.run); err != nil {
		return fmt.Errorf("failed to register schedule %q: %w", s.schedule, err)
	}

	s.cron.Start()
	s.isRunning = true

	go s.run()

	s.logger.Infof("Scheduler started with schedule %q", s.schedule)
	return nil
}

// Stop halts the schedule and waits for an in-flight run to finish.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}

	ctx := s.cron.Stop()
	<-ctx.Done()

	s.isRunning = false
	s.logger.Info("Scheduler stopped")
}
