// Package worker runs background incremental syncs.
package worker

import (
	"context"
	"fmt"
	"sync"
	"time"

	"momopress/internal/logger"
	"momopress/internal/services"
)

// Scheduler runs an incremental sync for every account on a fixed interval.
// Cycles go through the shared sync service, so a cycle that overlaps an
// API-triggered sync is skipped rather than run twice.
type Scheduler struct {
	users    services.UserServicer
	syncer   services.SyncServicer
	interval time.Duration

	mu      sync.Mutex
	running bool
	stopCh  chan struct{}
	doneCh  chan struct{}
}

func NewScheduler(users services.UserServicer, syncer services.SyncServicer, interval time.Duration) *Scheduler {
	return &Scheduler{users: users, syncer: syncer, interval: interval}
}

// Start begins the loop. Returns an error if already running.
func (s *Scheduler) Start(ctx context.Context) error {
	if s.interval <= 0 {
		return fmt.Errorf("scheduler interval must be positive, got %s", s.interval)
	}

	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return fmt.Errorf("scheduler is already running")
	}
	s.running = true
	s.stopCh = make(chan struct{})
	s.doneCh = make(chan struct{})
	s.mu.Unlock()

	go s.runLoop(ctx)

	logger.For(logger.ComponentScheduler).Infow("Scheduler started", "interval", s.interval)
	return nil
}

// Stop signals the loop and waits for the current cycle to finish.
func (s *Scheduler) Stop(ctx context.Context) error {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return nil
	}
	s.running = false
	s.mu.Unlock()

	close(s.stopCh)

	select {
	case <-s.doneCh:
		logger.For(logger.ComponentScheduler).Infow("Scheduler stopped gracefully")
		return nil
	case <-ctx.Done():
		logger.For(logger.ComponentScheduler).Warnw("Scheduler stop timed out")
		return ctx.Err()
	}
}

// IsRunning returns whether the loop is active.
func (s *Scheduler) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

func (s *Scheduler) runLoop(ctx context.Context) {
	defer close(s.doneCh)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopCh:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.RunOnce(ctx)
		}
	}
}

// RunOnce syncs every account once and returns how many cycles ran.
func (s *Scheduler) RunOnce(ctx context.Context) int {
	log := logger.For(logger.ComponentScheduler)

	phones, err := s.users.ListPhones(ctx)
	if err != nil {
		log.Errorw("Failed to list accounts", "error", err)
		return 0
	}

	ran := 0
	for _, phone := range phones {
		select {
		case <-ctx.Done():
			return ran
		default:
		}

		result, err := s.syncer.Sync(ctx, phone, true)
		if err != nil {
			log.Warnw("Scheduled sync failed", "phone", phone, "error", err)
			continue
		}
		if result.Skipped {
			log.Debugw("Scheduled sync skipped", "phone", phone)
			continue
		}
		ran++
	}
	return ran
}
