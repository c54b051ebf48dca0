// Package scheduler runs the background sweeps that keep assignment state
// tidy: archiving stale active assignments and purging old history. Sweeps
// run on their own goroutines and never block request handling.
package scheduler

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// AssignmentStore is the slice of the assignment repository the sweeps need.
type AssignmentStore interface {
	ArchiveActiveBefore(ctx context.Context, cutoff time.Time) (int, error)
	PurgeHistoryBefore(ctx context.Context, cutoff time.Time) (int, error)
}

type Config struct {
	ArchiveEvery time.Duration // default 1h
	ArchiveAfter time.Duration // default 24h
	PurgeEvery   time.Duration // default 24h
	PurgeAfter   time.Duration // default 30d
}

type Scheduler struct {
	store  AssignmentStore
	cfg    Config
	logger *slog.Logger
	now    func() time.Time
	wg     sync.WaitGroup
}

func New(store AssignmentStore, cfg Config, logger *slog.Logger) *Scheduler {
	if cfg.ArchiveEvery <= 0 {
		cfg.ArchiveEvery = time.Hour
	}
	if cfg.ArchiveAfter <= 0 {
		cfg.ArchiveAfter = 24 * time.Hour
	}
	if cfg.PurgeEvery <= 0 {
		cfg.PurgeEvery = 24 * time.Hour
	}
	if cfg.PurgeAfter <= 0 {
		cfg.PurgeAfter = 30 * 24 * time.Hour
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Scheduler{store: store, cfg: cfg, logger: logger, now: time.Now}
}

// Start launches both sweep loops. They stop when ctx is done; Wait blocks
// until they have.
func (s *Scheduler) Start(ctx context.Context) {
	s.wg.Add(2)
	go s.loop(ctx, "archive", s.cfg.ArchiveEvery, s.archive)
	go s.loop(ctx, "purge", s.cfg.PurgeEvery, s.purge)
}

// Wait blocks until every sweep loop has exited.
func (s *Scheduler) Wait() {
	s.wg.Wait()
}

func (s *Scheduler) loop(ctx context.Context, name string, every time.Duration, sweep func(context.Context)) {
	defer s.wg.Done()
	s.logger.Info("sweep loop started", "sweep", name, "every", every)
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			s.logger.Info("sweep loop stopped", "sweep", name)
			return
		case <-ticker.C:
			sweep(ctx)
		}
	}
}

func (s *Scheduler) archive(ctx context.Context) {
	cutoff := s.now().UTC().Add(-s.cfg.ArchiveAfter)
	n, err := s.store.ArchiveActiveBefore(ctx, cutoff)
	if err != nil {
		s.logger.Error("archive sweep failed", "error", err)
		return
	}
	if n > 0 {
		s.logger.Info("archived stale assignments", "count", n, "cutoff", cutoff)
	}
}

func (s *Scheduler) purge(ctx context.Context) {
	cutoff := s.now().UTC().Add(-s.cfg.PurgeAfter)
	n, err := s.store.PurgeHistoryBefore(ctx, cutoff)
	if err != nil {
		s.logger.Error("purge sweep failed", "error", err)
		return
	}
	if n > 0 {
		s.logger.Info("purged assignment history", "count", n, "cutoff", cutoff)
	}
}
