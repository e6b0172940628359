package cron

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

type job struct {
	name     string
	interval time.Duration
	run      func(ctx context.Context) error
}

// Scheduler runs registered jobs on fixed intervals until stopped. Each job
// gets its own goroutine and fires once immediately on Start.
type Scheduler struct {
	mu     sync.Mutex
	jobs   []job
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewScheduler() *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{ctx: ctx, cancel: cancel}
}

func (s *Scheduler) AddJob(name string, interval time.Duration, run func(ctx context.Context) error) {
	s.mu.Lock()
	s.jobs = append(s.jobs, job{name: name, interval: interval, run: run})
	s.mu.Unlock()
	slog.Info("Scheduled job registered", "job", name, "interval", interval)
}

func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, j := range s.jobs {
		s.wg.Add(1)
		go s.loop(j)
	}
	slog.Info("Scheduler started", "jobs", len(s.jobs))
}

// Stop cancels all jobs and waits for in-flight runs to finish.
func (s *Scheduler) Stop() {
	s.cancel()
	s.wg.Wait()
	slog.Info("Scheduler stopped")
}

func (s *Scheduler) loop(j job) {
	defer s.wg.Done()

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	s.fire(j)
	for {
		select {
		case <-s.ctx.Done():
			return
		case <-ticker.C:
			s.fire(j)
		}
	}
}

func (s *Scheduler) fire(j job) {
	start := time.Now()
	if err := j.run(s.ctx); err != nil {
		slog.Error("Scheduled job failed", "job", j.name, "error", err, "duration", time.Since(start))
		return
	}
	slog.Debug("Scheduled job finished", "job", j.name, "duration", time.Since(start))
}
