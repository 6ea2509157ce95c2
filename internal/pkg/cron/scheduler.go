package cron

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Job is a sweep bound to a fixed tenant-local hour.
type Job struct {
	Name string
	Hour int
	Fn   func(ctx context.Context) error
}

// Scheduler drives the daily attendance sweeps. It ticks hourly and runs
// whichever jobs are due in the current tenant-local hour; the jobs themselves
// are idempotent, so a tick landing twice inside one window is harmless and a
// restart mid-day neither skips nor doubles a sweep.
type Scheduler struct {
	jobs     []Job
	location *time.Location
	now      func() time.Time
	ctx      context.Context
	cancel   context.CancelFunc
	wg       sync.WaitGroup
	mu       sync.Mutex
}

func NewScheduler(location *time.Location) *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		location: location,
		now:      time.Now,
		ctx:      ctx,
		cancel:   cancel,
	}
}

// AddJob schedules fn to run during the given tenant-local hour.
func (s *Scheduler) AddJob(name string, hour int, fn func(ctx context.Context) error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.jobs = append(s.jobs, Job{Name: name, Hour: hour, Fn: fn})
	slog.Info("Sweep registered", "name", name, "hour", hour)
}

// Start begins the hourly tick loop.
func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.wg.Add(1)
	go s.loop()

	slog.Info("Sweep scheduler started", "job_count", len(s.jobs))
}

// Stop cancels the loop and waits for an in-flight sweep to finish.
func (s *Scheduler) Stop() {
	s.cancel()
	s.wg.Wait()
	slog.Info("Sweep scheduler stopped")
}

func (s *Scheduler) loop() {
	defer s.wg.Done()

	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()

	// Catch a window already in progress at startup.
	s.RunOnce(s.ctx)

	for {
		select {
		case <-s.ctx.Done():
			return
		case <-ticker.C:
			s.RunOnce(s.ctx)
		}
	}
}

// RunOnce runs every job whose hour matches the current tenant-local hour.
func (s *Scheduler) RunOnce(ctx context.Context) {
	s.mu.Lock()
	jobs := make([]Job, len(s.jobs))
	copy(jobs, s.jobs)
	hour := s.now().In(s.location).Hour()
	s.mu.Unlock()

	for _, job := range jobs {
		if job.Hour != hour {
			continue
		}

		start := time.Now()
		if err := job.Fn(ctx); err != nil {
			slog.Error("Sweep failed", "name", job.Name, "error", err, "duration", time.Since(start))
			continue
		}
		slog.Debug("Sweep completed", "name", job.Name, "duration", time.Since(start))
	}
}
