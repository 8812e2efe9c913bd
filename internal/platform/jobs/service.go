package jobs

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

const (
	JobSessionPurge = "session_purge"
	JobNotifyEmail  = "notify_email"
	JobPublishEvent = "publish_event"
)

type Recorder interface {
	RecordJob(job string, err error)
}

type Service struct {
	Metrics Recorder
	queue   chan job
	wg      sync.WaitGroup
}

type job struct {
	Type string
	Run  func(context.Context) error
}

func New(queueSize int, metrics Recorder) *Service {
	if queueSize <= 0 {
		queueSize = 128
	}
	return &Service{Metrics: metrics, queue: make(chan job, queueSize)}
}

// Start launches the worker. It stops when ctx is cancelled.
func (s *Service) Start(ctx context.Context) {
	s.wg.Add(1)
	go s.worker(ctx)
}

// Every runs fn on a ticker by enqueueing it, until ctx is cancelled.
func (s *Service) Every(ctx context.Context, jobType string, interval time.Duration, fn func(context.Context) error) {
	if interval <= 0 {
		return
	}
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.Enqueue(jobType, fn)
			}
		}
	}()
}

// Enqueue never blocks; a full queue drops the job with a warning.
func (s *Service) Enqueue(jobType string, run func(context.Context) error) bool {
	select {
	case s.queue <- job{Type: jobType, Run: run}:
		return true
	default:
		slog.Warn("job queue full", "jobType", jobType)
		return false
	}
}

func (s *Service) RunNow(ctx context.Context, jobType string, run func(context.Context) error) error {
	return s.runJob(ctx, job{Type: jobType, Run: run})
}

// Wait blocks until the worker and schedulers have exited.
func (s *Service) Wait() {
	s.wg.Wait()
}

func (s *Service) worker(ctx context.Context) {
	defer s.wg.Done()
	for {
		select {
		case <-ctx.Done():
			s.drain()
			return
		case j := <-s.queue:
			if err := s.runJob(ctx, j); err != nil {
				slog.Warn("job run failed", "jobType", j.Type, "err", err)
			}
		}
	}
}

// drain gives queued jobs a short detached window to finish on shutdown.
func (s *Service) drain() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	for {
		select {
		case j := <-s.queue:
			if err := s.runJob(ctx, j); err != nil {
				slog.Warn("job run failed", "jobType", j.Type, "err", err)
			}
		default:
			return
		}
	}
}

func (s *Service) runJob(ctx context.Context, j job) error {
	start := time.Now()
	err := j.Run(ctx)
	if s.Metrics != nil {
		s.Metrics.RecordJob(j.Type, err)
	}
	slog.Debug("job finished", "jobType", j.Type, "durationMs", time.Since(start).Milliseconds(), "failed", err != nil)
	return err
}
