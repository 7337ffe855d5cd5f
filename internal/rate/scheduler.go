package rate

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type Loader interface {
	Load(ctx context.Context) error
}

// Scheduler runs the initial fetch right away and, when refreshInterval is
// positive, keeps refreshing the row set on that interval.
type Scheduler struct {
	loader          Loader
	refreshInterval time.Duration
	// -----
	mu    sync.Mutex
	sched gocron.Scheduler
}

func (s *Scheduler) Start(ctx context.Context) error {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return err
	}

	job := func(jobCtx context.Context) {
		execID := uuid.NewString()
		loadErr := s.loader.Load(jobCtx)
		if loadErr != nil && !errors.Is(loadErr, ErrFetchSuperseded) && !errors.Is(loadErr, context.Canceled) {
			logrus.Warnf("Load exchange rates job %s failed: %v", execID, loadErr)
		}
	}

	var definition gocron.JobDefinition
	options := []gocron.JobOption{gocron.WithSingletonMode(gocron.LimitModeReschedule)}
	if s.refreshInterval > 0 {
		definition = gocron.DurationJob(s.refreshInterval)
		options = append(options, gocron.WithStartAt(gocron.WithStartImmediately()))
	} else {
		definition = gocron.OneTimeJob(gocron.OneTimeJobStartImmediately())
	}

	if _, err = scheduler.NewJob(definition, gocron.NewTask(job), options...); err != nil {
		_ = scheduler.Shutdown()
		return err
	}

	s.mu.Lock()
	s.sched = scheduler
	s.mu.Unlock()
	scheduler.Start()

	// Stop scheduler when the provided context is canceled.
	go func() {
		<-ctx.Done()
		if sdErr := s.Shutdown(); sdErr != nil {
			logrus.Errorf("Scheduler shutdown error: %v", sdErr)
		}
	}()
	return nil
}

func (s *Scheduler) Shutdown() error {
	s.mu.Lock()
	sched := s.sched
	s.sched = nil
	s.mu.Unlock()

	if sched == nil {
		return nil
	}
	return sched.Shutdown()
}

func (s *Scheduler) running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sched != nil
}

func NewScheduler(loader Loader, refreshInterval time.Duration) *Scheduler {
	if refreshInterval < 0 {
		refreshInterval = 0
	}
	return &Scheduler{loader: loader, refreshInterval: refreshInterval}
}
