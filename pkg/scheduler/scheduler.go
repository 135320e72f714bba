package scheduler

import (
	"sync"
	"time"

	"github.com/go-co-op/gocron"

	"todosync/pkg/logger"
)

type EventScheduler interface {
	Start()
	Stop()
	AddJob(id, cronExpr string, task func()) error
	IsRunning() bool
}

type GocronScheduler struct {
	scheduler *gocron.Scheduler
	mu        sync.Mutex
	running   bool
}

func NewEventScheduler() EventScheduler {
	scheduler := gocron.NewScheduler(time.UTC)
	scheduler.SingletonModeAll()

	return &GocronScheduler{
		scheduler: scheduler,
	}
}

func (s *GocronScheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return
	}

	s.scheduler.StartAsync()
	s.running = true
	logger.Info("Event scheduler started")
}

func (s *GocronScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return
	}

	s.scheduler.Stop()
	s.running = false
	logger.Info("Event scheduler stopped")
}

func (s *GocronScheduler) AddJob(id, cronExpr string, task func()) error {
	_, err := s.scheduler.Cron(cronExpr).Tag(id).Do(task)
	if err != nil {
		return err
	}
	logger.Info("Scheduled job registered", "id", id, "cron", cronExpr)
	return nil
}

func (s *GocronScheduler) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}
