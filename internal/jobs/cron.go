package jobs

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/templeops/temple-booking-backend/internal/festival"
)

// Scheduler owns the background cron runner.
type Scheduler struct {
	cron            *cron.Cron
	festivalService festival.Service
}

func NewScheduler(festivalService festival.Service) *Scheduler {
	return &Scheduler{
		cron:            cron.New(),
		festivalService: festivalService,
	}
}

// Start registers the jobs and launches the runner. Festival statuses are
// date-driven, so one roll shortly after midnight keeps them current; a
// roll also runs at startup to cover downtime across a date boundary.
func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc("5 0 * * *", s.rollFestivalStatuses); err != nil {
		return err
	}

	go s.rollFestivalStatuses()

	s.cron.Start()
	log.Println("background jobs started")
	return nil
}

// Stop halts scheduling and waits for running jobs to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	select {
	case <-ctx.Done():
	case <-time.After(10 * time.Second):
		log.Println("timed out waiting for background jobs to finish")
	}
}

func (s *Scheduler) rollFestivalStatuses() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if _, err := s.festivalService.RollStatuses(ctx); err != nil {
		log.Printf("festival status roll failed: %v", err)
	}
}
