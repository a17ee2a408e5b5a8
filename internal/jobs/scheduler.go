// Package jobs runs the background scheduler. The only recurring job is
// the geocode retry sweep: profiles whose address lookup failed at save
// time get another attempt each hour.
package jobs

import (
	"context"
	"log"
	"time"

	"foodbanked/internal/services"

	"github.com/go-co-op/gocron/v2"
)

const geocodeRetryInterval = 1 * time.Hour

// Scheduler manages background jobs.
type Scheduler struct {
	scheduler   gocron.Scheduler
	foodbankSvc services.FoodbankService
	orgSvc      services.OrganizationService
}

// NewScheduler creates the scheduler and registers its jobs.
func NewScheduler(foodbankSvc services.FoodbankService, orgSvc services.OrganizationService) (*Scheduler, error) {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}

	s := &Scheduler{
		scheduler:   scheduler,
		foodbankSvc: foodbankSvc,
		orgSvc:      orgSvc,
	}

	_, err = scheduler.NewJob(
		gocron.DurationJob(geocodeRetryInterval),
		gocron.NewTask(s.retryGeocoding, context.Background()),
		gocron.WithName("geocode-retry"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return nil, err
	}

	return s, nil
}

// Start starts the job scheduler
func (s *Scheduler) Start() {
	log.Printf("Starting background job scheduler")
	s.scheduler.Start()
}

// Stop stops the job scheduler
func (s *Scheduler) Stop() error {
	log.Printf("Stopping background job scheduler")
	return s.scheduler.Shutdown()
}

// retryGeocoding sweeps foodbanks and organizations that have an
// address but no coordinates.
func (s *Scheduler) retryGeocoding(ctx context.Context) {
	start := time.Now()
	if err := s.foodbankSvc.RetryGeocoding(ctx); err != nil {
		log.Printf("Geocode retry for foodbanks failed: %v", err)
	}
	if err := s.orgSvc.RetryGeocoding(ctx); err != nil {
		log.Printf("Geocode retry for organizations failed: %v", err)
	}
	log.Printf("Geocode retry sweep completed in %v", time.Since(start))
}
