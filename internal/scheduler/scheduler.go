package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/go-co-op/gocron"

	"weather-dashboard/internal/dashboard"
)

// Refresher periodically re-fetches the last searched city so the rolling
// temperature history accrues one entry per day without user action, and
// warms the comparison readings.
type Refresher struct {
	scheduler *gocron.Scheduler
	session   *dashboard.Session
	interval  time.Duration
}

// New creates a new Refresher.
func New(session *dashboard.Session, interval time.Duration) *Refresher {
	s := gocron.NewScheduler(time.UTC)
	return &Refresher{
		scheduler: s,
		session:   session,
		interval:  interval,
	}
}

// Start schedules the periodic refresh job and starts the underlying
// scheduler.
func (r *Refresher) Start() error {
	minutes := int(r.interval.Minutes())
	if minutes <= 0 {
		minutes = 15
	}

	_, err := r.scheduler.Every(minutes).Minutes().Do(func() {
		log.Println("scheduler: running dashboard refresh job")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := r.session.Refresh(ctx); err != nil {
			log.Printf("scheduler: refresh failed for %s: %v", r.session.LastCity(), err)
		}

		results := r.session.Comparison(ctx)
		log.Printf("scheduler: refreshed %d comparison cities", len(results))
	})
	if err != nil {
		return err
	}

	r.scheduler.StartAsync()
	return nil
}

// Stop stops the scheduler and cancels any future jobs.
func (r *Refresher) Stop() {
	if r.scheduler != nil {
		r.scheduler.Stop()
	}
}
