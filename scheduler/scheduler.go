package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"
)

// Job is the work a scheduled firing performs
type Job func(ctx context.Context)

// Scheduler owns the single recurring sync job. Construction never fails
// outward: a bad cron expression yields a disabled scheduler whose NextRun
// reports that no run is scheduled
type Scheduler struct {
	cron       *cron.Cron
	entryID    cron.EntryID
	jobTimeout time.Duration
	disabled   bool
}

// New installs one recurring job with the given cron expression
// (standard 5-field format, e.g. "0 0 * * *" for midnight daily).
// On an invalid expression the error is logged and a disabled stand-in is
// returned so next-run queries keep working
func New(spec string, jobTimeout time.Duration, job Job) *Scheduler {
	c := cron.New()

	s := &Scheduler{
		cron:       c,
		jobTimeout: jobTimeout,
	}

	entryID, err := c.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.jobTimeout)
		defer cancel()

		log.Info("Scheduled sync firing")
		start := time.Now()

		job(ctx)

		log.Infof("Scheduled sync finished in %v", time.Since(start))
	})
	if err != nil {
		log.Errorf("Failed to schedule sync job (spec %q): %v", spec, err)
		s.disabled = true
		return s
	}

	s.entryID = entryID
	log.Infof("Scheduled sync job (spec: %s)", spec)

	return s
}

// Start begins firing the scheduled job
func (s *Scheduler) Start() {
	if s.disabled {
		log.Warn("Scheduler is disabled, no sync runs will fire")
		return
	}
	s.cron.Start()
}

// Stop halts the scheduler. The returned context is done once any in-flight
// firing has completed
func (s *Scheduler) Stop() context.Context {
	return s.cron.Stop()
}

// NextRun returns the next scheduled firing time. The second return value is
// false when the scheduler is disabled or not started
func (s *Scheduler) NextRun() (time.Time, bool) {
	if s.disabled {
		return time.Time{}, false
	}

	entry := s.cron.Entry(s.entryID)
	if !entry.Valid() || entry.Next.IsZero() {
		return time.Time{}, false
	}

	return entry.Next, true
}
