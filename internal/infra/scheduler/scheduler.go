package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// DigestSender is the part of app.DigestService the scheduler drives.
type DigestSender interface {
	SendDailyAgenda(ctx context.Context, now time.Time) error
	SendMonthlyDigest(ctx context.Context, now time.Time) error
}

type DigestScheduler struct {
	cronEngine          *cron.Cron
	digest              DigestSender
	logger              *logrus.Entry
	cronSpecDailyAgenda string
	cronSpecMonthly     string
	jobTimeout          time.Duration
}

func NewDigestScheduler(
	digest DigestSender,
	logger *logrus.Entry,
	cronSpecDailyAgenda string, // e.g., "0 8 * * *" (8:00 AM daily)
	cronSpecMonthly string, // e.g., "0 9 1 * *" (9:00 AM on the 1st)
) *DigestScheduler {
	return &DigestScheduler{
		cronEngine:          cron.New(cron.WithLocation(time.Local)), // Use server's local time for cron
		digest:              digest,
		logger:              logger.WithField("component", "scheduler"),
		cronSpecDailyAgenda: cronSpecDailyAgenda,
		cronSpecMonthly:     cronSpecMonthly,
		jobTimeout:          1 * time.Minute,
	}
}

// Start registers the jobs and starts the cron engine. An invalid spec leaves
// the engine stopped.
func (s *DigestScheduler) Start() error {
	s.logger.Info("Starting digest scheduler...")

	_, err := s.cronEngine.AddFunc(s.cronSpecDailyAgenda, func() {
		s.logger.Info("Cron job triggered for daily agenda.")
		s.run("daily_agenda", s.digest.SendDailyAgenda)
	})
	if err != nil {
		return fmt.Errorf("could not add daily agenda cron job: %w", err)
	}

	_, err = s.cronEngine.AddFunc(s.cronSpecMonthly, func() {
		s.logger.Info("Cron job triggered for monthly digest.")
		s.run("monthly_digest", s.digest.SendMonthlyDigest)
	})
	if err != nil {
		return fmt.Errorf("could not add monthly digest cron job: %w", err)
	}

	s.cronEngine.Start()
	s.logger.Info("Digest scheduler started with jobs.")
	return nil
}

func (s *DigestScheduler) run(job string, fn func(ctx context.Context, now time.Time) error) {
	ctx, cancel := context.WithTimeout(context.Background(), s.jobTimeout)
	defer cancel()
	if err := fn(ctx, time.Now()); err != nil {
		s.logger.WithError(err).WithField("job", job).Error("Scheduled job failed")
	}
}

// Entries reports how many jobs are registered.
func (s *DigestScheduler) Entries() int {
	return len(s.cronEngine.Entries())
}

func (s *DigestScheduler) Stop() {
	s.logger.Info("Stopping digest scheduler...")
	ctx := s.cronEngine.Stop() // Stops the scheduler from adding new jobs, waits for running jobs.
	<-ctx.Done()               // Wait for graceful shutdown
	s.logger.Info("Digest scheduler gracefully stopped.")
}
