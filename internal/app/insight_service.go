package app

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"

	"comms_governance/internal/domain/communication"
	"comms_governance/internal/domain/insight"
)

type InsightService struct {
	generator insight.Generator // nil when no credentials are configured
	timeout   time.Duration
	logger    *logrus.Entry
	now       func() time.Time

	seq    atomic.Uint64
	mu     sync.Mutex
	latest *insight.Outcome
}

func NewInsightService(generator insight.Generator, timeout time.Duration, logger *logrus.Entry) *InsightService {
	return &InsightService{
		generator: generator,
		timeout:   timeout,
		logger:    logger.WithField("component", "insight_service"),
		now:       time.Now,
	}
}

// Generate asks the generator for a report over the projected entries. It returns
// insight.ErrNoCredentials when no generator is configured.
func (s *InsightService) Generate(ctx context.Context, entries []communication.Entry) (insight.Report, error) {
	if s.generator == nil {
		return insight.Report{}, insight.ErrNoCredentials
	}

	prompt, err := insight.BuildPrompt(insight.Project(entries))
	if err != nil {
		return insight.Report{}, err
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	text, err := s.generator.Generate(ctx, prompt)
	if err != nil {
		return insight.Report{}, fmt.Errorf("insight generation failed: %w", err)
	}
	return insight.ParseReport(text)
}

// Request always yields a displayable outcome. Any generation failure is swapped
// for insight.Fallback here and nowhere else. A request overtaken by a newer one is
// returned marked Stale and does not replace Latest.
func (s *InsightService) Request(ctx context.Context, entries []communication.Entry) insight.Outcome {
	seq := s.seq.Add(1)
	log := s.logger.WithFields(logrus.Fields{"seq": seq, "entries": len(entries)})

	out := insight.Outcome{Seq: seq}
	report, err := s.Generate(ctx, entries)
	if err != nil {
		log.WithError(err).Warn("Insight generation failed, using fallback report")
		report = insight.Fallback()
		out.Fallback = true
		out.Reason = err.Error()
	}
	out.Report = report
	out.GeneratedAt = s.now()

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.latest != nil && s.latest.Seq > seq {
		out.Stale = true
		log.Info("Discarding stale insight response")
		return out
	}
	s.latest = &out
	log.WithField("fallback", out.Fallback).Info("Insight report ready")
	return out
}

// Latest returns the most recent non-stale outcome.
func (s *InsightService) Latest() (insight.Outcome, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.latest == nil {
		return insight.Outcome{}, false
	}
	return *s.latest, true
}
