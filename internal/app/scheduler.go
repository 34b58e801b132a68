package app

import (
	"context"
	"sync"
	"time"

	"github.com/Freeeeeet/counseling_portal/internal/service"
	"go.uber.org/zap"
)

// Scheduler runs the daily digest at a fixed local hour
type Scheduler struct {
	digest   *service.DigestService
	hour     int
	loc      *time.Location
	logger   *zap.Logger
	now      func() time.Time
	stopChan chan struct{}
	stopOnce sync.Once
}

func NewScheduler(digest *service.DigestService, hour int, loc *time.Location, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		digest:   digest,
		hour:     hour,
		loc:      loc,
		logger:   logger,
		now:      time.Now,
		stopChan: make(chan struct{}),
	}
}

// Start launches the background tasks
func (s *Scheduler) Start(ctx context.Context) {
	s.logger.Info("Starting background scheduler", zap.Int("digest_hour", s.hour))
	go s.runDigestTask(ctx)
}

func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() {
		s.logger.Info("Stopping background scheduler")
		close(s.stopChan)
	})
}

// NextRun returns the first hour:00 in the location of now strictly after now
func NextRun(now time.Time, hour int) time.Time {
	next := time.Date(now.Year(), now.Month(), now.Day(), hour, 0, 0, 0, now.Location())
	if !next.After(now) {
		next = time.Date(now.Year(), now.Month(), now.Day()+1, hour, 0, 0, 0, now.Location())
	}
	return next
}

// CatchUpDue reports whether a start at now has already missed today's digest hour
func CatchUpDue(now time.Time, hour int) bool {
	return now.Hour() >= hour
}

func (s *Scheduler) runDigestTask(ctx context.Context) {
	// Claims keep the catch-up at one digest per user and day
	if CatchUpDue(s.now().In(s.loc), s.hour) {
		s.sendDigest(ctx)
	}

	for {
		now := s.now().In(s.loc)
		timer := time.NewTimer(NextRun(now, s.hour).Sub(now))

		select {
		case <-timer.C:
			s.sendDigest(ctx)
		case <-s.stopChan:
			timer.Stop()
			s.logger.Info("Digest task stopped")
			return
		case <-ctx.Done():
			timer.Stop()
			s.logger.Info("Digest task cancelled")
			return
		}
	}
}

func (s *Scheduler) sendDigest(ctx context.Context) {
	sent, err := s.digest.Run(ctx, s.now())
	if err != nil {
		s.logger.Error("Daily digest finished with errors", zap.Int("sent", sent), zap.Error(err))
		return
	}
	s.logger.Info("Daily digest sent", zap.Int("sent", sent))
}
