package scheduler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/pantrywise/consumption-service/internal/scanner"
	"github.com/pantrywise/consumption-service/pkg/logger"
)

const depletionJobName = "daily depletion check"

// JobInfo describes one recurring job for the status endpoint.
type JobInfo struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	NextRunTime time.Time `json:"next_run_time"`
}

// Scheduler owns the recurring depletion check. A failed or panicking scan
// is logged and the schedule keeps ticking; it never takes the process down.
type Scheduler struct {
	cron    *cron.Cron
	scanner *scanner.Scanner
	logger  logger.ZapLogger
	entryID cron.EntryID
}

func NewScheduler(sc *scanner.Scanner, log logger.ZapLogger, hour, minute int) (*Scheduler, error) {
	s := &Scheduler{
		cron:    cron.New(),
		scanner: sc,
		logger:  log,
	}

	spec := fmt.Sprintf("%d %d * * *", minute, hour)
	entryID, err := s.cron.AddFunc(spec, s.runScheduled)
	if err != nil {
		return nil, fmt.Errorf("scheduler: add depletion job: %w", err)
	}
	s.entryID = entryID
	return s, nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
	s.logger.Info("scheduler started",
		zap.String("job", depletionJobName),
		zap.Time("next_run", s.cron.Entry(s.entryID).Next),
	)
}

// Stop halts the timer and waits for a running job to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}

func (s *Scheduler) runScheduled() {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("depletion scan panicked", zap.Any("panic", r))
		}
	}()

	summary, err := s.scanner.Scan(context.Background())
	if err != nil {
		if errors.Is(err, scanner.ErrScanInProgress) {
			s.logger.Warn("scheduled scan skipped, another scan holds the lock")
			return
		}
		s.logger.Error("scheduled scan failed", zap.Error(err))
		return
	}
	s.logger.Info("scheduled scan complete",
		zap.Int("confirmations_created", summary.ConfirmationsCreated),
		zap.Int("errors", len(summary.Errors)),
	)
}

// RunNow triggers a scan synchronously on the same code path as the timer.
func (s *Scheduler) RunNow(ctx context.Context) (*scanner.Summary, error) {
	return s.scanner.Scan(ctx)
}

func (s *Scheduler) Jobs() []JobInfo {
	entries := s.cron.Entries()
	jobs := make([]JobInfo, 0, len(entries))
	for _, e := range entries {
		jobs = append(jobs, JobInfo{
			ID:          fmt.Sprintf("job-%d", e.ID),
			Name:        depletionJobName,
			NextRunTime: e.Next,
		})
	}
	return jobs
}
