package scheduler

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// DefaultRetentionSchedule prunes the audit trail once a day at 03:00.
const DefaultRetentionSchedule = "0 3 * * *"

// CleanupEnqueuer queues an audit cleanup for events older than retentionDays.
type CleanupEnqueuer interface {
	EnqueueAuditCleanup(retentionDays int) (string, error)
}

var cronParser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)

// ValidateCronSchedule reports whether schedule is a valid five-field cron
// expression or descriptor such as "@daily".
func ValidateCronSchedule(schedule string) error {
	_, err := cronParser.Parse(schedule)
	return err
}

// RetentionScheduler periodically queues removal of audit events past their
// retention.
type RetentionScheduler struct {
	enqueuer      CleanupEnqueuer
	retentionDays int
	schedule      string

	cron      *cron.Cron
	entryID   cron.EntryID
	mu        sync.RWMutex
	isRunning bool
}

func NewRetentionScheduler(enqueuer CleanupEnqueuer, retentionDays int, schedule string) *RetentionScheduler {
	if schedule == "" {
		schedule = DefaultRetentionSchedule
	}
	return &RetentionScheduler{
		enqueuer:      enqueuer,
		retentionDays: retentionDays,
		schedule:      schedule,
		cron:          cron.New(cron.WithParser(cronParser)),
	}
}

// Start schedules the cleanup job. It stops when ctx is cancelled.
func (s *RetentionScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}
	if s.retentionDays <= 0 {
		log.Printf("Audit retention scheduler: disabled")
		return nil
	}
	if err := ValidateCronSchedule(s.schedule); err != nil {
		return fmt.Errorf("invalid cron schedule '%s': %w", s.schedule, err)
	}

	entryID, err := s.cron.AddFunc(s.schedule, func() {
		if _, err := s.RunOnce(); err != nil {
			log.Printf("Audit retention: failed to queue cleanup: %v", err)
		}
	})
	if err != nil {
		return fmt.Errorf("failed to schedule retention job: %w", err)
	}
	s.entryID = entryID

	s.cron.Start()
	s.isRunning = true

	log.Printf("Audit retention scheduler: started with schedule '%s', keeping %d days. Next run: %v",
		s.schedule, s.retentionDays, s.cron.Entry(entryID).Next)

	go func() {
		<-ctx.Done()
		s.Stop()
	}()
	return nil
}

// Stop waits for a running cleanup to finish and stops the scheduler.
func (s *RetentionScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}

	ctx := s.cron.Stop()
	<-ctx.Done()
	s.cron.Remove(s.entryID)
	s.isRunning = false
	log.Printf("Audit retention scheduler: stopped")
}

// RunOnce queues a cleanup immediately and returns the task ID.
func (s *RetentionScheduler) RunOnce() (string, error) {
	id, err := s.enqueuer.EnqueueAuditCleanup(s.retentionDays)
	if err != nil {
		return "", err
	}
	log.Printf("Audit retention: queued cleanup %s for events older than %d days", id, s.retentionDays)
	return id, nil
}

// IsRunning returns whether the scheduler is active
func (s *RetentionScheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// NextRunTime returns when the next cleanup will occur, or nil when stopped.
func (s *RetentionScheduler) NextRunTime() *time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.isRunning {
		return nil
	}
	next := s.cron.Entry(s.entryID).Next
	return &next
}
