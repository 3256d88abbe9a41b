package scheduler

import (
	"context"
	"log"
	"time"
)

// DefaultRetryInterval is how often unindexed rounds are retried
const DefaultRetryInterval = time.Minute

// PendingIndexer is a round index that queues failed writes for later
type PendingIndexer interface {
	RetryPending(ctx context.Context) (int, error)
	PendingCount() int
}

// IndexRetryScheduler periodically pushes rounds that failed to index
type IndexRetryScheduler struct {
	scheduler *Scheduler
	indexer   PendingIndexer
	interval  time.Duration
}

// NewIndexRetryScheduler creates a retry scheduler. A non-positive interval
// uses DefaultRetryInterval.
func NewIndexRetryScheduler(indexer PendingIndexer, interval time.Duration) *IndexRetryScheduler {
	if interval <= 0 {
		interval = DefaultRetryInterval
	}
	return &IndexRetryScheduler{
		scheduler: NewScheduler(),
		indexer:   indexer,
		interval:  interval,
	}
}

// Start begins retrying in the background
func (s *IndexRetryScheduler) Start(ctx context.Context) {
	s.scheduler.AddTask("index_retry", s.interval, s.retry)
	s.scheduler.Start(ctx)
}

// Stop stops retrying and makes a final attempt with ctx
func (s *IndexRetryScheduler) Stop(ctx context.Context) {
	s.scheduler.Stop()
	if err := s.retry(ctx); err != nil {
		log.Printf("[SCHEDULER] Final index retry failed: %v", err)
	}
}

func (s *IndexRetryScheduler) retry(ctx context.Context) error {
	if s.indexer.PendingCount() == 0 {
		return nil
	}
	indexed, err := s.indexer.RetryPending(ctx)
	if indexed > 0 {
		log.Printf("[SCHEDULER] Indexed %d queued rounds", indexed)
	}
	return err
}
