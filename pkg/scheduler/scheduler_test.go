package scheduler

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestSchedulerRunsTasksUntilStopped(t *testing.T) {
	var runs atomic.Int32
	s := NewScheduler()
	s.AddTask("count", 5*time.Millisecond, func(ctx context.Context) error {
		runs.Add(1)
		return nil
	})

	s.Start(context.Background())
	s.Start(context.Background())
	assert.True(t, s.Running())

	assert.Eventually(t, func() bool { return runs.Load() >= 2 }, time.Second, time.Millisecond)

	s.Stop()
	assert.False(t, s.Running())
	stopped := runs.Load()
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, stopped, runs.Load())
}

func TestSchedulerStopsWithContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	var mu sync.Mutex
	seen := false

	s := NewScheduler()
	s.AddTask("fail", time.Millisecond, func(ctx context.Context) error {
		mu.Lock()
		seen = true
		mu.Unlock()
		return errors.New("boom")
	})
	s.Start(ctx)

	assert.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return seen
	}, time.Second, time.Millisecond)

	cancel()
	s.Stop()
}

func TestStopWithoutStart(t *testing.T) {
	s := NewScheduler()
	s.Stop()
	assert.False(t, s.Running())
}

type MockIndexer struct {
	mock.Mock
}

func (m *MockIndexer) RetryPending(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockIndexer) PendingCount() int {
	return m.Called().Int(0)
}

func TestIndexRetrySkipsWhenNothingPending(t *testing.T) {
	indexer := new(MockIndexer)
	indexer.On("PendingCount").Return(0)

	s := NewIndexRetryScheduler(indexer, 0)
	assert.Equal(t, DefaultRetryInterval, s.interval)
	assert.NoError(t, s.retry(context.Background()))

	indexer.AssertNotCalled(t, "RetryPending", mock.Anything)
}

func TestIndexRetryFinalAttemptOnStop(t *testing.T) {
	indexer := new(MockIndexer)
	indexer.On("PendingCount").Return(2)
	indexer.On("RetryPending", mock.Anything).Return(1, errors.New("one left"))

	s := NewIndexRetryScheduler(indexer, time.Hour)
	s.Start(context.Background())
	s.Stop(context.Background())

	indexer.AssertNumberOfCalls(t, "RetryPending", 1)
}

type countingIndexer struct {
	retries atomic.Int32
}

func (c *countingIndexer) RetryPending(ctx context.Context) (int, error) {
	c.retries.Add(1)
	return 1, nil
}

func (c *countingIndexer) PendingCount() int {
	return 1
}

func TestIndexRetryRunsOnInterval(t *testing.T) {
	indexer := &countingIndexer{}

	s := NewIndexRetryScheduler(indexer, 2*time.Millisecond)
	s.Start(context.Background())

	assert.Eventually(t, func() bool { return indexer.retries.Load() >= 1 }, time.Second, time.Millisecond)

	s.Stop(context.Background())
	assert.GreaterOrEqual(t, indexer.retries.Load(), int32(2))
}
