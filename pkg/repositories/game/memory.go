package game

import (
	"context"
	"sync"

	"github.com/fadedpez/blackjack/pkg/entities"
)

// MemoryRepository implements Repository interface with in-memory storage
type MemoryRepository struct {
	mu sync.RWMutex
	// Rounds in the order they were saved
	rounds []*entities.RoundRecord
}

// NewMemoryRepository creates a new in-memory repository
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		rounds: make([]*entities.RoundRecord, 0),
	}
}

// SaveRoundRecord stores a finished round
func (r *MemoryRepository) SaveRoundRecord(ctx context.Context, record *entities.RoundRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	recordCopy := *record
	recordCopy.Hands = append([]entities.HandRecord(nil), record.Hands...)
	r.rounds = append(r.rounds, &recordCopy)
	return nil
}

// GetRecentRounds retrieves recent rounds, most recent first
func (r *MemoryRepository) GetRecentRounds(ctx context.Context, limit int) ([]*entities.RoundRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if limit <= 0 || limit > len(r.rounds) {
		limit = len(r.rounds)
	}

	results := make([]*entities.RoundRecord, 0, limit)
	for i := len(r.rounds) - 1; i >= 0 && len(results) < limit; i-- {
		results = append(results, r.rounds[i])
	}
	return results, nil
}

// GetStatistics aggregates every stored round
func (r *MemoryRepository) GetStatistics(ctx context.Context) (*entities.PlayerStatistics, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stats := &entities.PlayerStatistics{}
	for _, record := range r.rounds {
		stats.Add(record)
	}
	return stats, nil
}

// Close is a no-op for memory repository since there are no resources to close
func (r *MemoryRepository) Close() error {
	return nil
}
