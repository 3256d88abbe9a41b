package wallet

import (
	"context"
	"sync"
	"time"

	"github.com/fadedpez/blackjack/pkg/entities"
	"github.com/google/uuid"
)

// MemoryRepository implements Repository using in-memory storage
type MemoryRepository struct {
	profile      *entities.PlayerProfile
	transactions []*entities.Transaction
	mu           sync.RWMutex
}

// NewMemoryRepository creates a new in-memory wallet repository
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		transactions: make([]*entities.Transaction, 0),
	}
}

// GetProfile retrieves the player profile
func (r *MemoryRepository) GetProfile(ctx context.Context) (*entities.PlayerProfile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.profile == nil {
		return nil, ErrProfileNotFound
	}

	// Return a copy to prevent concurrent modification
	profileCopy := *r.profile
	return &profileCopy, nil
}

// SaveProfile creates or replaces the player profile
func (r *MemoryRepository) SaveProfile(ctx context.Context, profile *entities.PlayerProfile) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	profile.LastUpdated = time.Now()

	profileCopy := *profile
	r.profile = &profileCopy

	return nil
}

// AddTransaction records a new transaction
func (r *MemoryRepository) AddTransaction(ctx context.Context, transaction *entities.Transaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	prepareTransaction(transaction)

	txCopy := *transaction
	r.transactions = append(r.transactions, &txCopy)

	return nil
}

// GetTransactions retrieves recent transactions, most recent first
func (r *MemoryRepository) GetTransactions(ctx context.Context, limit int) ([]*entities.Transaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return recentTransactions(r.transactions, limit), nil
}

// prepareTransaction fills in an ID and timestamp when not provided
func prepareTransaction(transaction *entities.Transaction) {
	if transaction.ID == "" {
		transaction.ID = uuid.New().String()
	}
	if transaction.Timestamp.IsZero() {
		transaction.Timestamp = time.Now()
	}
}

// recentTransactions copies up to limit of the newest transactions from an
// oldest-first slice
func recentTransactions(transactions []*entities.Transaction, limit int) []*entities.Transaction {
	if limit <= 0 || limit > len(transactions) {
		limit = len(transactions)
	}

	result := make([]*entities.Transaction, 0, limit)
	for i := len(transactions) - 1; i >= 0 && len(result) < limit; i-- {
		txCopy := *transactions[i]
		result = append(result, &txCopy)
	}
	return result
}
