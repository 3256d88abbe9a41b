package wallet

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fadedpez/blackjack/pkg/entities"
)

// FileRepository implements Repository with JSON files. The profile is stored
// as {"balance": N}; transactions go to a sibling transactions.json.
type FileRepository struct {
	path             string
	transactionsPath string
	mu               sync.RWMutex
	transactions     []*entities.Transaction
}

// NewFileRepository creates a file repository storing the profile at path
func NewFileRepository(path string) (*FileRepository, error) {
	r := &FileRepository{
		path:             path,
		transactionsPath: filepath.Join(filepath.Dir(path), "transactions.json"),
		transactions:     make([]*entities.Transaction, 0),
	}

	if err := r.load(r.transactionsPath, &r.transactions); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to load transactions: %w", err)
	}

	return r, nil
}

// Path returns the location of the profile file
func (r *FileRepository) Path() string {
	return r.path
}

// GetProfile reads the profile from disk
func (r *FileRepository) GetProfile(ctx context.Context) (*entities.PlayerProfile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var profile entities.PlayerProfile
	if err := r.load(r.path, &profile); err != nil {
		if os.IsNotExist(err) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}

	if info, err := os.Stat(r.path); err == nil {
		profile.LastUpdated = info.ModTime()
	}

	return &profile, nil
}

// SaveProfile writes the profile to disk
func (r *FileRepository) SaveProfile(ctx context.Context, profile *entities.PlayerProfile) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	profile.LastUpdated = time.Now()
	return r.save(r.path, profile)
}

// AddTransaction appends a transaction and rewrites the transaction file
func (r *FileRepository) AddTransaction(ctx context.Context, transaction *entities.Transaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	prepareTransaction(transaction)

	txCopy := *transaction
	r.transactions = append(r.transactions, &txCopy)

	if err := r.save(r.transactionsPath, r.transactions); err != nil {
		r.transactions = r.transactions[:len(r.transactions)-1]
		return err
	}
	return nil
}

// GetTransactions retrieves recent transactions, most recent first
func (r *FileRepository) GetTransactions(ctx context.Context, limit int) ([]*entities.Transaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return recentTransactions(r.transactions, limit), nil
}

// Helper functions

func (r *FileRepository) load(path string, v interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}

// save writes v to a temporary file and renames it over path
func (r *FileRepository) save(path string, v interface{}) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", filepath.Base(path), err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to sync file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close file: %w", err)
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to replace file: %w", err)
	}
	return nil
}
