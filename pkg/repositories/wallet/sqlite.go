package wallet

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/fadedpez/blackjack/pkg/db"
	"github.com/fadedpez/blackjack/pkg/entities"
)

// SQLiteRepository implements Repository using SQLite
type SQLiteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository opens the database at dbPath, migrating it if needed
func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	conn, err := db.OpenSQLite(dbPath)
	if err != nil {
		return nil, err
	}
	return &SQLiteRepository{db: conn}, nil
}

// NewSQLiteRepositoryFromDB wraps an already migrated database
func NewSQLiteRepositoryFromDB(conn *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: conn}
}

// GetProfile retrieves the player profile
func (r *SQLiteRepository) GetProfile(ctx context.Context) (*entities.PlayerProfile, error) {
	query := `SELECT balance, updated_at FROM profiles WHERE id = 1`

	var profile entities.PlayerProfile
	var updatedAt string

	err := r.db.QueryRowContext(ctx, query).Scan(&profile.Balance, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("error getting profile: %w", err)
	}

	profile.LastUpdated, err = db.ParseTime(updatedAt)
	if err != nil {
		return nil, err
	}

	return &profile, nil
}

// SaveProfile creates or replaces the player profile
func (r *SQLiteRepository) SaveProfile(ctx context.Context, profile *entities.PlayerProfile) error {
	profile.LastUpdated = time.Now()
	formattedTime := db.FormatTime(profile.LastUpdated)

	log.Printf("[WALLET_REPO] Saving profile: Balance=%d, Time=%s", profile.Balance, formattedTime)

	query := `
		INSERT INTO profiles (id, balance, updated_at)
		VALUES (1, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			balance = excluded.balance,
			updated_at = excluded.updated_at
	`

	if _, err := r.db.ExecContext(ctx, query, profile.Balance, formattedTime); err != nil {
		log.Printf("[WALLET_REPO] Error saving profile: %v", err)
		return fmt.Errorf("error saving profile: %w", err)
	}

	return nil
}

// AddTransaction records a new transaction
func (r *SQLiteRepository) AddTransaction(ctx context.Context, transaction *entities.Transaction) error {
	prepareTransaction(transaction)

	query := `
		INSERT INTO transactions (
			id, amount, type, reference_id, description, timestamp, balance_after
		) VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		transaction.ID,
		transaction.Amount,
		transaction.Type,
		transaction.ReferenceID,
		transaction.Description,
		db.FormatTime(transaction.Timestamp),
		transaction.BalanceAfter,
	)
	if err != nil {
		return fmt.Errorf("error adding transaction: %w", err)
	}

	return nil
}

// GetTransactions retrieves recent transactions, most recent first
func (r *SQLiteRepository) GetTransactions(ctx context.Context, limit int) ([]*entities.Transaction, error) {
	if limit <= 0 {
		limit = -1 // SQLite treats a negative limit as unbounded
	}

	query := `
		SELECT id, amount, type, reference_id, description, timestamp, balance_after
		FROM transactions
		ORDER BY timestamp DESC, rowid DESC
		LIMIT ?
	`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("error querying transactions: %w", err)
	}
	defer rows.Close()

	transactions := make([]*entities.Transaction, 0)
	for rows.Next() {
		var tx entities.Transaction
		var referenceID, description sql.NullString
		var timestamp string

		err := rows.Scan(
			&tx.ID,
			&tx.Amount,
			&tx.Type,
			&referenceID,
			&description,
			&timestamp,
			&tx.BalanceAfter,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning transaction row: %w", err)
		}

		tx.ReferenceID = referenceID.String
		tx.Description = description.String
		if tx.Timestamp, err = db.ParseTime(timestamp); err != nil {
			return nil, err
		}

		transactions = append(transactions, &tx)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transaction rows: %w", err)
	}

	return transactions, nil
}

// Close closes the database connection
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}
