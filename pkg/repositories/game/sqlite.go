package game

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/fadedpez/blackjack/pkg/db"
	"github.com/fadedpez/blackjack/pkg/entities"
)

// SQLiteRepository implements Repository interface with SQLite storage
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

// SaveRoundRecord stores a round and its hands in one transaction
func (r *SQLiteRepository) SaveRoundRecord(ctx context.Context, record *entities.RoundRecord) error {
	dealerCards, err := json.Marshal(record.DealerCards)
	if err != nil {
		return fmt.Errorf("failed to marshal dealer cards: %w", err)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO rounds (
			id, completed_at, dealer_cards, dealer_score, dealer_busted,
			total_payout, balance_before, balance_after
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		record.ID,
		db.FormatTime(record.CompletedAt),
		string(dealerCards),
		record.DealerScore,
		record.DealerBusted,
		record.TotalPayout,
		record.BalanceBefore,
		record.BalanceAfter,
	)
	if err != nil {
		return fmt.Errorf("failed to insert round: %w", err)
	}

	for _, hand := range record.Hands {
		cards, err := json.Marshal(hand.Cards)
		if err != nil {
			return fmt.Errorf("failed to marshal cards: %w", err)
		}
		actions, err := json.Marshal(hand.Actions)
		if err != nil {
			return fmt.Errorf("failed to marshal actions: %w", err)
		}

		_, err = tx.ExecContext(ctx, `
			INSERT INTO hands (
				round_id, hand_index, cards, score, wager, payout, result,
				actions, original, blackjack, busted
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			record.ID,
			hand.Index,
			string(cards),
			hand.Score,
			hand.Wager,
			hand.Payout,
			string(hand.Result),
			string(actions),
			hand.Original,
			hand.Blackjack,
			hand.Busted,
		)
		if err != nil {
			return fmt.Errorf("failed to insert hand: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// GetRecentRounds retrieves recent rounds, most recent first
func (r *SQLiteRepository) GetRecentRounds(ctx context.Context, limit int) ([]*entities.RoundRecord, error) {
	if limit <= 0 {
		limit = -1
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, completed_at, dealer_cards, dealer_score, dealer_busted,
			total_payout, balance_before, balance_after
		FROM rounds
		ORDER BY completed_at DESC, rowid DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query rounds: %w", err)
	}
	defer rows.Close()

	records := make([]*entities.RoundRecord, 0)
	for rows.Next() {
		var record entities.RoundRecord
		var completedAt, dealerCards string

		if err := rows.Scan(
			&record.ID,
			&completedAt,
			&dealerCards,
			&record.DealerScore,
			&record.DealerBusted,
			&record.TotalPayout,
			&record.BalanceBefore,
			&record.BalanceAfter,
		); err != nil {
			return nil, fmt.Errorf("failed to scan round: %w", err)
		}

		if record.CompletedAt, err = db.ParseTime(completedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(dealerCards), &record.DealerCards); err != nil {
			return nil, fmt.Errorf("failed to unmarshal dealer cards: %w", err)
		}

		records = append(records, &record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rounds: %w", err)
	}
	rows.Close()

	for _, record := range records {
		if record.Hands, err = r.getHands(ctx, record.ID); err != nil {
			return nil, err
		}
	}

	return records, nil
}

func (r *SQLiteRepository) getHands(ctx context.Context, roundID string) ([]entities.HandRecord, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT hand_index, cards, score, wager, payout, result, actions,
			original, blackjack, busted
		FROM hands
		WHERE round_id = ?
		ORDER BY hand_index`, roundID)
	if err != nil {
		return nil, fmt.Errorf("failed to query hands: %w", err)
	}
	defer rows.Close()

	hands := make([]entities.HandRecord, 0)
	for rows.Next() {
		var hand entities.HandRecord
		var cards, actions, result string

		if err := rows.Scan(
			&hand.Index,
			&cards,
			&hand.Score,
			&hand.Wager,
			&hand.Payout,
			&result,
			&actions,
			&hand.Original,
			&hand.Blackjack,
			&hand.Busted,
		); err != nil {
			return nil, fmt.Errorf("failed to scan hand: %w", err)
		}

		hand.Result = entities.Result(result)
		if err := json.Unmarshal([]byte(cards), &hand.Cards); err != nil {
			return nil, fmt.Errorf("failed to unmarshal cards: %w", err)
		}
		if err := json.Unmarshal([]byte(actions), &hand.Actions); err != nil {
			return nil, fmt.Errorf("failed to unmarshal actions: %w", err)
		}

		hands = append(hands, hand)
	}

	return hands, rows.Err()
}

// GetStatistics aggregates every stored round
func (r *SQLiteRepository) GetStatistics(ctx context.Context) (*entities.PlayerStatistics, error) {
	stats := &entities.PlayerStatistics{}
	var lastCompleted sql.NullString

	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*), COALESCE(SUM(total_payout), 0), MAX(completed_at)
		FROM rounds`).Scan(&stats.RoundsPlayed, &stats.NetPayout, &lastCompleted)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate rounds: %w", err)
	}

	err = r.db.QueryRowContext(ctx, `
		SELECT
			COUNT(*),
			COALESCE(SUM(CASE WHEN result IN ('WIN', 'BLACKJACK') THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN result = 'PUSH' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN blackjack THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN busted THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN actions LIKE '%"split"%' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN actions LIKE '%"double_down"%' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(wager), 0)
		FROM hands`).Scan(
		&stats.HandsPlayed,
		&stats.Wins,
		&stats.Pushes,
		&stats.Blackjacks,
		&stats.Busts,
		&stats.Splits,
		&stats.DoubleDowns,
		&stats.TotalWagered,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate hands: %w", err)
	}
	stats.Losses = stats.HandsPlayed - stats.Wins - stats.Pushes

	if lastCompleted.Valid {
		if stats.LastUpdated, err = db.ParseTime(lastCompleted.String); err != nil {
			return nil, err
		}
	}

	return stats, nil
}

// Close closes the database connection
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}
