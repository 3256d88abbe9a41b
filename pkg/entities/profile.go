package entities

import (
	"time"
)

// PlayerProfile is the persisted state of the single local player
type PlayerProfile struct {
	Balance     int64     `json:"balance"`
	LastUpdated time.Time `json:"-"`
}

// TransactionType represents the type of wallet transaction
type TransactionType string

const (
	TransactionTypePayout TransactionType = "PAYOUT"
	TransactionTypeBonus  TransactionType = "BONUS"
)

// Transaction represents a single change to the player's balance
type Transaction struct {
	ID           string          `json:"id"`
	Amount       int64           `json:"amount"` // Signed; negative for losses
	Type         TransactionType `json:"type"`
	ReferenceID  string          `json:"reference_id,omitempty"` // Round ID for payouts
	Description  string          `json:"description"`
	Timestamp    time.Time       `json:"timestamp"`
	BalanceAfter int64           `json:"balance_after"`
}
