package wallet

import (
	"context"
	"errors"

	"github.com/fadedpez/blackjack/pkg/entities"
)

var (
	ErrProfileNotFound = errors.New("profile not found")
)

//go:generate mockgen -source=$GOFILE -destination=mock/mock.go -package=mock_wallet

// Repository defines the interface for player profile operations
type Repository interface {
	// GetProfile retrieves the player profile, ErrProfileNotFound if none was saved
	GetProfile(ctx context.Context) (*entities.PlayerProfile, error)

	// SaveProfile creates or replaces the player profile. The profile is
	// durable once SaveProfile returns.
	SaveProfile(ctx context.Context, profile *entities.PlayerProfile) error

	// AddTransaction records a new transaction
	AddTransaction(ctx context.Context, transaction *entities.Transaction) error

	// GetTransactions retrieves up to limit transactions, most recent first
	GetTransactions(ctx context.Context, limit int) ([]*entities.Transaction, error)
}
