package wallet

import (
	"context"

	"github.com/fadedpez/blackjack/pkg/entities"
)

//go:generate mockgen -source=$GOFILE -destination=mock/mock.go -package=mock_wallet_service
type WalletService interface {
	GetOrCreateProfile(ctx context.Context) (*entities.PlayerProfile, bool, error)
	Balance(ctx context.Context) (int64, error)
	ApplyPayout(ctx context.Context, roundID string, payout int64) (int64, error)
	EnsurePlayable(ctx context.Context) (int64, bool, error)
	RecentTransactions(ctx context.Context, limit int) ([]*entities.Transaction, error)
}
