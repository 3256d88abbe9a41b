package game

import (
	"context"

	"github.com/fadedpez/blackjack/pkg/entities"
)

//go:generate mockgen -source=$GOFILE -destination=mock/mock.go -package=mock_game

// Repository defines storage operations for finished rounds
type Repository interface {
	// SaveRoundRecord stores a finished round
	SaveRoundRecord(ctx context.Context, record *entities.RoundRecord) error

	// GetRecentRounds retrieves up to limit rounds, most recent first
	GetRecentRounds(ctx context.Context, limit int) ([]*entities.RoundRecord, error)

	// GetStatistics aggregates every stored round
	GetStatistics(ctx context.Context) (*entities.PlayerStatistics, error)

	// Close closes any resources used by the repository
	Close() error
}
