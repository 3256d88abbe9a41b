package statistics

import (
	"context"

	"github.com/fadedpez/blackjack/pkg/entities"
	"github.com/fadedpez/blackjack/pkg/repositories/game"
)

// RecentRounds is how many rounds a summary includes
const RecentRounds = 5

// Service provides methods for retrieving and processing player statistics
type Service struct {
	repository game.Repository
}

// NewService creates a new statistics service
func NewService(repository game.Repository) *Service {
	return &Service{
		repository: repository,
	}
}

// Summary is the player's record across every stored round
type Summary struct {
	*entities.PlayerStatistics
	WinRate    float64                 `json:"win_rate"`
	ProfitRate float64                 `json:"profit_rate"` // Net payout per chip wagered
	Streak     int                     `json:"streak"`      // Consecutive winning (>0) or losing (<0) rounds
	Recent     []*entities.RoundRecord `json:"recent"`
}

// Summary aggregates the stored history. Streak counts the latest run of
// rounds with the same sign of total payout; a push ends it.
func (s *Service) Summary(ctx context.Context) (*Summary, error) {
	stats, err := s.repository.GetStatistics(ctx)
	if err != nil {
		return nil, err
	}

	recent, err := s.repository.GetRecentRounds(ctx, RecentRounds)
	if err != nil {
		return nil, err
	}

	summary := &Summary{
		PlayerStatistics: stats,
		WinRate:          stats.WinRate(),
		Recent:           recent,
	}
	if stats.TotalWagered > 0 {
		summary.ProfitRate = float64(stats.NetPayout) / float64(stats.TotalWagered)
	}

	streakRounds, err := s.repository.GetRecentRounds(ctx, 0)
	if err != nil {
		return nil, err
	}
	summary.Streak = streak(streakRounds)

	return summary, nil
}

// streak walks rounds from most recent
func streak(rounds []*entities.RoundRecord) int {
	count := 0
	for _, round := range rounds {
		switch {
		case round.TotalPayout > 0 && count >= 0:
			count++
		case round.TotalPayout < 0 && count <= 0:
			count--
		default:
			return count
		}
	}
	return count
}
