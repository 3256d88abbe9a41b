package entities

import "time"

// PlayerStatistics represents aggregated statistics across recorded rounds
type PlayerStatistics struct {
	RoundsPlayed int
	HandsPlayed  int
	Wins         int
	Losses       int
	Pushes       int
	Blackjacks   int
	Busts        int
	Splits       int
	DoubleDowns  int
	TotalWagered int64
	NetPayout    int64
	LastUpdated  time.Time
}

// WinRate calculates the share of hands won as a percentage
func (s *PlayerStatistics) WinRate() float64 {
	if s.HandsPlayed == 0 {
		return 0.0
	}
	return float64(s.Wins) / float64(s.HandsPlayed) * 100.0
}

// Add folds a single round record into the statistics
func (s *PlayerStatistics) Add(record *RoundRecord) {
	s.RoundsPlayed++
	s.NetPayout += record.TotalPayout
	for i := range record.Hands {
		hand := &record.Hands[i]
		s.HandsPlayed++
		s.TotalWagered += hand.Wager
		switch {
		case hand.Result.IsWin():
			s.Wins++
		case hand.Result == ResultPush:
			s.Pushes++
		default:
			s.Losses++
		}
		if hand.Blackjack {
			s.Blackjacks++
		}
		if hand.Busted {
			s.Busts++
		}
		if hand.HasAction("split") {
			s.Splits++
		}
		if hand.HasAction("double_down") {
			s.DoubleDowns++
		}
	}
	if record.CompletedAt.After(s.LastUpdated) {
		s.LastUpdated = record.CompletedAt
	}
}
