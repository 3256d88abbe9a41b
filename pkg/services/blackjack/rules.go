package blackjack

import (
	"github.com/fadedpez/blackjack/pkg/entities"
)

const (
	BlackjackTotal = 21 // Best possible total, and the bust threshold
	DealerStandsOn = 17 // Dealer draws while below this total
	aceBonus       = 10 // Promoting an ace from 1 to 11
)

// Rules are the house rules of the table. They are fixed for the life of
// the process and never change between rounds.
type Rules struct {
	AllowResplit          bool // Split hands may be split again
	AllowDoubleAfterSplit bool // Split hands may double down
}

// DefaultRules are the house rules used when none are configured
var DefaultRules = Rules{
	AllowResplit:          true,
	AllowDoubleAfterSplit: true,
}

// HandValue returns the best total not exceeding 21 when one exists, and the
// all-aces-as-one total otherwise. A result above 21 is a bust.
func HandValue(cards []entities.Rank) int {
	minTotal := 0
	aces := 0
	for _, card := range cards {
		minTotal += int(card)
		if card.IsAce() {
			aces++
		}
	}

	headroom := BlackjackTotal - minTotal
	if headroom < 0 {
		headroom = 0
	}
	promotions := min(aces, headroom/aceBonus)

	return minTotal + aceBonus*promotions
}

// IsBust checks if a set of cards exceeds 21
func IsBust(cards []entities.Rank) bool {
	return HandValue(cards) > BlackjackTotal
}

// IsNatural reports whether two cards total 21
func IsNatural(cards []entities.Rank) bool {
	return len(cards) == 2 && HandValue(cards) == BlackjackTotal
}

// BlackjackBonus returns the 3:2 payout for a natural, rounded down
func BlackjackBonus(wager int64) int64 {
	return wager * 3 / 2
}
