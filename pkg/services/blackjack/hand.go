package blackjack

import (
	"github.com/fadedpez/blackjack/internal/types"
	"github.com/fadedpez/blackjack/pkg/entities"
)

// Payout is either unresolved or a settled signed amount. A zero amount is a
// settled push, never "no payout yet".
type Payout struct {
	settled bool
	amount  int64
}

// Unresolved is the payout of a hand still waiting on the dealer
func Unresolved() Payout {
	return Payout{}
}

// Settled is a final payout of amount (negative for a loss)
func Settled(amount int64) Payout {
	return Payout{settled: true, amount: amount}
}

// IsSettled reports whether the payout has been decided
func (p Payout) IsSettled() bool {
	return p.settled
}

// Amount returns the settled amount and whether it is settled
func (p Payout) Amount() (int64, bool) {
	return p.amount, p.settled
}

// Hand represents one of the player's hands in a round
type Hand struct {
	Cards     []entities.Rank
	Wager     int64
	Payout    Payout
	Complete  bool           // No more actions will be taken
	Eligible  []PlayerAction // Legal actions while not complete
	History   []PlayerAction
	Original  bool // Dealt at the start of the round rather than split off
	Blackjack bool // Natural 21 on the opening deal
}

func newHand(wager int64, original bool) *Hand {
	return &Hand{
		Cards:    make([]entities.Rank, 0, 2),
		Wager:    wager,
		Payout:   Unresolved(),
		Original: original,
	}
}

// Value returns the best possible score for the hand
func (h *Hand) Value() int {
	return HandValue(h.Cards)
}

// IsBust checks if the hand exceeds 21
func (h *Hand) IsBust() bool {
	return IsBust(h.Cards)
}

// IsPair reports whether the hand is exactly two cards of equal rank
func (h *Hand) IsPair() bool {
	return len(h.Cards) == 2 && h.Cards[0] == h.Cards[1]
}

// HasTaken reports whether action is in the hand's history
func (h *Hand) HasTaken(action PlayerAction) bool {
	return containsAction(h.History, action)
}

// CanTake reports whether action is currently legal for the hand
func (h *Hand) CanTake(action PlayerAction) bool {
	return !h.Complete && containsAction(h.Eligible, action)
}

func (h *Hand) addCard(card entities.Rank) {
	if !card.Valid() {
		types.Invariant("rank %d out of range", card)
	}
	h.Cards = append(h.Cards, card)
}

// finish marks the hand complete without deciding its payout
func (h *Hand) finish() {
	h.Complete = true
	h.Eligible = nil
}

// settle fixes the payout. A hand is settled at most once.
func (h *Hand) settle(amount int64) {
	if h.Payout.IsSettled() {
		types.Invariant("hand already settled at %d", h.Payout.amount)
	}
	h.Payout = Settled(amount)
	h.finish()
}

// DealerHand holds the dealer's cards. The first card is the hole card.
type DealerHand struct {
	Cards []entities.Rank
}

// Value returns the best possible score for the dealer
func (d *DealerHand) Value() int {
	return HandValue(d.Cards)
}

// IsBust checks if the dealer exceeds 21
func (d *DealerHand) IsBust() bool {
	return IsBust(d.Cards)
}
