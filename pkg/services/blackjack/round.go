package blackjack

import (
	"fmt"

	"github.com/fadedpez/blackjack/internal/types"
	"github.com/fadedpez/blackjack/pkg/entities"
)

// Phase represents the current phase of a round
type Phase int

const (
	PhaseDealing Phase = iota
	PhasePlayerTurn
	PhaseDealerTurn
	PhaseSettlement
	PhaseComplete
)

func (p Phase) String() string {
	switch p {
	case PhaseDealing:
		return "DEALING"
	case PhasePlayerTurn:
		return "PLAYER_TURN"
	case PhaseDealerTurn:
		return "DEALER_TURN"
	case PhaseSettlement:
		return "SETTLEMENT"
	case PhaseComplete:
		return "COMPLETE"
	}
	return fmt.Sprintf("phase(%d)", int(p))
}

// Round is a single round of blackjack for one player. The hands slice is the
// round's hand arena: it starts with one hand and only ever grows by splits.
type Round struct {
	ID        string
	rules     Rules
	shoe      *entities.Shoe
	hands     []*Hand
	dealer    DealerHand
	balance   int64 // Balance when the wager was placed
	spendable int64 // Chips not yet committed to a hand
	phase     Phase
	busted    bool // Dealer busted
	naturals  bool // A blackjack was decided on the opening deal
	obs       Observer
}

// NewRound validates the wager against the balance and sets up a round with
// a single original hand
func NewRound(id string, shoe *entities.Shoe, rules Rules, balance, wager int64, obs Observer) (*Round, error) {
	if err := ValidateWager(balance, wager); err != nil {
		return nil, err
	}
	if shoe == nil {
		return nil, types.NewGameError(types.ErrInvalidState, "round requires a shoe")
	}
	if obs == nil {
		obs = NopObserver{}
	}

	return &Round{
		ID:        id,
		rules:     rules,
		shoe:      shoe,
		hands:     []*Hand{newHand(wager, true)},
		balance:   balance,
		spendable: balance - wager,
		phase:     PhaseDealing,
		obs:       obs,
	}, nil
}

// ValidateWager checks 0 < wager <= balance
func ValidateWager(balance, wager int64) error {
	if wager < 1 {
		return types.NewGameError(types.ErrInvalidWager, "You must bet at least 1 chip to play.")
	}
	if wager > balance {
		return types.NewGameError(types.ErrInvalidWager,
			fmt.Sprintf("You can only bet up to your balance %d. Please enter your bet again.", balance))
	}
	return nil
}

// Deal deals two cards to every hand and the dealer, alternating hand then
// dealer, and resolves naturals
func (r *Round) Deal() error {
	if r.phase != PhaseDealing {
		return types.NewGameError(types.ErrInvalidState, "round has already been dealt")
	}

	for i := 0; i < 2; i++ {
		for _, hand := range r.hands {
			hand.addCard(r.shoe.Draw())
		}
		r.dealer.Cards = append(r.dealer.Cards, r.shoe.Draw())
	}

	r.resolveNaturals()
	r.refreshEligibility()
	r.advance()
	return nil
}

// resolveNaturals checks every starting hand once against the dealer
func (r *Round) resolveNaturals() {
	dealerNatural := IsNatural(r.dealer.Cards)

	for i, hand := range r.hands {
		handNatural := IsNatural(hand.Cards)
		switch {
		case handNatural && dealerNatural:
			hand.Blackjack = true
			hand.settle(0)
			r.obs.Notice(Notice{Kind: NoticeBothBlackjack, Hand: i})
		case handNatural:
			hand.Blackjack = true
			bonus := BlackjackBonus(hand.Wager)
			hand.settle(bonus)
			r.obs.Notice(Notice{Kind: NoticePlayerBlackjack, Hand: i, Amount: bonus})
		case dealerNatural:
			hand.settle(-hand.Wager)
			r.obs.Notice(Notice{Kind: NoticeDealerBlackjack, Hand: i, Amount: hand.Wager})
		default:
			continue
		}
		r.naturals = true
	}
}

// Phase returns the current phase
func (r *Round) Phase() Phase {
	return r.phase
}

// Hands returns the hand arena in play order
func (r *Round) Hands() []*Hand {
	return r.hands
}

// Dealer returns the dealer hand
func (r *Round) Dealer() *DealerHand {
	return &r.dealer
}

// Spendable returns the chips not yet committed to a hand
func (r *Round) Spendable() int64 {
	return r.spendable
}

// Balance returns the balance the round started with
func (r *Round) Balance() int64 {
	return r.balance
}

// DealerBusted reports whether the dealer went over 21
func (r *Round) DealerBusted() bool {
	return r.busted
}

// HadNaturals reports whether any hand was decided by a blackjack on the deal
func (r *Round) HadNaturals() bool {
	return r.naturals
}

// ActiveHand returns the first incomplete hand and its index, or -1 and nil
// when every hand is complete
func (r *Round) ActiveHand() (int, *Hand) {
	for i, hand := range r.hands {
		if !hand.Complete {
			return i, hand
		}
	}
	return -1, nil
}

// NeedsDealer reports whether some hand still waits on the dealer
func (r *Round) NeedsDealer() bool {
	for _, hand := range r.hands {
		if !hand.Payout.IsSettled() {
			return true
		}
	}
	return false
}

// Apply performs action on the active hand. An action outside the hand's
// eligible set is rejected and nothing changes.
func (r *Round) Apply(action PlayerAction) error {
	if r.phase != PhasePlayerTurn {
		return types.NewGameError(types.ErrInvalidState,
			fmt.Sprintf("cannot act during %s", r.phase))
	}

	index, hand := r.ActiveHand()
	if hand == nil {
		types.Invariant("player turn with no active hand")
	}
	if !hand.CanTake(action) {
		return types.NewGameError(types.ErrActionNotEligible,
			fmt.Sprintf("You cannot %s at this time. Please enter a valid option.", action.Describe()))
	}

	hand.History = append(hand.History, action)

	switch action {
	case ActionHit:
		hand.addCard(r.shoe.Draw())
		r.obs.Notice(Notice{Kind: NoticeHit, Hand: index})
		if hand.IsBust() {
			hand.settle(-hand.Wager)
			r.obs.Notice(Notice{Kind: NoticeBust, Hand: index, Amount: hand.Wager})
		}
	case ActionStand:
		hand.finish()
		r.obs.Notice(Notice{Kind: NoticeStand, Hand: index})
	case ActionDoubleDown:
		r.commit(hand.Wager)
		hand.Wager *= 2
		r.obs.Notice(Notice{Kind: NoticeDoubleDown, Hand: index, Amount: hand.Wager})
		hand.addCard(r.shoe.Draw())
		if hand.IsBust() {
			hand.settle(-hand.Wager)
			r.obs.Notice(Notice{Kind: NoticeBust, Hand: index, Amount: hand.Wager})
		} else {
			hand.finish()
		}
	case ActionSplit:
		r.split(hand)
		r.obs.Notice(Notice{Kind: NoticeSplit, Hand: index, Amount: hand.Wager})
	default:
		types.Invariant("unknown action %d", action)
	}

	r.refreshEligibility()
	r.advance()
	return nil
}

func (r *Round) split(hand *Hand) {
	if !hand.IsPair() {
		types.Invariant("split of a non-pair %v", hand.Cards)
	}
	r.commit(hand.Wager)

	removed := hand.Cards[1]
	hand.Cards = hand.Cards[:1]
	hand.addCard(r.shoe.Draw())

	split := newHand(hand.Wager, false)
	split.addCard(removed)
	split.addCard(r.shoe.Draw())
	r.hands = append(r.hands, split)
}

// commit moves chips from spendable into a hand's wager
func (r *Round) commit(amount int64) {
	if amount > r.spendable {
		types.Invariant("committing %d with only %d spendable", amount, r.spendable)
	}
	r.spendable -= amount
}

// refreshEligibility recomputes the legal actions of every incomplete hand.
// Committing chips to one hand changes what the others can afford.
func (r *Round) refreshEligibility() {
	for _, hand := range r.hands {
		if !hand.Complete {
			hand.Eligible = EligibleActions(r.rules, r.spendable, hand)
		}
	}
}

func (r *Round) advance() {
	switch {
	case r.phase == PhaseComplete:
		return
	case r.phase == PhaseDealerTurn:
		r.phase = PhaseSettlement
	default:
		if _, hand := r.ActiveHand(); hand != nil {
			r.phase = PhasePlayerTurn
		} else if r.NeedsDealer() {
			r.phase = PhaseDealerTurn
		} else {
			r.phase = PhaseSettlement
		}
	}
}
