package blackjack

import (
	"fmt"
	"time"

	"github.com/fadedpez/blackjack/internal/types"
	"github.com/fadedpez/blackjack/pkg/entities"
)

// HandOutcome is the settled result of one hand
type HandOutcome struct {
	Index     int
	Cards     []entities.Rank
	Score     int
	Wager     int64
	Payout    int64
	Result    entities.Result
	Actions   []PlayerAction
	Original  bool
	Blackjack bool
	Busted    bool
	Compared  bool // Settled by comparing totals with the dealer
}

// Outcome is the result of a finished round
type Outcome struct {
	RoundID      string
	Hands        []HandOutcome
	DealerCards  []entities.Rank
	DealerScore  int
	DealerBusted bool
	TotalPayout  int64
	Balance      int64 // Balance before the round
}

// BalanceAfter returns the balance once the total payout is applied
func (o *Outcome) BalanceAfter() int64 {
	return o.Balance + o.TotalPayout
}

// Record converts the outcome into a history record
func (o *Outcome) Record(completedAt time.Time) *entities.RoundRecord {
	record := &entities.RoundRecord{
		ID:            o.RoundID,
		CompletedAt:   completedAt,
		Hands:         make([]entities.HandRecord, 0, len(o.Hands)),
		DealerCards:   append([]entities.Rank(nil), o.DealerCards...),
		DealerScore:   o.DealerScore,
		DealerBusted:  o.DealerBusted,
		TotalPayout:   o.TotalPayout,
		BalanceBefore: o.Balance,
		BalanceAfter:  o.BalanceAfter(),
	}

	for _, hand := range o.Hands {
		actions := make([]string, 0, len(hand.Actions))
		for _, action := range hand.Actions {
			actions = append(actions, action.String())
		}
		record.Hands = append(record.Hands, entities.HandRecord{
			Index:     hand.Index,
			Cards:     append([]entities.Rank(nil), hand.Cards...),
			Score:     hand.Score,
			Wager:     hand.Wager,
			Payout:    hand.Payout,
			Result:    hand.Result,
			Actions:   actions,
			Original:  hand.Original,
			Blackjack: hand.Blackjack,
			Busted:    hand.Busted,
		})
	}

	return record
}

// Settle assigns a payout to every hand still without one by comparing
// against the dealer total, and reports the outcome
func (r *Round) Settle() (*Outcome, error) {
	if r.phase != PhaseSettlement {
		return nil, types.NewGameError(types.ErrInvalidState,
			fmt.Sprintf("cannot settle during %s", r.phase))
	}

	dealerScore := r.dealer.Value()
	compared := make([]bool, len(r.hands))
	for i, hand := range r.hands {
		if hand.Payout.IsSettled() {
			continue
		}
		compared[i] = true
		score := hand.Value()
		switch {
		case score > dealerScore:
			hand.settle(hand.Wager)
		case score < dealerScore:
			hand.settle(-hand.Wager)
		default:
			hand.settle(0)
		}
	}

	outcome := &Outcome{
		RoundID:      r.ID,
		Hands:        make([]HandOutcome, 0, len(r.hands)),
		DealerCards:  append([]entities.Rank(nil), r.dealer.Cards...),
		DealerScore:  dealerScore,
		DealerBusted: r.busted,
		Balance:      r.balance,
	}

	for i, hand := range r.hands {
		amount, settled := hand.Payout.Amount()
		if !settled {
			types.Invariant("hand %d unsettled after settlement", i)
		}
		outcome.TotalPayout += amount
		outcome.Hands = append(outcome.Hands, HandOutcome{
			Index:     i,
			Cards:     append([]entities.Rank(nil), hand.Cards...),
			Score:     hand.Value(),
			Wager:     hand.Wager,
			Payout:    amount,
			Result:    resultOf(hand, amount),
			Actions:   append([]PlayerAction(nil), hand.History...),
			Original:  hand.Original,
			Blackjack: hand.Blackjack,
			Busted:    hand.IsBust(),
			Compared:  compared[i],
		})
	}

	r.phase = PhaseComplete
	return outcome, nil
}

func resultOf(hand *Hand, amount int64) entities.Result {
	switch {
	case hand.IsBust():
		return entities.ResultBust
	case hand.Blackjack && amount > 0:
		return entities.ResultBlackjack
	case amount > 0:
		return entities.ResultWin
	case amount < 0:
		return entities.ResultLose
	default:
		return entities.ResultPush
	}
}
