package blackjack

import (
	"context"

	"github.com/fadedpez/blackjack/pkg/entities"
)

// HandView is a read-only snapshot of one hand
type HandView struct {
	Cards    []entities.Rank
	Value    int
	Wager    int64
	Complete bool
	Eligible []PlayerAction
}

// Table is a snapshot of the round for rendering. When HideHole is set the
// first dealer card must not be shown.
type Table struct {
	RoundID     string
	DealerCards []entities.Rank
	HideHole    bool
	Hands       []HandView
	Active      int // Index of the hand awaiting action, -1 if none
	Spendable   int64
}

// ActiveHand returns the snapshot of the hand awaiting action
func (t Table) ActiveHand() (HandView, bool) {
	if t.Active < 0 || t.Active >= len(t.Hands) {
		return HandView{}, false
	}
	return t.Hands[t.Active], true
}

// DealerValue returns the dealer total visible on this table
func (t Table) DealerValue() int {
	if t.HideHole && len(t.DealerCards) > 0 {
		return HandValue(t.DealerCards[1:])
	}
	return HandValue(t.DealerCards)
}

// Table returns a snapshot of the round
func (r *Round) Table(hideHole bool) Table {
	active, _ := r.ActiveHand()
	table := Table{
		RoundID:     r.ID,
		DealerCards: append([]entities.Rank(nil), r.dealer.Cards...),
		HideHole:    hideHole,
		Hands:       make([]HandView, 0, len(r.hands)),
		Active:      active,
		Spendable:   r.spendable,
	}
	for _, hand := range r.hands {
		table.Hands = append(table.Hands, HandView{
			Cards:    append([]entities.Rank(nil), hand.Cards...),
			Value:    hand.Value(),
			Wager:    hand.Wager,
			Complete: hand.Complete,
			Eligible: append([]PlayerAction(nil), hand.Eligible...),
		})
	}
	return table
}

// NoticeKind identifies an event during a round
type NoticeKind int

const (
	NoticeBothBlackjack NoticeKind = iota
	NoticePlayerBlackjack
	NoticeDealerBlackjack
	NoticeHit
	NoticeStand
	NoticeDoubleDown
	NoticeSplit
	NoticeBust
	NoticeDealerTurn
	NoticeDealerHits
	NoticeDealerStands
	NoticeDealerBusts
)

// Notice is an event raised while a round plays out. Hand is the index of
// the hand concerned and Amount the chips involved, where relevant.
type Notice struct {
	Kind   NoticeKind
	Hand   int
	Amount int64
}

// Observer is told about everything visible at the table
type Observer interface {
	TableChanged(table Table)
	Notice(notice Notice)
	ActionRejected(err error, eligible []PlayerAction)
	RoundSettled(outcome *Outcome)
}

// ActionSource supplies the player's decisions. It blocks until an action is
// chosen; an error aborts the round.
type ActionSource interface {
	NextAction(ctx context.Context, table Table) (PlayerAction, error)
}

// NopObserver ignores everything
type NopObserver struct{}

func (NopObserver) TableChanged(Table)                   {}
func (NopObserver) Notice(Notice)                        {}
func (NopObserver) ActionRejected(error, []PlayerAction) {}
func (NopObserver) RoundSettled(*Outcome)                {}
