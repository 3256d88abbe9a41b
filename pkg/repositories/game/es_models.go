package game

import (
	"time"

	"github.com/fadedpez/blackjack/pkg/entities"
)

// ESRound represents a round document in Elasticsearch
type ESRound struct {
	RoundID       string    `json:"round_id"`
	CompletedAt   time.Time `json:"completed_at"`
	DealerCards   []int     `json:"dealer_cards"`
	DealerScore   int       `json:"dealer_score"`
	DealerBusted  bool      `json:"dealer_busted"`
	TotalPayout   int64     `json:"total_payout"`
	BalanceBefore int64     `json:"balance_before"`
	BalanceAfter  int64     `json:"balance_after"`
	Hands         []ESHand  `json:"hands"`
}

// ESHand represents a player hand in Elasticsearch
type ESHand struct {
	HandIndex  int      `json:"hand_index"`
	Cards      []int    `json:"cards"`
	Score      int      `json:"score"`
	Wager      int64    `json:"wager"`
	Payout     int64    `json:"payout"`
	Result     string   `json:"result"`
	Original   bool     `json:"original"`
	Blackjack  bool     `json:"blackjack"`
	Busted     bool     `json:"busted"`
	HasSplit   bool     `json:"has_split"`
	DoubleDown bool     `json:"is_doubled_down"`
	Actions    []string `json:"actions"`
}

// newESRound converts a round record into its search document
func newESRound(record *entities.RoundRecord) *ESRound {
	doc := &ESRound{
		RoundID:       record.ID,
		CompletedAt:   record.CompletedAt,
		DealerCards:   rankValues(record.DealerCards),
		DealerScore:   record.DealerScore,
		DealerBusted:  record.DealerBusted,
		TotalPayout:   record.TotalPayout,
		BalanceBefore: record.BalanceBefore,
		BalanceAfter:  record.BalanceAfter,
		Hands:         make([]ESHand, 0, len(record.Hands)),
	}

	for i := range record.Hands {
		hand := &record.Hands[i]
		doc.Hands = append(doc.Hands, ESHand{
			HandIndex:  hand.Index,
			Cards:      rankValues(hand.Cards),
			Score:      hand.Score,
			Wager:      hand.Wager,
			Payout:     hand.Payout,
			Result:     hand.Result.String(),
			Original:   hand.Original,
			Blackjack:  hand.Blackjack,
			Busted:     hand.Busted,
			HasSplit:   hand.HasAction("split"),
			DoubleDown: hand.HasAction("double_down"),
			Actions:    hand.Actions,
		})
	}

	return doc
}

func rankValues(ranks []entities.Rank) []int {
	values := make([]int, len(ranks))
	for i, r := range ranks {
		values[i] = int(r)
	}
	return values
}
