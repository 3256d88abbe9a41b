package entities

import "time"

// Result represents the outcome of a single hand
type Result string

const (
	ResultWin       Result = "WIN"
	ResultLose      Result = "LOSE"
	ResultPush      Result = "PUSH"
	ResultBlackjack Result = "BLACKJACK"
	ResultBust      Result = "BUST"
)

// String returns the string representation of the result
func (r Result) String() string {
	return string(r)
}

// IsWin returns true if this result represents a win
func (r Result) IsWin() bool {
	return r == ResultWin || r == ResultBlackjack
}

// IsLoss returns true if this result lost the wager
func (r Result) IsLoss() bool {
	return r == ResultLose || r == ResultBust
}

// RoundRecord is the history entry written after every finished round
type RoundRecord struct {
	ID            string       `json:"id"`
	CompletedAt   time.Time    `json:"completed_at"`
	Hands         []HandRecord `json:"hands"`
	DealerCards   []Rank       `json:"dealer_cards"`
	DealerScore   int          `json:"dealer_score"`
	DealerBusted  bool         `json:"dealer_busted"`
	TotalPayout   int64        `json:"total_payout"`
	BalanceBefore int64        `json:"balance_before"`
	BalanceAfter  int64        `json:"balance_after"`
}

// HandRecord is one player hand inside a RoundRecord
type HandRecord struct {
	Index     int      `json:"index"`
	Cards     []Rank   `json:"cards"`
	Score     int      `json:"score"`
	Wager     int64    `json:"wager"`
	Payout    int64    `json:"payout"`
	Result    Result   `json:"result"`
	Actions   []string `json:"actions"`
	Original  bool     `json:"original"`
	Blackjack bool     `json:"blackjack"`
	Busted    bool     `json:"busted"`
}

// HasAction reports whether the hand record contains the given action name
func (h *HandRecord) HasAction(name string) bool {
	for _, a := range h.Actions {
		if a == name {
			return true
		}
	}
	return false
}
