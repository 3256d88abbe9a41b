package console

import (
	"fmt"
	"strings"

	"github.com/fadedpez/blackjack/pkg/entities"
	"github.com/fadedpez/blackjack/pkg/services/blackjack"
	"github.com/pterm/pterm"
)

// TableChanged prints the dealer and player hands
func (c *Console) TableChanged(table blackjack.Table) {
	c.println("Dealer: " + renderCards(table.DealerCards, table.HideHole))

	if len(table.Hands) == 1 {
		c.println("Player: " + renderCards(table.Hands[0].Cards, false))
		return
	}
	for i, hand := range table.Hands {
		line := fmt.Sprintf("Player hand %d: %s", i+1, renderCards(hand.Cards, false))
		if i == table.Active {
			line += pterm.LightCyan("*")
		}
		c.println(line)
	}
}

// Notice prints a one-line message for a table event
func (c *Console) Notice(notice blackjack.Notice) {
	switch notice.Kind {
	case blackjack.NoticeBothBlackjack:
		c.println(pterm.LightYellow("You and the dealer hit blackjack!"))
	case blackjack.NoticePlayerBlackjack:
		c.println(pterm.LightGreen("You hit blackjack!"))
	case blackjack.NoticeDealerBlackjack:
		c.println(pterm.LightRed("The dealer hit blackjack!"))
	case blackjack.NoticeHit:
		c.println("You decided to hit!")
	case blackjack.NoticeStand:
		c.println("You decided to stand!")
	case blackjack.NoticeDoubleDown:
		c.println(fmt.Sprintf("You decided to double down! Your bet for this hand is now %d!", notice.Amount))
	case blackjack.NoticeSplit:
		c.println("You decided to split!")
	case blackjack.NoticeBust:
		c.println(pterm.LightRed("Sorry you have busted!"))
	case blackjack.NoticeDealerTurn:
		c.println("Dealer hand starts!")
	case blackjack.NoticeDealerHits:
		c.println("Dealer hits!")
	case blackjack.NoticeDealerStands:
		c.println("Dealer stands!")
	case blackjack.NoticeDealerBusts:
		c.println(pterm.LightGreen("Dealer has busted!"))
	}
}

// ActionRejected explains why an action was refused and shows the legal ones
func (c *Console) ActionRejected(err error, eligible []blackjack.PlayerAction) {
	c.ShowError(err)
	c.printActions(eligible)
}

// RoundSettled prints the final comparison and the payout of every hand
func (c *Console) RoundSettled(outcome *blackjack.Outcome) {
	compared := false
	for _, hand := range outcome.Hands {
		if hand.Compared {
			compared = true
			break
		}
	}

	if compared {
		c.println(fmt.Sprintf("Dealer has %d", outcome.DealerScore))
		for _, hand := range outcome.Hands {
			if !hand.Compared {
				continue
			}
			if len(outcome.Hands) > 1 {
				c.println(fmt.Sprintf("Player hand %d has %d", hand.Index+1, hand.Score))
			} else {
				c.println(fmt.Sprintf("Player has %d", hand.Score))
			}
		}
	}

	for _, hand := range outcome.Hands {
		c.println(payoutLine(false, hand.Payout))
	}
	if len(outcome.Hands) > 1 {
		c.println(payoutLine(true, outcome.TotalPayout))
	}
}

func payoutLine(total bool, payout int64) string {
	prefix := ""
	if total {
		prefix = "In total "
	}
	switch {
	case payout > 0:
		return pterm.LightGreen(capitalize(fmt.Sprintf("%syou won %d!", prefix, payout)))
	case payout < 0:
		return pterm.LightRed(capitalize(fmt.Sprintf("%syou lost %d!", prefix, -payout)))
	case total:
		return "In total it was a push!"
	default:
		return "Push!"
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func (c *Console) printActions(actions []blackjack.PlayerAction) {
	labels := make([]string, 0, len(actions))
	for _, action := range actions {
		labels = append(labels, action.Label())
	}
	c.println(strings.Join(labels, " "))
}

// renderCards formats ranks as "[a b c]", masking the first card when asked
func renderCards(cards []entities.Rank, hideFirst bool) string {
	parts := make([]string, 0, len(cards))
	for i, card := range cards {
		if i == 0 && hideFirst {
			parts = append(parts, "*")
			continue
		}
		parts = append(parts, card.String())
	}
	return "[" + strings.Join(parts, " ") + "]"
}
