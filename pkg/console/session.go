package console

import (
	"fmt"
	"strconv"

	"github.com/fadedpez/blackjack/pkg/services/statistics"
	"github.com/pterm/pterm"
)

// NewPlayer greets a player whose profile was just created
func (c *Console) NewPlayer(balance int64) {
	c.println(fmt.Sprintf("We see you are a new player! We are starting your account with %d chips.", balance))
}

// OnTheHouse tells a broke player they were given chips
func (c *Console) OnTheHouse(amount int64) {
	c.println(pterm.LightGreen(fmt.Sprintf("We see you are out of chips. Here, have %d chips on the house.", amount)))
}

// Goodbye is shown when the player leaves the table
func (c *Console) Goodbye() {
	c.println("Thanks for playing.")
}

// Broke is shown when the balance reaches zero
func (c *Console) Broke() {
	c.println(pterm.LightRed("You are broke. You have been kicked out of the casino."))
}

// ShowStatistics prints the player's record and their latest rounds
func (c *Console) ShowStatistics(summary *statistics.Summary) {
	if summary == nil || summary.PlayerStatistics == nil || summary.RoundsPlayed == 0 {
		c.println("No rounds played yet.")
		return
	}

	totals := pterm.TableData{
		{"Rounds", "Hands", "Won", "Lost", "Pushed", "Blackjacks", "Busts", "Win rate", "Net", "Streak"},
		{
			strconv.Itoa(summary.RoundsPlayed),
			strconv.Itoa(summary.HandsPlayed),
			strconv.Itoa(summary.Wins),
			strconv.Itoa(summary.Losses),
			strconv.Itoa(summary.Pushes),
			strconv.Itoa(summary.Blackjacks),
			strconv.Itoa(summary.Busts),
			fmt.Sprintf("%.1f%%", summary.WinRate),
			signed(summary.NetPayout),
			strconv.Itoa(summary.Streak),
		},
	}
	c.renderTable(totals)

	if len(summary.Recent) == 0 {
		return
	}
	recent := pterm.TableData{{"Completed", "Hands", "Dealer", "Payout", "Balance"}}
	for _, round := range summary.Recent {
		recent = append(recent, []string{
			round.CompletedAt.Local().Format("2006-01-02 15:04"),
			strconv.Itoa(len(round.Hands)),
			strconv.Itoa(round.DealerScore),
			signed(round.TotalPayout),
			strconv.FormatInt(round.BalanceAfter, 10),
		})
	}
	c.renderTable(recent)
}

func (c *Console) renderTable(data pterm.TableData) {
	rendered, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		c.ShowError(err)
		return
	}
	c.println(rendered)
}

func signed(n int64) string {
	switch {
	case n > 0:
		return pterm.LightGreen("+" + strconv.FormatInt(n, 10))
	case n < 0:
		return pterm.LightRed(strconv.FormatInt(n, 10))
	default:
		return "0"
	}
}
