package console

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/fadedpez/blackjack/internal/types"
	"github.com/fadedpez/blackjack/pkg/entities"
	"github.com/fadedpez/blackjack/pkg/services/blackjack"
	"github.com/fadedpez/blackjack/pkg/services/statistics"
	"github.com/pterm/pterm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestConsole(input string) (*Console, *bytes.Buffer) {
	pterm.DisableColor()
	out := &bytes.Buffer{}
	return New(strings.NewReader(input), out), out
}

func TestParseWager(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    WagerInput
		wantErr string
	}{
		{name: "bet", input: "25\n", want: WagerInput{Command: CommandBet, Amount: 25}},
		{name: "whole balance", input: " 100 ", want: WagerInput{Command: CommandBet, Amount: 100}},
		{name: "exit", input: "E", want: WagerInput{Command: CommandExit}},
		{name: "stats", input: "t", want: WagerInput{Command: CommandStats}},
		{name: "zero", input: "0", wantErr: "You must bet at least 1 chip to play."},
		{name: "negative", input: "-5", wantErr: "You must bet at least 1 chip to play."},
		{name: "over balance", input: "101", wantErr: "You can only bet up to your balance 100. Please enter your bet again."},
		{name: "garbage", input: "lots", wantErr: "Invalid input. Please enter your bet or (e)xit the table."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseWager(tt.input, 100)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.True(t, types.IsGameError(err, types.ErrInvalidWager))
				assert.Equal(t, tt.wantErr, message(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestReadWagerRepromptsUntilValid(t *testing.T) {
	c, out := newTestConsole("abc\n0\n500\n40\n")

	got, err := c.ReadWager(context.Background(), 100)
	require.NoError(t, err)
	assert.Equal(t, WagerInput{Command: CommandBet, Amount: 40}, got)

	text := out.String()
	assert.Contains(t, text, "You now have 100 chips.")
	assert.Contains(t, text, "Invalid input. Please enter your bet or (e)xit the table.")
	assert.Contains(t, text, "You must bet at least 1 chip to play.")
	assert.Contains(t, text, "You can only bet up to your balance 100.")
}

func TestReadWagerLastLineWithoutNewline(t *testing.T) {
	c, _ := newTestConsole("e")

	got, err := c.ReadWager(context.Background(), 100)
	require.NoError(t, err)
	assert.Equal(t, CommandExit, got.Command)
}

func TestReadWagerEOF(t *testing.T) {
	c, _ := newTestConsole("")

	_, err := c.ReadWager(context.Background(), 100)
	assert.ErrorIs(t, err, io.EOF)
}

func TestReadWagerCancelled(t *testing.T) {
	c, _ := newTestConsole("10\n")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.ReadWager(ctx, 100)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNextAction(t *testing.T) {
	c, out := newTestConsole("x\n D \n")
	table := blackjack.Table{
		Hands: []blackjack.HandView{{
			Cards:    []entities.Rank{5, 6},
			Eligible: []blackjack.PlayerAction{blackjack.ActionHit, blackjack.ActionStand, blackjack.ActionDoubleDown},
		}},
	}

	action, err := c.NextAction(context.Background(), table)
	require.NoError(t, err)
	assert.Equal(t, blackjack.ActionDoubleDown, action)

	text := out.String()
	assert.Contains(t, text, "(h)it (s)tand (d)ouble down\n")
	assert.Contains(t, text, "Please enter a valid option.")
	assert.Equal(t, 2, strings.Count(text, "(h)it (s)tand (d)ouble down"))
}

func TestNextActionEOF(t *testing.T) {
	c, _ := newTestConsole("")

	_, err := c.NextAction(context.Background(), blackjack.Table{Active: -1})
	assert.ErrorIs(t, err, io.EOF)
}

func TestTableChangedSingleHand(t *testing.T) {
	c, out := newTestConsole("")

	c.TableChanged(blackjack.Table{
		DealerCards: []entities.Rank{10, 9},
		HideHole:    true,
		Hands:       []blackjack.HandView{{Cards: []entities.Rank{8, 8}}},
		Active:      0,
	})

	assert.Equal(t, "Dealer: [* 9]\nPlayer: [8 8]\n", out.String())
}

func TestTableChangedMarksActiveHand(t *testing.T) {
	c, out := newTestConsole("")

	c.TableChanged(blackjack.Table{
		DealerCards: []entities.Rank{10, 9},
		Hands: []blackjack.HandView{
			{Cards: []entities.Rank{8, 10}, Complete: true},
			{Cards: []entities.Rank{8, 3}},
		},
		Active: 1,
	})

	assert.Equal(t, "Dealer: [10 9]\nPlayer hand 1: [8 10]\nPlayer hand 2: [8 3]*\n", out.String())
}

func TestNoticeMessages(t *testing.T) {
	tests := []struct {
		notice blackjack.Notice
		want   string
	}{
		{blackjack.Notice{Kind: blackjack.NoticeBothBlackjack}, "You and the dealer hit blackjack!"},
		{blackjack.Notice{Kind: blackjack.NoticePlayerBlackjack, Amount: 15}, "You hit blackjack!"},
		{blackjack.Notice{Kind: blackjack.NoticeDealerBlackjack}, "The dealer hit blackjack!"},
		{blackjack.Notice{Kind: blackjack.NoticeHit}, "You decided to hit!"},
		{blackjack.Notice{Kind: blackjack.NoticeStand}, "You decided to stand!"},
		{blackjack.Notice{Kind: blackjack.NoticeDoubleDown, Amount: 20}, "You decided to double down! Your bet for this hand is now 20!"},
		{blackjack.Notice{Kind: blackjack.NoticeSplit}, "You decided to split!"},
		{blackjack.Notice{Kind: blackjack.NoticeBust}, "Sorry you have busted!"},
		{blackjack.Notice{Kind: blackjack.NoticeDealerTurn}, "Dealer hand starts!"},
		{blackjack.Notice{Kind: blackjack.NoticeDealerHits}, "Dealer hits!"},
		{blackjack.Notice{Kind: blackjack.NoticeDealerStands}, "Dealer stands!"},
		{blackjack.Notice{Kind: blackjack.NoticeDealerBusts, Hand: -1}, "Dealer has busted!"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			c, out := newTestConsole("")
			c.Notice(tt.notice)
			assert.Equal(t, tt.want+"\n", out.String())
		})
	}
}

func TestActionRejected(t *testing.T) {
	c, out := newTestConsole("")
	err := types.NewGameError(types.ErrActionNotEligible, "You cannot split at this time. Please enter a valid option.")

	c.ActionRejected(err, []blackjack.PlayerAction{blackjack.ActionHit, blackjack.ActionStand})

	assert.Equal(t, "You cannot split at this time. Please enter a valid option.\n(h)it (s)tand\n", out.String())
}

func TestRoundSettledSingleHand(t *testing.T) {
	c, out := newTestConsole("")

	c.RoundSettled(&blackjack.Outcome{
		DealerScore: 18,
		Hands: []blackjack.HandOutcome{
			{Index: 0, Score: 20, Payout: 10, Compared: true},
		},
		TotalPayout: 10,
	})

	assert.Equal(t, "Dealer has 18\nPlayer has 20\nYou won 10!\n", out.String())
}

func TestRoundSettledNaturalSkipsComparison(t *testing.T) {
	c, out := newTestConsole("")

	c.RoundSettled(&blackjack.Outcome{
		DealerScore: 21,
		Hands:       []blackjack.HandOutcome{{Index: 0, Score: 21, Payout: 0}},
	})

	assert.Equal(t, "Push!\n", out.String())
}

func TestRoundSettledMultipleHands(t *testing.T) {
	c, out := newTestConsole("")

	c.RoundSettled(&blackjack.Outcome{
		DealerScore: 19,
		Hands: []blackjack.HandOutcome{
			{Index: 0, Score: 24, Payout: -10, Busted: true},
			{Index: 1, Score: 19, Payout: 0, Compared: true},
			{Index: 2, Score: 17, Payout: -20, Compared: true},
		},
		TotalPayout: -30,
	})

	want := "Dealer has 19\n" +
		"Player hand 2 has 19\n" +
		"Player hand 3 has 17\n" +
		"You lost 10!\n" +
		"Push!\n" +
		"You lost 20!\n" +
		"In total you lost 30!\n"
	assert.Equal(t, want, out.String())
}

func TestPayoutLineTotals(t *testing.T) {
	pterm.DisableColor()

	assert.Equal(t, "In total you won 5!", payoutLine(true, 5))
	assert.Equal(t, "In total it was a push!", payoutLine(true, 0))
	assert.Equal(t, "In total you lost 5!", payoutLine(true, -5))
}

func TestSessionMessages(t *testing.T) {
	c, out := newTestConsole("")

	c.NewPlayer(500)
	c.OnTheHouse(500)
	c.Broke()
	c.Goodbye()

	assert.Equal(t,
		"We see you are a new player! We are starting your account with 500 chips.\n"+
			"We see you are out of chips. Here, have 500 chips on the house.\n"+
			"You are broke. You have been kicked out of the casino.\n"+
			"Thanks for playing.\n",
		out.String())
}

func TestShowStatistics(t *testing.T) {
	c, out := newTestConsole("")

	c.ShowStatistics(&statistics.Summary{
		PlayerStatistics: &entities.PlayerStatistics{
			RoundsPlayed: 2,
			HandsPlayed:  3,
			Wins:         2,
			Losses:       1,
			NetPayout:    15,
		},
		WinRate: 66.66,
		Streak:  2,
		Recent: []*entities.RoundRecord{
			{ID: "r1", CompletedAt: time.Now(), Hands: make([]entities.HandRecord, 2), DealerScore: 22, TotalPayout: 20, BalanceAfter: 520},
		},
	})

	text := out.String()
	assert.Contains(t, text, "Rounds")
	assert.Contains(t, text, "66.7%")
	assert.Contains(t, text, "+15")
	assert.Contains(t, text, "520")
}

func TestShowStatisticsEmpty(t *testing.T) {
	c, out := newTestConsole("")

	c.ShowStatistics(&statistics.Summary{PlayerStatistics: &entities.PlayerStatistics{}})

	assert.Equal(t, "No rounds played yet.\n", out.String())
}

func TestMessageFallsBackToError(t *testing.T) {
	assert.Equal(t, "boom", message(errors.New("boom")))
}
