package entities

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/suite"
)

type ShoeTestSuite struct {
	suite.Suite
}

func TestShoeSuite(t *testing.T) {
	suite.Run(t, new(ShoeTestSuite))
}

func (s *ShoeTestSuite) TestFaceRank() {
	testCases := []struct {
		name     string
		face     Face
		expected Rank
	}{
		{name: "ace", face: Ace, expected: 1},
		{name: "two", face: Two, expected: 2},
		{name: "nine", face: Nine, expected: 9},
		{name: "ten", face: Ten, expected: 10},
		{name: "jack", face: Jack, expected: 10},
		{name: "queen", face: Queen, expected: 10},
		{name: "king", face: King, expected: 10},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.Equal(tc.expected, tc.face.Rank())
			s.True(tc.face.Rank().Valid())
		})
	}
}

func (s *ShoeTestSuite) TestDeckRanks() {
	ranks := NewDeckRanks()
	s.Len(ranks, 52)

	counts := make(map[Rank]int)
	for _, r := range ranks {
		s.True(r.Valid(), "rank %d out of range", r)
		counts[r]++
	}
	for r := Rank(1); r <= 9; r++ {
		s.Equal(4, counts[r], "rank %d", r)
	}
	s.Equal(16, counts[RankTen])
}

func (s *ShoeTestSuite) TestDrawRefillsWhenEmpty() {
	shoe := NewShoe(rand.New(rand.NewSource(42)))
	s.Equal(0, shoe.Remaining())

	counts := make(map[Rank]int)
	for i := 0; i < 52; i++ {
		counts[shoe.Draw()]++
	}
	s.Equal(1, shoe.Reshuffles())
	s.Equal(0, shoe.Remaining())
	s.Equal(16, counts[RankTen])
	s.Equal(4, counts[RankAce])

	// The 53rd draw must still succeed
	r := shoe.Draw()
	s.True(r.Valid())
	s.Equal(2, shoe.Reshuffles())
	s.Equal(51, shoe.Remaining())
}

func (s *ShoeTestSuite) TestStackedShoeDealsInOrder() {
	shoe := NewStackedShoe(1, 10, 9, 8)
	s.Equal(4, shoe.Remaining())
	s.Equal(Rank(1), shoe.Draw())
	s.Equal(Rank(10), shoe.Draw())
	s.Equal(Rank(9), shoe.Draw())
	s.Equal(Rank(8), shoe.Draw())
	s.Equal(0, shoe.Reshuffles())

	s.True(shoe.Draw().Valid())
	s.Equal(1, shoe.Reshuffles())
}

func (s *ShoeTestSuite) TestSeededShoeIsDeterministic() {
	a := NewShoe(rand.New(rand.NewSource(7)))
	b := NewShoe(rand.New(rand.NewSource(7)))
	for i := 0; i < 60; i++ {
		s.Equal(a.Draw(), b.Draw())
	}
}

func (s *ShoeTestSuite) TestStatisticsAdd() {
	stats := &PlayerStatistics{}
	stats.Add(&RoundRecord{
		TotalPayout: 5,
		Hands: []HandRecord{
			{Wager: 10, Payout: 10, Result: ResultWin, Actions: []string{"split"}},
			{Wager: 10, Payout: -10, Result: ResultBust, Busted: true, Actions: []string{"hit"}},
			{Wager: 10, Payout: 5, Result: ResultBlackjack, Blackjack: true},
			{Wager: 20, Payout: 0, Result: ResultPush, Actions: []string{"double_down"}},
		},
	})

	s.Equal(1, stats.RoundsPlayed)
	s.Equal(4, stats.HandsPlayed)
	s.Equal(2, stats.Wins)
	s.Equal(1, stats.Losses)
	s.Equal(1, stats.Pushes)
	s.Equal(1, stats.Blackjacks)
	s.Equal(1, stats.Busts)
	s.Equal(1, stats.Splits)
	s.Equal(1, stats.DoubleDowns)
	s.Equal(int64(50), stats.TotalWagered)
	s.Equal(int64(5), stats.NetPayout)
	s.InDelta(50.0, stats.WinRate(), 0.001)
}
