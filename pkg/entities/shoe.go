package entities

import (
	"math/rand"
	"time"
)

// Shoe is the shared draw pile for a table. It never runs dry: when the last
// rank has been drawn the next draw loads and shuffles a fresh deck.
type Shoe struct {
	ranks      []Rank
	rng        *rand.Rand
	reshuffles int
}

// NewShoe creates an empty shoe that shuffles with rng. A nil rng seeds a new
// source from the current time.
func NewShoe(rng *rand.Rand) *Shoe {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Shoe{rng: rng}
}

// NewStackedShoe creates a shoe that deals ranks in the order given and then
// falls back to normal reshuffling.
func NewStackedShoe(ranks ...Rank) *Shoe {
	s := NewShoe(rand.New(rand.NewSource(1)))
	s.ranks = make([]Rank, len(ranks))
	// Draws come off the end of the pile.
	for i, r := range ranks {
		s.ranks[len(ranks)-1-i] = r
	}
	return s
}

// NewDeckRanks returns the ranks of one 52 card deck in suit order
func NewDeckRanks() []Rank {
	ranks := make([]Rank, 0, len(Suits)*len(Faces))
	for _, suit := range Suits {
		for _, face := range Faces {
			ranks = append(ranks, NewCard(suit, face).Rank())
		}
	}
	return ranks
}

// Draw removes and returns the next rank, reshuffling first when empty
func (s *Shoe) Draw() Rank {
	if len(s.ranks) == 0 {
		s.refill()
	}
	last := len(s.ranks) - 1
	r := s.ranks[last]
	s.ranks = s.ranks[:last]
	return r
}

// Remaining returns the number of ranks left before the next reshuffle
func (s *Shoe) Remaining() int {
	return len(s.ranks)
}

// Reshuffles returns how many times the shoe has been refilled
func (s *Shoe) Reshuffles() int {
	return s.reshuffles
}

func (s *Shoe) refill() {
	s.ranks = append(s.ranks[:0], NewDeckRanks()...)
	s.rng.Shuffle(len(s.ranks), func(i, j int) {
		s.ranks[i], s.ranks[j] = s.ranks[j], s.ranks[i]
	})
	s.reshuffles++
}
