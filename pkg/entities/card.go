package entities

import "strconv"

// Suit represents a card suit

type Suit string

const (
	Hearts   Suit = "HEARTS"
	Diamonds Suit = "DIAMONDS"
	Clubs    Suit = "CLUBS"
	Spades   Suit = "SPADES"
)

// Suits lists the four suits of a standard deck
var Suits = []Suit{Hearts, Diamonds, Clubs, Spades}

// Face represents the printed face of a card

type Face string

const (
	Ace   Face = "A"
	Two   Face = "2"
	Three Face = "3"
	Four  Face = "4"
	Five  Face = "5"
	Six   Face = "6"
	Seven Face = "7"
	Eight Face = "8"
	Nine  Face = "9"
	Ten   Face = "10"
	Jack  Face = "J"
	Queen Face = "Q"
	King  Face = "K"
)

// Faces lists the thirteen faces of a suit
var Faces = []Face{Ace, Two, Three, Four, Five, Six, Seven, Eight, Nine, Ten, Jack, Queen, King}

// Rank is the blackjack value of a card. Aces are stored as 1 and every
// picture card as 10; soft totals are resolved when a hand is evaluated.
type Rank int

const (
	RankAce Rank = 1
	RankTen Rank = 10
)

// Valid reports whether r is a storable rank
func (r Rank) Valid() bool {
	return r >= RankAce && r <= RankTen
}

// IsAce reports whether r is an ace
func (r Rank) IsAce() bool {
	return r == RankAce
}

// String returns the numeric rendering used at the table
func (r Rank) String() string {
	return strconv.Itoa(int(r))
}

// Rank normalizes a face to its blackjack rank
func (f Face) Rank() Rank {
	switch f {
	case Ace:
		return RankAce
	case Jack, Queen, King:
		return RankTen
	default:
		val, _ := strconv.Atoi(string(f))
		return Rank(val)
	}
}

// Card represents a playing card

type Card struct {
	Suit Suit
	Face Face
}

// NewCard creates a new card

func NewCard(suit Suit, face Face) *Card {
	return &Card{
		Suit: suit,
		Face: face,
	}
}

// String returns the string representation of the card

func (c *Card) String() string {
	return string(c.Face) + " of " + string(c.Suit)
}

// Rank returns the blackjack rank of the card
func (c *Card) Rank() Rank {
	return c.Face.Rank()
}
