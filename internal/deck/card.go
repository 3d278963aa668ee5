package deck

import "fmt"

// Suit represents a card suit, ordered alphabetically to match the wire
// ordering used by euchred.
type Suit int

const (
	Clubs Suit = iota
	Diamonds
	Hearts
	Spades
)

// String returns the single-letter suit name ("c", "d", "h", "s").
func (s Suit) String() string {
	switch s {
	case Clubs:
		return "c"
	case Diamonds:
		return "d"
	case Hearts:
		return "h"
	case Spades:
		return "s"
	default:
		return "?"
	}
}

// Color returns the other suit of the same color: the suit of the left
// bower when this suit is trump.
func (s Suit) Color() Suit {
	switch s {
	case Clubs:
		return Spades
	case Spades:
		return Clubs
	case Diamonds:
		return Hearts
	default:
		return Diamonds
	}
}

// Suits returns all four suits in order.
func Suits() []Suit {
	return []Suit{Clubs, Diamonds, Hearts, Spades}
}

// Rank represents a card rank. Euchre only uses Nine through Ace.
type Rank int

const (
	Nine Rank = iota + 9
	Ten
	Jack
	Queen
	King
	Ace
)

// String returns the single-character rank name.
func (r Rank) String() string {
	switch r {
	case Nine:
		return "9"
	case Ten:
		return "T"
	case Jack:
		return "J"
	case Queen:
		return "Q"
	case King:
		return "K"
	case Ace:
		return "A"
	default:
		return "?"
	}
}

// Card represents a single euchre card.
type Card struct {
	Suit Suit
	Rank Rank
}

// String returns the card as rank then suit, e.g. "Jd".
func (c Card) String() string {
	return fmt.Sprintf("%s%s", c.Rank, c.Suit)
}

// IsLeftBower reports whether the card is the jack of the same-color suit
// as trump.
func (c Card) IsLeftBower(trump Suit) bool {
	return c.Rank == Jack && c.Suit == trump.Color()
}

// IsRightBower reports whether the card is the jack of trump.
func (c Card) IsRightBower(trump Suit) bool {
	return c.Rank == Jack && c.Suit == trump
}

// EffectiveSuit returns the suit the card plays as under the given trump:
// the left bower plays as trump, everything else plays as its printed suit.
func (c Card) EffectiveSuit(trump Suit) Suit {
	if c.IsLeftBower(trump) {
		return trump
	}
	return c.Suit
}

// TrickValue returns a comparable strength for the card in a trick with the
// given trump and lead suit. Cards that can neither follow nor trump rank
// zero and can never win.
func (c Card) TrickValue(trump, lead Suit) int {
	if c.IsRightBower(trump) {
		return 100
	}
	if c.IsLeftBower(trump) {
		return 99
	}
	if c.Suit == trump {
		return 50 + int(c.Rank)
	}
	if c.Suit == lead {
		return int(c.Rank)
	}
	return 0
}
