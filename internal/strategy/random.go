package strategy

import (
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/Thump/leuchre/internal/deck"
)

func init() {
	Register("random", NewRandom)
}

// Random is the simplest complete player: it always bids, and plays a
// random legal card everywhere else. Useful as a baseline opponent and for
// exercising the full bid path in every hand.
type Random struct {
	rng    *rand.Rand
	logger *log.Logger
}

// NewRandom creates a Random strategy.
func NewRandom(rng *rand.Rand, logger *log.Logger) Strategy {
	return &Random{rng: rng, logger: logger.WithPrefix("random")}
}

// DecideOrderPass always orders the hole card up.
func (r *Random) DecideOrderPass(v View) Bid {
	r.logger.Debug("ordering hole card", "seat", v.Seat, "hole", v.Hole)
	return Order
}

// DecideCallPass calls a random suit other than the turned-down one.
func (r *Random) DecideCallPass(v View) Call {
	suit := randomSuitExcept(r.rng, v.Hole.Suit)
	r.logger.Debug("calling", "seat", v.Seat, "suit", suit)
	return Call{Op: CallSuit, Suit: suit}
}

// DecideDrop discards a random card from the hand.
func (r *Random) DecideDrop(v View) deck.Card {
	return v.Hand[r.rng.Intn(len(v.Hand))]
}

// DecideDefend never defends alone.
func (r *Random) DecideDefend(v View) bool {
	return false
}

// DecidePlayLead leads a random card.
func (r *Random) DecidePlayLead(v View) deck.Card {
	return v.Hand[r.rng.Intn(len(v.Hand))]
}

// DecidePlayFollow follows with a random playable card.
func (r *Random) DecidePlayFollow(v View, playable []deck.Card) deck.Card {
	return playable[r.rng.Intn(len(playable))]
}

// randomSuitExcept picks a random suit that isn't the excluded one.
func randomSuitExcept(rng *rand.Rand, except deck.Suit) deck.Suit {
	suits := make([]deck.Suit, 0, 3)
	for _, s := range deck.Suits() {
		if s != except {
			suits = append(suits, s)
		}
	}
	return suits[rng.Intn(len(suits))]
}
