package strategy

import (
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/Thump/leuchre/internal/deck"
)

func init() {
	Register("random0", NewRandom0)
}

// orderProbability is the per-player order chance that yields an overall
// 50% chance someone orders in the first round. It is the real solution to
// (1-x)(1-x)(1-2x) = 0.5, so trump is ordered half the time and called the
// other half, giving even coverage of the calling-hand table.
const orderProbability = 0.15219

// Random0 plays randomly but with balanced bidding: it orders with a tuned
// probability and calls with 25% chance unless it's the dealer, who always
// calls so no hand is thrown in.
type Random0 struct {
	rng    *rand.Rand
	logger *log.Logger
}

// NewRandom0 creates a Random0 strategy.
func NewRandom0(rng *rand.Rand, logger *log.Logger) Strategy {
	return &Random0{rng: rng, logger: logger.WithPrefix("random0")}
}

// DecideOrderPass orders with probability orderProbability. When the
// alone-on-order option is set, the dealer's partner never orders (it would
// force the partner alone) and the dealer orders at double probability to
// keep the two teams' order rates equal.
func (r *Random0) DecideOrderPass(v View) Bid {
	p := orderProbability
	if v.AloneOnOrder {
		dealerTeam := seatTeam(v.Dealer)
		switch {
		case v.Team == dealerTeam && v.Seat != v.Dealer:
			return OrderPass
		case v.Seat == v.Dealer:
			p = orderProbability * 2
		}
	}
	if r.rng.Float64() < p {
		r.logger.Debug("ordering hole card", "seat", v.Seat, "hole", v.Hole)
		return Order
	}
	return OrderPass
}

// DecideCallPass calls a random suit other than the turned-down one with
// 25% probability, except the dealer, who always calls.
func (r *Random0) DecideCallPass(v View) Call {
	if v.Seat != v.Dealer && r.rng.Intn(4) != 0 {
		return Call{Op: CallPass}
	}
	suit := randomSuitExcept(r.rng, v.Hole.Suit)
	r.logger.Debug("calling", "seat", v.Seat, "suit", suit)
	return Call{Op: CallSuit, Suit: suit}
}

// DecideDrop discards the picked-up hole card, leaving the original hand
// intact.
func (r *Random0) DecideDrop(v View) deck.Card {
	return v.Hole
}

// DecideDefend never defends alone.
func (r *Random0) DecideDefend(v View) bool {
	return false
}

// DecidePlayLead leads a random card.
func (r *Random0) DecidePlayLead(v View) deck.Card {
	return v.Hand[r.rng.Intn(len(v.Hand))]
}

// DecidePlayFollow follows with a random playable card.
func (r *Random0) DecidePlayFollow(v View, playable []deck.Card) deck.Card {
	return playable[r.rng.Intn(len(playable))]
}

// seatTeam returns the team (1 or 2) that owns a seat. Even seats are team
// 1, odd seats team 2.
func seatTeam(seat int) int {
	return seat%2 + 1
}
