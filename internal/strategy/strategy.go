// Package strategy defines the decision interface euchre players must
// implement, plus a registry that maps a strategy identifier to a factory.
package strategy

import (
	"fmt"
	"math/rand"
	"sort"

	"github.com/charmbracelet/log"

	"github.com/Thump/leuchre/internal/deck"
)

// View is the game state a strategy sees when making a decision. It only
// exposes information that seat is entitled to know.
type View struct {
	Seat   int         // our seat, 0-3
	Team   int         // our team, 1 or 2
	Dealer int         // the dealer's seat
	Hand   []deck.Card // our current hand
	Hole   deck.Card   // the turned-up card
	Trump  deck.Suit   // valid once trump has been made

	// AloneOnOrder mirrors the euchred server option where ordering the
	// hole card forces the orderer to go alone.
	AloneOnOrder bool
}

// Bid is a response to an order offer.
type Bid int

const (
	OrderPass Bid = iota
	Order
	OrderAlone
)

// Call is a response to a call offer. Suit is only meaningful when Op is
// CallSuit or CallAlone, and must not be the turned-down suit.
type Call struct {
	Op   CallOp
	Suit deck.Suit
}

// CallOp enumerates the call offer responses.
type CallOp int

const (
	CallPass CallOp = iota
	CallSuit
	CallAlone
)

// Strategy is the set of decisions every player implementation must
// provide. A match engine calls exactly one method per offer.
type Strategy interface {
	// DecideOrderPass responds to the first bidding round, where the hole
	// card's suit is on offer.
	DecideOrderPass(v View) Bid

	// DecideCallPass responds to the second bidding round, where any suit
	// but the turned-down one may be named.
	DecideCallPass(v View) Call

	// DecideDrop picks the card to discard after the dealer picks up the
	// hole card. The hole card is already in v.Hand.
	DecideDrop(v View) deck.Card

	// DecideDefend reports whether to defend alone against a lone maker.
	DecideDefend(v View) bool

	// DecidePlayLead picks a card from v.Hand to lead a trick.
	DecidePlayLead(v View) deck.Card

	// DecidePlayFollow picks a card from playable to follow a trick.
	// playable is the subset of v.Hand permitted by the follow rules.
	DecidePlayFollow(v View, playable []deck.Card) deck.Card
}

// GameObserver is an optional capability: strategies that implement it are
// told the final score when a game they played in ends.
type GameObserver interface {
	GameOver(team1Score, team2Score int)
}

// Factory constructs a fresh strategy instance for one game. Each game gets
// its own instances so strategies may keep per-game state.
type Factory func(rng *rand.Rand, logger *log.Logger) Strategy

var registry = map[string]Factory{}

// Register makes a strategy available under the given identifier. It
// panics on duplicates, which are programming errors.
func Register(name string, factory Factory) {
	if _, dup := registry[name]; dup {
		panic(fmt.Sprintf("strategy %q registered twice", name))
	}
	registry[name] = factory
}

// Lookup resolves a strategy identifier to its factory. Unknown identifiers
// are an error so a bad configuration fails before any game is scheduled.
func Lookup(name string) (Factory, error) {
	factory, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("unknown strategy %q (known: %v)", name, Names())
	}
	return factory, nil
}

// Names returns the registered strategy identifiers, sorted.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// VerifyCapabilities probes a strategy's optional capabilities once at
// startup. The required decision set is enforced by the Strategy interface
// at compile time; missing optional capabilities are reported but never
// block scheduling.
func VerifyCapabilities(name string, factory Factory, logger *log.Logger) {
	s := factory(rand.New(rand.NewSource(0)), logger)
	if _, ok := s.(GameObserver); !ok {
		logger.Warn("strategy does not observe game results", "strategy", name)
	}
}
