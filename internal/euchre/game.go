// Package euchre implements the rules engine for a single game of euchre
// between four seated strategies.
//
// Seats 0 and 2 are team 1, seats 1 and 3 are team 2. A game is a sequence
// of hands: deal five cards to each seat plus a turned-up hole card, run
// two bidding rounds, play five tricks with bower ranking and follow-suit
// enforcement, and score the hand relative to the makers. The first team
// to reach the winning score takes the game.
//
// The engine is deterministic for a given RNG seed and strategy pair,
// which keeps any game replayable from its seed.
package euchre

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/Thump/leuchre/internal/deck"
	"github.com/Thump/leuchre/internal/strategy"
)

// WinningScore is the number of points a team needs to win a game.
const WinningScore = 10

// HandResult describes one completed (made or euchred) hand, from the
// maker's perspective.
type HandResult struct {
	Maker       int         // seat of the maker
	Team        int         // maker's team, 1 or 2
	Dealer      int         // dealer's seat for this hand
	Ordered     bool        // trump made in round one (hole card ordered up)
	Alone       bool        // maker played alone
	DefendAlone bool        // a defender defended alone
	Score       int         // points relative to the makers: -4, -2, 1, 2, or 4
	Hand        []deck.Card // the maker's hand at call time
	Trump       deck.Suit
	Hole        deck.Card // the turned-up card
}

// Recorder receives statistics as hands are played. Implementations must be
// safe for concurrent use, since many games record into one shared store.
type Recorder interface {
	AddHand(HandResult)
	AddFollow(handSize, playable int)
}

// Options control the optional euchred server rules.
type Options struct {
	// AloneOnOrder forces a player who orders the hole card to go alone.
	AloneOnOrder bool
	// DefendAlone offers defenders the chance to defend alone against a
	// lone maker.
	DefendAlone bool
}

// Result is the outcome of a completed game.
type Result struct {
	Winner int // winning team, 1 or 2
	Score  [2]int
	Hands  int // hands played, not counting thrown-in deals
}

// Game drives one complete game of euchre.
type Game struct {
	players [4]strategy.Strategy
	rec     Recorder
	rng     *rand.Rand
	logger  *log.Logger
	opts    Options

	hands  [4][]deck.Card
	score  [2]int // index 0 is team 1
	dealer int
	played int
}

// New creates a game between the four seated strategies. The recorder may
// be shared with other concurrently running games.
func New(players [4]strategy.Strategy, rec Recorder, rng *rand.Rand, logger *log.Logger, opts Options) *Game {
	return &Game{
		players: players,
		rec:     rec,
		rng:     rng,
		logger:  logger,
		opts:    opts,
	}
}

// Play runs hands until one team reaches the winning score or the context
// expires. The context is checked between tricks, so a stalled or
// interrupted game stops at the next trick boundary.
func (g *Game) Play(ctx context.Context) (Result, error) {
	for g.score[0] < WinningScore && g.score[1] < WinningScore {
		if err := ctx.Err(); err != nil {
			return Result{}, fmt.Errorf("game abandoned after %d hands: %w", g.played, err)
		}
		if err := g.playHand(ctx); err != nil {
			return Result{}, err
		}
	}

	result := Result{Winner: 1, Score: g.score, Hands: g.played}
	if g.score[1] >= WinningScore {
		result.Winner = 2
	}
	g.logger.Debug("game over",
		"winner", result.Winner, "team1", g.score[0], "team2", g.score[1], "hands", g.played)

	for _, p := range g.players {
		if observer, ok := p.(strategy.GameObserver); ok {
			observer.GameOver(g.score[0], g.score[1])
		}
	}
	return result, nil
}

// teamOf returns the team (1 or 2) owning a seat.
func teamOf(seat int) int {
	return seat%2 + 1
}

// view builds the decision view for a seat. The hand is copied so a
// strategy can't mutate engine state.
func (g *Game) view(seat int, hole deck.Card, trump deck.Suit) strategy.View {
	hand := make([]deck.Card, len(g.hands[seat]))
	copy(hand, g.hands[seat])
	return strategy.View{
		Seat:         seat,
		Team:         teamOf(seat),
		Dealer:       g.dealer,
		Hand:         hand,
		Hole:         hole,
		Trump:        trump,
		AloneOnOrder: g.opts.AloneOnOrder,
	}
}
