package euchre

import (
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Thump/leuchre/internal/deck"
	"github.com/Thump/leuchre/internal/strategy"
)

// captureRecorder collects everything the engine reports.
type captureRecorder struct {
	hands   []HandResult
	follows int
}

func (c *captureRecorder) AddHand(h HandResult)     { c.hands = append(c.hands, h) }
func (c *captureRecorder) AddFollow(hand, play int) { c.follows++ }

// scripted is a deterministic strategy: it bids per its fields and always
// plays the first legal card.
type scripted struct {
	order strategy.Bid
	call  strategy.Call
}

func (s scripted) DecideOrderPass(v strategy.View) strategy.Bid  { return s.order }
func (s scripted) DecideCallPass(v strategy.View) strategy.Call  { return s.call }
func (s scripted) DecideDrop(v strategy.View) deck.Card          { return v.Hole }
func (s scripted) DecideDefend(v strategy.View) bool             { return false }
func (s scripted) DecidePlayLead(v strategy.View) deck.Card      { return v.Hand[0] }
func (s scripted) DecidePlayFollow(v strategy.View, playable []deck.Card) deck.Card {
	return playable[0]
}

func passer() strategy.Strategy {
	return scripted{order: strategy.OrderPass, call: strategy.Call{Op: strategy.CallPass}}
}

func orderer() strategy.Strategy {
	return scripted{order: strategy.Order, call: strategy.Call{Op: strategy.CallPass}}
}

func testGame(players [4]strategy.Strategy, rec Recorder, opts Options) *Game {
	return New(players, rec, nil, log.New(io.Discard), opts)
}

func TestRelativeScore(t *testing.T) {
	tests := []struct {
		name   string
		tricks int
		bid    bid
		want   int
	}{
		{"march alone", 5, bid{alone: true}, 4},
		{"march", 5, bid{}, 2},
		{"simple make", 3, bid{}, 1},
		{"four tricks", 4, bid{}, 1},
		{"euchre", 2, bid{}, -2},
		{"euchre alone", 1, bid{alone: true}, -2},
		{"euchre by lone defender", 2, bid{alone: true, defendAlone: true}, -4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, relativeScore(tt.tricks, tt.bid))
		})
	}
}

func TestFollowCards(t *testing.T) {
	hand := []deck.Card{
		{Suit: deck.Hearts, Rank: deck.Ace},
		{Suit: deck.Clubs, Rank: deck.Jack}, // left bower when spades are trump
		{Suit: deck.Diamonds, Rank: deck.Ten},
	}

	// The left bower counts as trump, not as a club.
	playable := followCards(hand, deck.Spades, deck.Spades)
	require.Len(t, playable, 1)
	assert.Equal(t, deck.Card{Suit: deck.Clubs, Rank: deck.Jack}, playable[0])

	// A clubs lead with spades trump finds no clubs: anything goes.
	playable = followCards(hand, deck.Clubs, deck.Spades)
	assert.Len(t, playable, 3)

	playable = followCards(hand, deck.Hearts, deck.Spades)
	require.Len(t, playable, 1)
	assert.Equal(t, deck.Ace, playable[0].Rank)
}

func TestPlayTrickBowersOutrankAces(t *testing.T) {
	rec := &captureRecorder{}
	g := testGame([4]strategy.Strategy{orderer(), orderer(), orderer(), orderer()}, rec, Options{})
	g.hands = [4][]deck.Card{
		{{Suit: deck.Hearts, Rank: deck.Ace}},
		{{Suit: deck.Hearts, Rank: deck.King}},
		{{Suit: deck.Clubs, Rank: deck.Jack}},  // left bower
		{{Suit: deck.Spades, Rank: deck.Jack}}, // right bower
	}

	winner, err := g.playTrick(0, deck.Spades, nil)
	require.NoError(t, err)
	assert.Equal(t, 3, winner, "the right bower wins the trick")
	assert.Equal(t, 3, rec.follows, "every follower reports a follow decision")
}

func TestPlayTrickNoTrumpHighestLeadWins(t *testing.T) {
	g := testGame([4]strategy.Strategy{orderer(), orderer(), orderer(), orderer()},
		&captureRecorder{}, Options{})
	g.hands = [4][]deck.Card{
		{{Suit: deck.Hearts, Rank: deck.Nine}},
		{{Suit: deck.Clubs, Rank: deck.Ace}}, // off suit, worthless
		{{Suit: deck.Hearts, Rank: deck.Ten}},
		{{Suit: deck.Diamonds, Rank: deck.King}},
	}

	winner, err := g.playTrick(0, deck.Spades, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, winner)
}

func TestPlayTrickSittingSeatSkipped(t *testing.T) {
	rec := &captureRecorder{}
	g := testGame([4]strategy.Strategy{orderer(), orderer(), orderer(), orderer()}, rec, Options{})
	g.hands = [4][]deck.Card{
		{{Suit: deck.Hearts, Rank: deck.Nine}},
		{{Suit: deck.Hearts, Rank: deck.Ten}},
		{{Suit: deck.Hearts, Rank: deck.Ace}},
		{{Suit: deck.Hearts, Rank: deck.King}},
	}

	winner, err := g.playTrick(0, deck.Spades, map[int]bool{2: true})
	require.NoError(t, err)
	assert.Equal(t, 3, winner, "seat 2's ace never hits the table")
	assert.Equal(t, 2, rec.follows)
	assert.Len(t, g.hands[2], 1, "a sitting seat keeps its cards")
}

func TestThrownInHandAdvancesDealer(t *testing.T) {
	rec := &captureRecorder{}
	g := testGame([4]strategy.Strategy{passer(), passer(), passer(), passer()}, rec, Options{})
	g.rng = testRNG(7)

	require.NoError(t, g.playHand(t.Context()))
	assert.Equal(t, 1, g.dealer, "the deal advances on a thrown-in hand")
	assert.Empty(t, rec.hands, "nothing is recorded for a thrown-in hand")
	assert.Zero(t, g.played)
	assert.Equal(t, [2]int{0, 0}, g.score)
}

func TestPickUpAndDropBadDiscardDegrades(t *testing.T) {
	g := testGame([4]strategy.Strategy{
		orderer(), orderer(), orderer(),
		scripted{order: strategy.Order}, // drops v.Hole, which is legal
	}, &captureRecorder{}, Options{})
	g.dealer = 0
	g.players[0] = badDropper{}
	g.hands[0] = []deck.Card{
		{Suit: deck.Spades, Rank: deck.Nine},
		{Suit: deck.Spades, Rank: deck.Ten},
		{Suit: deck.Spades, Rank: deck.Jack},
		{Suit: deck.Spades, Rank: deck.Queen},
		{Suit: deck.Spades, Rank: deck.King},
	}
	hole := deck.Card{Suit: deck.Spades, Rank: deck.Ace}

	g.pickUpAndDrop(hole)
	assert.Len(t, g.hands[0], 5)
	assert.NotContains(t, g.hands[0], hole, "an illegal discard drops the picked up card")
}

// badDropper names a discard it doesn't hold.
type badDropper struct{ scripted }

func (badDropper) DecideDrop(v strategy.View) deck.Card {
	return deck.Card{Suit: deck.Hearts, Rank: deck.Ace}
}

func TestRunBiddingRejectsTurnedDownSuit(t *testing.T) {
	// Everyone passes round one; seat 1 calls the hole suit, which is
	// treated as a pass, then seat 2 calls hearts legally.
	players := [4]strategy.Strategy{
		passer(),
		scripted{order: strategy.OrderPass, call: strategy.Call{Op: strategy.CallSuit, Suit: deck.Spades}},
		scripted{order: strategy.OrderPass, call: strategy.Call{Op: strategy.CallSuit, Suit: deck.Hearts}},
		passer(),
	}
	g := testGame(players, &captureRecorder{}, Options{})
	g.dealer = 0
	for i := range g.hands {
		g.hands[i] = []deck.Card{{Suit: deck.Hearts, Rank: deck.Nine}}
	}

	b, made := g.runBidding(deck.Card{Suit: deck.Spades, Rank: deck.Jack})
	require.True(t, made)
	assert.Equal(t, 2, b.maker)
	assert.Equal(t, deck.Hearts, b.trump)
	assert.False(t, b.ordered)
}

func TestAloneOnOrderForcesAlone(t *testing.T) {
	players := [4]strategy.Strategy{orderer(), orderer(), orderer(), orderer()}
	g := testGame(players, &captureRecorder{}, Options{AloneOnOrder: true})
	for i := range g.hands {
		g.hands[i] = []deck.Card{{Suit: deck.Spades, Rank: deck.Nine}}
	}

	b, made := g.runBidding(deck.Card{Suit: deck.Spades, Rank: deck.Ten})
	require.True(t, made)
	assert.True(t, b.alone)
	assert.True(t, b.ordered)
	assert.Equal(t, 1, b.maker, "the seat left of the dealer bids first")
}
