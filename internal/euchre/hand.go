package euchre

import (
	"context"
	"fmt"

	"github.com/Thump/leuchre/internal/deck"
	"github.com/Thump/leuchre/internal/strategy"
)

// bid is the resolved outcome of the two bidding rounds.
type bid struct {
	maker       int
	trump       deck.Suit
	ordered     bool
	alone       bool
	defendAlone bool
	defender    int
	makerHand   []deck.Card // maker's hand at call time
}

// playHand deals and plays a single hand, updating the game score and
// recording the outcome. A hand where every seat passes both rounds is
// thrown in: the deal advances and nothing is scored or recorded.
func (g *Game) playHand(ctx context.Context) error {
	d := deck.New(g.rng)
	d.Shuffle()
	for i := 0; i < 4; i++ {
		seat := (g.dealer + 1 + i) % 4
		g.hands[seat] = d.DealN(5)
	}
	hole, _ := d.Deal()

	b, made := g.runBidding(hole)
	if !made {
		g.logger.Debug("hand thrown in, all passed", "dealer", g.dealer, "hole", hole)
		g.dealer = (g.dealer + 1) % 4
		return nil
	}

	makers := teamOf(b.maker)
	makerTricks, err := g.playTricks(ctx, b)
	if err != nil {
		return err
	}

	score := relativeScore(makerTricks, b)
	if score > 0 {
		g.score[makers-1] += score
	} else {
		g.score[2-makers] += -score
	}
	g.played++

	g.logger.Debug("hand complete",
		"maker", b.maker, "trump", b.trump, "tricks", makerTricks, "score", score)

	g.rec.AddHand(HandResult{
		Maker:       b.maker,
		Team:        makers,
		Dealer:      g.dealer,
		Ordered:     b.ordered,
		Alone:       b.alone,
		DefendAlone: b.defendAlone,
		Score:       score,
		Hand:        b.makerHand,
		Trump:       b.trump,
		Hole:        hole,
	})

	g.dealer = (g.dealer + 1) % 4
	return nil
}

// relativeScore converts the makers' trick count into points relative to
// the makers: a march alone is 4, a march is 2, a simple make is 1, a
// euchre is -2, and a euchre against a lone defender is -4.
func relativeScore(makerTricks int, b bid) int {
	switch {
	case makerTricks == 5 && b.alone:
		return 4
	case makerTricks == 5:
		return 2
	case makerTricks >= 3:
		return 1
	case b.defendAlone:
		return -4
	default:
		return -2
	}
}

// runBidding runs the two bidding rounds in seat order starting left of the
// dealer. It reports false when every seat passes both rounds.
func (g *Game) runBidding(hole deck.Card) (bid, bool) {
	// Round one: the hole card's suit is on offer.
	for i := 1; i <= 4; i++ {
		seat := (g.dealer + i) % 4
		decision := g.players[seat].DecideOrderPass(g.view(seat, hole, hole.Suit))
		if decision == strategy.OrderPass {
			continue
		}

		b := bid{
			maker:     seat,
			trump:     hole.Suit,
			ordered:   true,
			alone:     decision == strategy.OrderAlone || g.opts.AloneOnOrder,
			makerHand: snapshot(g.hands[seat]),
		}
		g.pickUpAndDrop(hole)
		g.offerDefend(&b)
		return b, true
	}

	// Round two: any suit but the turned-down one may be called.
	for i := 1; i <= 4; i++ {
		seat := (g.dealer + i) % 4
		call := g.players[seat].DecideCallPass(g.view(seat, hole, hole.Suit))
		if call.Op == strategy.CallPass {
			continue
		}
		if call.Suit == hole.Suit {
			g.logger.Warn("strategy called the turned-down suit, treating as pass",
				"seat", seat, "suit", call.Suit)
			continue
		}

		b := bid{
			maker:     seat,
			trump:     call.Suit,
			alone:     call.Op == strategy.CallAlone,
			makerHand: snapshot(g.hands[seat]),
		}
		g.offerDefend(&b)
		return b, true
	}

	return bid{}, false
}

// pickUpAndDrop gives the dealer the hole card and asks for a discard. A
// discard that isn't in the dealer's hand degrades to dropping the picked
// up card.
func (g *Game) pickUpAndDrop(hole deck.Card) {
	g.hands[g.dealer] = append(g.hands[g.dealer], hole)
	drop := g.players[g.dealer].DecideDrop(g.view(g.dealer, hole, hole.Suit))
	if !remove(&g.hands[g.dealer], drop) {
		g.logger.Warn("strategy dropped a card it doesn't hold",
			"seat", g.dealer, "card", drop)
		remove(&g.hands[g.dealer], hole)
	}
}

// offerDefend gives each defender the chance to defend alone against a
// lone maker, when the option is enabled.
func (g *Game) offerDefend(b *bid) {
	b.defender = -1
	if !b.alone || !g.opts.DefendAlone {
		return
	}
	for _, seat := range []int{(b.maker + 1) % 4, (b.maker + 3) % 4} {
		if g.players[seat].DecideDefend(g.view(seat, deck.Card{}, b.trump)) {
			b.defendAlone = true
			b.defender = seat
			return
		}
	}
}

// playTricks plays the five tricks of a hand and returns how many the
// makers took. Partners of lone players sit out.
func (g *Game) playTricks(ctx context.Context, b bid) (int, error) {
	sitting := map[int]bool{}
	if b.alone {
		sitting[(b.maker+2)%4] = true
	}
	if b.defendAlone {
		sitting[(b.defender+2)%4] = true
	}

	leader := (g.dealer + 1) % 4
	for sitting[leader] {
		leader = (leader + 1) % 4
	}

	makerTricks := 0
	for trick := 0; trick < 5; trick++ {
		if err := ctx.Err(); err != nil {
			return 0, fmt.Errorf("hand abandoned at trick %d: %w", trick+1, err)
		}

		winner, err := g.playTrick(leader, b.trump, sitting)
		if err != nil {
			return 0, err
		}
		if teamOf(winner) == teamOf(b.maker) {
			makerTricks++
		}
		leader = winner
	}
	return makerTricks, nil
}

// playTrick plays a single trick led by leader and returns the winning
// seat.
func (g *Game) playTrick(leader int, trump deck.Suit, sitting map[int]bool) (int, error) {
	lead := g.players[leader].DecidePlayLead(g.view(leader, deck.Card{}, trump))
	if !remove(&g.hands[leader], lead) {
		return 0, fmt.Errorf("seat %d led %v, a card it doesn't hold", leader, lead)
	}
	leadSuit := lead.EffectiveSuit(trump)

	winner, best := leader, lead.TrickValue(trump, leadSuit)
	for i := 1; i < 4; i++ {
		seat := (leader + i) % 4
		if sitting[seat] {
			continue
		}

		playable := followCards(g.hands[seat], leadSuit, trump)
		g.rec.AddFollow(len(g.hands[seat]), len(playable))

		card := g.players[seat].DecidePlayFollow(g.view(seat, deck.Card{}, trump), playable)
		if !contains(playable, card) {
			return 0, fmt.Errorf("seat %d followed with %v, not a playable card", seat, card)
		}
		remove(&g.hands[seat], card)

		if value := card.TrickValue(trump, leadSuit); value > best {
			winner, best = seat, value
		}
	}
	return winner, nil
}

// followCards returns the subset of hand that may legally be played on a
// trick: cards matching the effective lead suit, or the whole hand when
// the seat can't follow.
func followCards(hand []deck.Card, leadSuit, trump deck.Suit) []deck.Card {
	playable := make([]deck.Card, 0, len(hand))
	for _, c := range hand {
		if c.EffectiveSuit(trump) == leadSuit {
			playable = append(playable, c)
		}
	}
	if len(playable) == 0 {
		return snapshot(hand)
	}
	return playable
}

func snapshot(hand []deck.Card) []deck.Card {
	out := make([]deck.Card, len(hand))
	copy(out, hand)
	return out
}

func contains(cards []deck.Card, card deck.Card) bool {
	for _, c := range cards {
		if c == card {
			return true
		}
	}
	return false
}

// remove deletes a card from a hand by value, reporting whether it was
// found.
func remove(hand *[]deck.Card, card deck.Card) bool {
	for i, c := range *hand {
		if c == card {
			*hand = append((*hand)[:i], (*hand)[i+1:]...)
			return true
		}
	}
	return false
}
