package record

import (
	"sort"
	"strings"

	"github.com/Thump/leuchre/internal/deck"
)

// Remap renders a hand as a trump-independent string so results for
// equivalent hands aggregate together regardless of which suit was trump:
//
//	input:  Jd Ks Qc 9h Jh, diamonds trump
//	output: LRt9aKbQc
//
// read as: left and right bower of trump, nine of off-suit a, king of
// off-suit b, queen of off-suit c. The jack of trump becomes R, the jack of
// the same-color suit becomes L, and the three off-suits are sorted so the
// labels a, b, c are assigned symmetrically.
func Remap(hand []deck.Card, trump deck.Suit) string {
	var trumps []string
	offsuits := map[deck.Suit][]string{}

	for _, card := range hand {
		switch {
		case card.IsRightBower(trump):
			trumps = append(trumps, "R")
		case card.IsLeftBower(trump):
			trumps = append(trumps, "L")
		case card.Suit == trump:
			trumps = append(trumps, card.Rank.String())
		default:
			offsuits[card.Suit] = append(offsuits[card.Suit], card.Rank.String())
		}
	}

	var b strings.Builder
	sort.Strings(trumps)
	b.WriteString(strings.Join(trumps, ""))
	b.WriteString("t")

	groups := make([]string, 0, 3)
	for _, suit := range deck.Suits() {
		if suit == trump {
			continue
		}
		cards := offsuits[suit]
		sort.Strings(cards)
		groups = append(groups, strings.Join(cards, ""))
	}
	sort.Strings(groups)
	for i, group := range groups {
		b.WriteString(group)
		b.WriteByte(byte('a' + i))
	}
	return b.String()
}
