// Package record implements the shared statistics store for a simulation
// run. One Record is created per run and handed to every concurrently
// running game; all updates and snapshots happen under a single exclusive
// lock so counters are never torn by concurrent writers.
package record

import (
	"io"
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/Thump/leuchre/internal/deck"
	"github.com/Thump/leuchre/internal/euchre"
)

// uniqueHands is the number of distinct trump-remapped five-card euchre
// hands, used to report coverage of the calling-hand table.
const uniqueHands = 10422

// writeInterval rate-limits the incidental flushes performed by the Add
// methods. Forced flushes ignore it.
const writeInterval = 60 * time.Second

// Config configures a Record.
type Config struct {
	Team1  string // team 1 strategy identifier, for report headers
	Team2  string // team 2 strategy identifier
	Dir    string // directory for the CSV flush files, default "."
	Out    io.Writer
	Logger *log.Logger
}

// tally counts an event by team, by seat, and by dealer-relative position
// within each team. Position 0 is the seat left of the dealer, position 3
// is the dealer.
type tally struct {
	Team    [2]int
	Player  [4]int
	TeamPos [2][4]int
}

func (t *tally) add(team, seat, pos int) {
	t.Team[team-1]++
	t.Player[seat]++
	t.TeamPos[team-1][pos]++
}

// callLine aggregates the scores seen for one remapped calling hand.
type callLine struct {
	Count  int
	Sum    int
	Scores []int
}

// followStat accumulates the ratio of playable cards per trick.
type followStat struct {
	Sum   float64
	Count int
}

// Record is the lock-protected statistics store. All exported methods are
// safe for concurrent use.
type Record struct {
	mu     sync.Mutex
	out    io.Writer
	logger *log.Logger
	dir    string
	team1  string
	team2  string

	start     time.Time
	lastWrite time.Time

	games   int
	hands   int
	euchres int

	makers      tally
	orderers    tally
	callers     tally
	euchreTally tally

	// euchres on an ordered hole card, by the maker's team then by the
	// hole card's rank (9, T, Q, K, A, J).
	holeEuchres [2][6]int

	chand  map[string]*callLine
	ccount int
	cmax   int

	follow [6]followStat // indexed by trick 1-5
}

// New creates an empty Record.
func New(cfg Config) *Record {
	if cfg.Out == nil {
		cfg.Out = os.Stdout
	}
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}
	if cfg.Dir == "" {
		cfg.Dir = "."
	}
	return &Record{
		out:    cfg.Out,
		logger: cfg.Logger.WithPrefix("record"),
		dir:    cfg.Dir,
		team1:  cfg.Team1,
		team2:  cfg.Team2,
		start:  time.Now(),
		chand:  map[string]*callLine{},
	}
}

// AddGame counts one completed game.
func (r *Record) AddGame() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.games++
	r.maybeWriteLocked()
}

// AddHand incorporates a completed hand's outcome.
func (r *Record) AddHand(h euchre.HandResult) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.hands++

	// Position relative to the dealer: 0 is the seat left of the dealer,
	// 3 is the dealer, so results aggregate by bidding order.
	pos := h.Maker - (h.Dealer + 1)
	if pos < 0 {
		pos += 4
	}

	r.makers.add(h.Team, h.Maker, pos)
	if h.Ordered {
		r.orderers.add(h.Team, h.Maker, pos)
	} else {
		r.callers.add(h.Team, h.Maker, pos)
	}

	if h.Score < 0 {
		r.euchres++
		r.euchreTally.add(h.Team, h.Maker, pos)

		// Euchres on an order (but not a dealer's self-order) break down
		// by the hole card that was ordered: only six ranks can be
		// ordered, since the left can never be the hole card.
		if h.Ordered && h.Maker != h.Dealer {
			if i := holeIndex(h.Hole.Rank); i >= 0 {
				r.holeEuchres[h.Team-1][i]++
			}
		}
	}

	remap := Remap(h.Hand, h.Trump)
	line := r.chand[remap]
	if line == nil {
		line = &callLine{}
		r.chand[remap] = line
	}
	line.Count++
	line.Sum += h.Score
	line.Scores = append(line.Scores, h.Score)
	if line.Count > r.cmax {
		r.cmax = line.Count
	}
	r.ccount++

	r.maybeWriteLocked()
}

// AddFollow records how much of a hand could legally follow a trick. The
// hand size determines the trick number: five cards means trick one.
func (r *Record) AddFollow(handSize, playable int) {
	if handSize < 1 || handSize > 5 {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	trick := 6 - handSize
	r.follow[trick].Sum += float64(playable) / float64(handSize)
	r.follow[trick].Count++
	r.maybeWriteLocked()
}

// Games returns the number of completed games recorded so far.
func (r *Record) Games() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.games
}

// Hands returns the number of completed hands recorded so far.
func (r *Record) Hands() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.hands
}

// holeIndex maps an orderable hole rank to its tally slot, in the
// traditional 9, T, Q, K, A, J reporting order.
func holeIndex(rank deck.Rank) int {
	switch rank {
	case deck.Nine:
		return 0
	case deck.Ten:
		return 1
	case deck.Queen:
		return 2
	case deck.King:
		return 3
	case deck.Ace:
		return 4
	case deck.Jack:
		return 5
	default:
		return -1
	}
}
