// Package match runs one euchre game as an asynchronous task owned by a
// scheduler slot.
package match

import (
	"context"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/Thump/leuchre/internal/euchre"
	"github.com/Thump/leuchre/internal/record"
	"github.com/Thump/leuchre/internal/strategy"
)

// Config describes one match to run.
type Config struct {
	Seq     int   // launch sequence number, unique across the run
	Slot    int   // the scheduler slot that owns this match
	Seed    int64 // RNG seed, so any match is replayable on its own
	Timeout time.Duration
	Team1   strategy.Factory // seats 0 and 2
	Team2   strategy.Factory // seats 1 and 3
	Record  *record.Record
	Options euchre.Options
	Logger  *log.Logger
}

// Task is a single in-flight or completed match. The scheduler owns the
// handle; the task itself shares nothing but write access to the record.
type Task struct {
	cfg    Config
	logger *log.Logger
	done   chan struct{}
}

// New creates a match task. It does not start it.
func New(cfg Config) *Task {
	return &Task{
		cfg:    cfg,
		logger: cfg.Logger.With("game", cfg.Seq, "slot", cfg.Slot),
		done:   make(chan struct{}),
	}
}

// Start launches the match on its own goroutine. The task signals finished
// when the game completes, fails, or exceeds its timeout; a failed game is
// indistinguishable from a finished one to the scheduler.
func (t *Task) Start() {
	go t.run()
}

// Finished reports without blocking whether the match has ended.
func (t *Task) Finished() bool {
	select {
	case <-t.done:
		return true
	default:
		return false
	}
}

// Join blocks until the match has ended.
func (t *Task) Join() {
	<-t.done
}

func (t *Task) run() {
	defer close(t.done)

	ctx := context.Background()
	if t.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, t.cfg.Timeout)
		defer cancel()
	}

	// Fresh strategy instances and a private RNG per match, so games are
	// independent and replayable from their seed.
	rng := rand.New(rand.NewSource(t.cfg.Seed))
	players := [4]strategy.Strategy{
		t.cfg.Team1(rng, t.logger),
		t.cfg.Team2(rng, t.logger),
		t.cfg.Team1(rng, t.logger),
		t.cfg.Team2(rng, t.logger),
	}

	game := euchre.New(players, t.cfg.Record, rng, t.logger, t.cfg.Options)
	result, err := game.Play(ctx)
	if err != nil {
		// The game never concluded, so nothing was scored for it. The
		// aggregate game count will fall short of the launch count, which
		// is preferable to recording a fabricated outcome.
		t.logger.Error("game did not complete", "seed", t.cfg.Seed, "error", err)
		return
	}

	t.cfg.Record.AddGame()
	t.logger.Debug("game recorded",
		"winner", result.Winner, "team1", result.Score[0], "team2", result.Score[1],
		"hands", result.Hands)
}
