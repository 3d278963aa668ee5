package match

import (
	"bytes"
	"io"
	"math/rand"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Thump/leuchre/internal/deck"
	"github.com/Thump/leuchre/internal/record"
	"github.com/Thump/leuchre/internal/strategy"
)

func testRecord(t *testing.T) *record.Record {
	t.Helper()
	return record.New(record.Config{
		Team1:  "random",
		Team2:  "random",
		Dir:    t.TempDir(),
		Out:    &bytes.Buffer{},
		Logger: log.New(io.Discard),
	})
}

func testConfig(t *testing.T, rec *record.Record) Config {
	t.Helper()
	return Config{
		Seq:    0,
		Slot:   0,
		Seed:   17,
		Team1:  strategy.NewRandom,
		Team2:  strategy.NewRandom,
		Record: rec,
		Logger: log.New(io.Discard),
	}
}

func TestTaskRunsAndRecordsGame(t *testing.T) {
	rec := testRecord(t)
	task := New(testConfig(t, rec))

	assert.False(t, task.Finished(), "a task is not finished before it starts")

	task.Start()
	task.Join()

	assert.True(t, task.Finished())
	assert.Equal(t, 1, rec.Games(), "a completed game is counted exactly once")
	assert.Positive(t, rec.Hands())
}

func TestTaskSeedDeterminesOutcome(t *testing.T) {
	run := func() (games, hands int) {
		rec := testRecord(t)
		cfg := testConfig(t, rec)
		cfg.Seed = 99
		task := New(cfg)
		task.Start()
		task.Join()
		return rec.Games(), rec.Hands()
	}

	g1, h1 := run()
	g2, h2 := run()
	assert.Equal(t, g1, g2)
	assert.Equal(t, h1, h2, "the same seed replays the same game")
}

// stalling orders immediately but dawdles before every play, so a short
// match timeout always expires mid-game.
type stalling struct {
	delay time.Duration
}

func newStalling(delay time.Duration) strategy.Factory {
	return func(rng *rand.Rand, logger *log.Logger) strategy.Strategy {
		return stalling{delay: delay}
	}
}

func (s stalling) DecideOrderPass(v strategy.View) strategy.Bid {
	time.Sleep(s.delay)
	return strategy.Order
}

func (s stalling) DecideCallPass(v strategy.View) strategy.Call {
	return strategy.Call{Op: strategy.CallPass}
}

func (s stalling) DecideDrop(v strategy.View) deck.Card { return v.Hole }
func (s stalling) DecideDefend(v strategy.View) bool    { return false }

func (s stalling) DecidePlayLead(v strategy.View) deck.Card {
	time.Sleep(s.delay)
	return v.Hand[0]
}

func (s stalling) DecidePlayFollow(v strategy.View, playable []deck.Card) deck.Card {
	time.Sleep(s.delay)
	return playable[0]
}

func TestTaskTimeoutAbandonsGame(t *testing.T) {
	rec := testRecord(t)
	cfg := testConfig(t, rec)
	cfg.Timeout = time.Millisecond
	cfg.Team1 = newStalling(20 * time.Millisecond)
	cfg.Team2 = newStalling(20 * time.Millisecond)

	task := New(cfg)
	task.Start()
	task.Join()

	require.True(t, task.Finished())
	assert.Zero(t, rec.Games(), "an abandoned game is never counted")
}
