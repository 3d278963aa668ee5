// Package scheduler implements the bounded-concurrency game scheduler: a
// single control loop that keeps a fixed number of execution slots filled
// with match tasks until a target game count is reached, reports aggregate
// statistics periodically, and shuts down cleanly on interruption without
// losing collected results.
package scheduler

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"golang.org/x/sync/errgroup"

	"github.com/Thump/leuchre/internal/euchre"
	"github.com/Thump/leuchre/internal/match"
	"github.com/Thump/leuchre/internal/record"
	"github.com/Thump/leuchre/internal/strategy"
)

// Reporter is the scheduler's view of the statistics store: periodic
// snapshots during the run and a forced durable flush at the end.
type Reporter interface {
	Print(clear bool)
	WriteForce() error
}

// Config configures a scheduling run.
type Config struct {
	Target  int    // total games to play
	Threads int    // requested concurrency; capped at Target
	Team1   string // strategy identifier for seats 0 and 2
	Team2   string // strategy identifier for seats 1 and 3
	Seed    int64
	Timeout time.Duration // per-game idle timeout, zero for none
	Stats   bool          // enable periodic snapshot reporting
	Options euchre.Options

	// PollInterval bounds how often the control loop scans the slots.
	// ReportInterval is how often snapshots print in stats mode. Both get
	// sensible defaults when zero.
	PollInterval   time.Duration
	ReportInterval time.Duration
}

// Summary describes a completed run.
type Summary struct {
	Launched    int
	Slots       int
	Interrupted bool
	Elapsed     time.Duration
}

// spawnFunc creates and starts the match for one slot and sequence number.
type spawnFunc func(seq, slot int) Task

// Scheduler drives the match-launch loop. All fields are owned by the
// single goroutine running Run; the record behind the reporter carries its
// own lock.
type Scheduler struct {
	cfg        Config
	logger     *log.Logger
	clock      quartz.Clock
	reporter   Reporter
	spawn      spawnFunc
	slots      *slotTable
	launched   int
	lastReport time.Time
}

// New creates a scheduler that plays cfg.Team1 against cfg.Team2,
// recording into rec. Unknown strategy identifiers fail here, before any
// game is scheduled; missing optional capabilities are only warned about.
func New(cfg Config, rec *record.Record, logger *log.Logger) (*Scheduler, error) {
	team1, err := strategy.Lookup(cfg.Team1)
	if err != nil {
		return nil, err
	}
	team2, err := strategy.Lookup(cfg.Team2)
	if err != nil {
		return nil, err
	}
	strategy.VerifyCapabilities(cfg.Team1, team1, logger)
	strategy.VerifyCapabilities(cfg.Team2, team2, logger)

	spawn := func(seq, slot int) Task {
		task := match.New(match.Config{
			Seq:     seq,
			Slot:    slot,
			Seed:    cfg.Seed + int64(seq),
			Timeout: cfg.Timeout,
			Team1:   team1,
			Team2:   team2,
			Record:  rec,
			Options: cfg.Options,
			Logger:  logger,
		})
		task.Start()
		return task
	}

	return newScheduler(cfg, rec, spawn, quartz.NewReal(), logger), nil
}

// newScheduler wires a scheduler from explicit parts. Tests use it to
// substitute a mock clock, a fake reporter, and instantaneous tasks.
func newScheduler(cfg Config, reporter Reporter, spawn spawnFunc, clock quartz.Clock, logger *log.Logger) *Scheduler {
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = time.Second
	}
	if cfg.ReportInterval <= 0 {
		cfg.ReportInterval = 10 * time.Second
	}
	if cfg.Threads < 1 {
		cfg.Threads = 1
	}
	return &Scheduler{
		cfg:      cfg,
		logger:   logger.WithPrefix("scheduler"),
		clock:    clock,
		reporter: reporter,
		spawn:    spawn,
	}
}

// Run executes the scheduling loop until the launch budget is exhausted
// and every game has finished, or ctx is cancelled. On cancellation the
// loop stops launching and abandons any games still running, but the final
// snapshot and forced flush happen on every path, so partial results
// always survive.
func (s *Scheduler) Run(ctx context.Context) Summary {
	start := s.clock.Now()
	s.lastReport = start

	numSlots := s.cfg.Threads
	if s.cfg.Target < numSlots {
		numSlots = s.cfg.Target
	}
	s.slots = newSlotTable(numSlots)

	s.logger.Info("scheduling games",
		"target", s.cfg.Target, "slots", numSlots,
		"team1", s.cfg.Team1, "team2", s.cfg.Team2)

	for s.launched < s.cfg.Target {
		if ctx.Err() != nil {
			return s.finish(start, true)
		}

		for i := 0; i < s.slots.size() && s.launched < s.cfg.Target; i++ {
			if !s.slots.reusable(i) {
				continue
			}
			s.slots.assign(i, s.spawn(s.launched, i))
			s.logger.Debug("game launched", "sequence", s.launched, "slot", i)
			s.launched++
		}

		s.maybeReport()

		if s.launched < s.cfg.Target && !s.sleep(ctx, s.cfg.PollInterval) {
			return s.finish(start, true)
		}
	}

	s.logger.Info("launch budget exhausted, draining", "launched", s.launched)
	if !s.drain(ctx) {
		return s.finish(start, true)
	}
	return s.finish(start, false)
}

// maybeReport prints a snapshot when stats mode is on and the report
// interval has elapsed.
func (s *Scheduler) maybeReport() {
	if !s.cfg.Stats {
		return
	}
	if s.clock.Since(s.lastReport) < s.cfg.ReportInterval {
		return
	}
	s.reporter.Print(true)
	s.lastReport = s.clock.Now()
}

// sleep blocks for the poll interval, returning false if ctx was cancelled
// first.
func (s *Scheduler) sleep(ctx context.Context, d time.Duration) bool {
	fired := make(chan struct{})
	timer := s.clock.AfterFunc(d, func() {
		close(fired)
	})
	defer timer.Stop()

	select {
	case <-fired:
		return true
	case <-ctx.Done():
		return false
	}
}

// drain joins every outstanding task, returning false if ctx was cancelled
// before they all finished. Cancelled games keep running in the background;
// they are abandoned, not joined.
func (s *Scheduler) drain(ctx context.Context) bool {
	var g errgroup.Group
	for _, task := range s.slots.active() {
		g.Go(func() error {
			task.Join()
			return nil
		})
	}

	done := make(chan struct{})
	go func() {
		g.Wait() //nolint:errcheck // joins never fail
		close(done)
	}()

	select {
	case <-done:
		return true
	case <-ctx.Done():
		return false
	}
}

// finish performs the exactly-once final actions shared by the normal and
// interrupted exit paths: one snapshot, one forced flush.
func (s *Scheduler) finish(start time.Time, interrupted bool) Summary {
	if interrupted {
		s.logger.Warn("interrupted, abandoning games still running", "launched", s.launched)
	}

	s.reporter.Print(false)
	if err := s.reporter.WriteForce(); err != nil {
		s.logger.Error("final flush failed", "error", err)
	}

	summary := Summary{
		Launched:    s.launched,
		Slots:       s.slots.size(),
		Interrupted: interrupted,
		Elapsed:     s.clock.Since(start),
	}
	s.logger.Info("run complete",
		"launched", summary.Launched, "interrupted", summary.Interrupted,
		"elapsed", summary.Elapsed)
	return summary
}
