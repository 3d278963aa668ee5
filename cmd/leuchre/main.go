// Command leuchre plays many concurrent games of euchre between two
// strategies and reports aggregate statistics about the outcomes.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/alecthomas/kong"

	"github.com/Thump/leuchre/internal/config"
	"github.com/Thump/leuchre/internal/euchre"
	"github.com/Thump/leuchre/internal/record"
	"github.com/Thump/leuchre/internal/scheduler"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Version kong.VersionFlag `short:"v" help:"Show version"`

	Count   int    `help:"Number of games to play (default from config, else 1)"`
	Threads int    `help:"Number of games to run concurrently (default from config, else 1)"`
	Team1   string `help:"Strategy for team 1 (seats 0 and 2)"`
	Team2   string `help:"Strategy for team 2 (seats 1 and 3)"`
	Seed    int64  `help:"RNG seed (0 for time-based)"`
	Timeout int    `help:"Per-game timeout in seconds (0 for none)"`
	Stats   bool   `help:"Show the stats dashboard every 10 seconds"`

	AloneOnOrder bool `name:"alone-on-order" help:"Ordering the hole card forces the orderer alone"`
	DefendAlone  bool `name:"defend-alone" help:"Offer defenders the chance to defend alone"`

	Server string `help:"euchred server address (reserved for networked play)"`
	Port   int    `help:"euchred server port (reserved for networked play)"`

	Config  string `default:"leuchre.hcl" help:"HCL configuration file"`
	LogFile string `name:"log-file" help:"Write logs to this file instead of stderr"`
	NoLog   bool   `name:"no-log" help:"Discard all log output"`
	Debug   bool   `help:"Debug logging"`
}

func main() {
	var cli CLI
	kctx := kong.Parse(&cli,
		kong.Name("leuchre"),
		kong.Description("Concurrent euchre simulation and statistics harness"),
		kong.UsageOnError(),
		kong.Vars{"version": version},
	)
	kctx.FatalIfErrorf(run(&cli))
}

func run(cli *CLI) error {
	cfg, err := config.Load(cli.Config)
	if err != nil {
		return err
	}

	// Flags win over the config file, the config file over defaults.
	count := cli.Count
	if count == 0 {
		count = cfg.Simulation.Count
	}
	threads := cli.Threads
	if threads == 0 {
		threads = cfg.Simulation.Threads
	}
	team1 := cli.Team1
	if team1 == "" {
		team1 = cfg.Team("1", "random")
	}
	team2 := cli.Team2
	if team2 == "" {
		team2 = cfg.Team("2", "random")
	}
	seed := cli.Seed
	if seed == 0 {
		seed = cfg.Simulation.Seed
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	timeout := cli.Timeout
	if timeout == 0 {
		timeout = cfg.Simulation.TimeoutSeconds
	}
	stats := cli.Stats || cfg.Simulation.Stats

	logger, cleanup, err := setupLogger(cli)
	if err != nil {
		return err
	}
	defer cleanup()

	rec := record.New(record.Config{
		Team1:  team1,
		Team2:  team2,
		Logger: logger,
	})

	sched, err := scheduler.New(scheduler.Config{
		Target:  count,
		Threads: threads,
		Team1:   team1,
		Team2:   team2,
		Seed:    seed,
		Timeout: time.Duration(timeout) * time.Second,
		Stats:   stats,
		Options: euchre.Options{
			AloneOnOrder: cli.AloneOnOrder,
			DefendAlone:  cli.DefendAlone,
		},
	}, rec, logger)
	if err != nil {
		return err
	}

	ctx := signalContext(logger)
	summary := sched.Run(ctx)

	if summary.Interrupted {
		return fmt.Errorf("interrupted after launching %d of %d games", summary.Launched, count)
	}

	fmt.Fprintf(os.Stderr, "played %d games in %s (%d slots)\n",
		summary.Launched, summary.Elapsed.Round(time.Millisecond), summary.Slots)
	return nil
}
