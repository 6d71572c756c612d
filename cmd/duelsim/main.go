package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/charmbracelet/log"

	"cannon_duel/internal/combat"
	"cannon_duel/internal/config"
	"cannon_duel/internal/report"
	"cannon_duel/internal/util"
)

type options struct {
	configPath string
	out        string
	trace      string
	verbose    bool
}

// traceResult is the JSON document written for a single traced battle.
type traceResult struct {
	Seed    int64          `json:"seed"`
	Team1   string         `json:"team1"`
	Team2   string         `json:"team2"`
	Cannons int            `json:"cannons"`
	Outcome string         `json:"outcome"`
	Rounds  int            `json:"rounds"`
	Events  []combat.Event `json:"events"`
}

func main() {
	logger := log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: true, Prefix: "duelsim"})

	cfg, opts, err := parseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		logger.Fatal("bad configuration", "err", err)
	}
	if opts.verbose {
		logger.SetLevel(log.DebugLevel)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, opts, os.Stdout, logger); err != nil {
		logger.Fatal("simulation failed", "err", err)
	}
}

// parseConfig loads the config file named by -config, then applies every
// flag that was set explicitly on top of it.
func parseConfig(fs *flag.FlagSet, args []string) (*config.SimConfig, options, error) {
	var opts options
	var rounds, cannons, workers int
	var seed int64
	var strategies string
	fs.StringVar(&opts.configPath, "config", "", "YAML config file (default: built-in reference sweep)")
	fs.StringVar(&opts.out, "out", "", "write the JSON summary (or trace) here; - for stdout")
	fs.StringVar(&opts.trace, "trace", "", "trace one battle between two strategy ids, e.g. drunk_commander,two_platoons")
	fs.BoolVar(&opts.verbose, "v", false, "debug logging")
	fs.IntVar(&rounds, "rounds", 0, "battles per pairing")
	fs.IntVar(&cannons, "cannons", 0, "cannons per team")
	fs.IntVar(&workers, "workers", 0, "worker shards per pairing")
	fs.Int64Var(&seed, "seed", 0, "base RNG seed (0 = random)")
	fs.StringVar(&strategies, "strategies", "", "comma-separated strategy ids to sweep")
	if err := fs.Parse(args); err != nil {
		return nil, opts, err
	}

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, opts, err
	}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "rounds":
			cfg.Rounds = rounds
		case "cannons":
			cfg.CannonsPerTeam = cannons
		case "workers":
			cfg.Workers = workers
		case "seed":
			cfg.Seed = seed
		case "strategies":
			cfg.StrategySet = splitIDs(strategies)
		}
	})
	if err := cfg.Validate(); err != nil {
		return nil, opts, err
	}
	return cfg, opts, nil
}

func splitIDs(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func run(ctx context.Context, cfg *config.SimConfig, opts options, stdout io.Writer, logger *log.Logger) error {
	if cfg.Seed == 0 {
		seed, err := util.NewSeed()
		if err != nil {
			return err
		}
		cfg.Seed = seed
	}

	var defs []config.StrategyDef
	var err error
	if opts.trace != "" {
		// The trace may name strategies outside the sweep set.
		defs, err = traceDefs(cfg, opts.trace)
	} else {
		defs, err = cfg.ResolveStrategies()
	}
	if err != nil {
		return err
	}
	roster, err := combat.NewRoster(defs)
	if err != nil {
		return err
	}

	if opts.trace != "" {
		return runTrace(cfg, roster, opts, stdout, logger)
	}

	logger.Info("starting sweep",
		"strategies", roster.Len(), "rounds", cfg.Rounds, "cannons", cfg.CannonsPerTeam,
		"workers", cfg.Workers, "seed", cfg.Seed)
	started := time.Now()
	res, err := combat.Sweep(ctx, combat.SweepConfig{
		Batch: combat.BatchConfig{
			Rounds:    cfg.Rounds,
			Cannons:   cfg.CannonsPerTeam,
			Workers:   cfg.Workers,
			MaxRounds: cfg.MaxBattleRounds,
			Seed:      cfg.Seed,
		},
		Strategies: roster.Strategies(),
	}, func(pr combat.PairingResult) {
		logger.Debug("pairing done",
			"team1", pr.Team1ID, "team2", pr.Team2ID,
			"team1_wins", pr.Counts.Team1, "team2_wins", pr.Counts.Team2, "draws", pr.Counts.Draw)
	})
	if err != nil {
		return err
	}
	logger.Info("sweep finished", "pairings", len(res.Pairings), "elapsed", time.Since(started).Round(time.Millisecond))

	if err := report.WriteText(stdout, cfg.Locale, res); err != nil {
		return err
	}
	if opts.out != "" {
		if err := report.WriteJSON(opts.out, res); err != nil {
			return err
		}
		logger.Info("summary written", "path", opts.out)
	}
	return nil
}

func traceDefs(cfg *config.SimConfig, pair string) ([]config.StrategyDef, error) {
	ids := splitIDs(pair)
	if len(ids) != 2 {
		return nil, fmt.Errorf("%w: -trace wants two strategy ids, got %q", config.ErrInvalidConfig, pair)
	}
	c := *cfg
	c.StrategySet = ids
	if ids[0] == ids[1] {
		c.StrategySet = ids[:1]
	}
	return c.ResolveStrategies()
}

func runTrace(cfg *config.SimConfig, roster *combat.Roster, opts options, stdout io.Writer, logger *log.Logger) error {
	ids := splitIDs(opts.trace)
	a, err := roster.Lookup(ids[0])
	if err != nil {
		return err
	}
	b, err := roster.Lookup(ids[1])
	if err != nil {
		return err
	}

	events := make([]combat.Event, 0, 256)
	env := &combat.Env{
		Rng:       util.New(cfg.Seed),
		MaxRounds: cfg.MaxBattleRounds,
		Emit:      func(ev combat.Event) { events = append(events, ev) },
	}
	outcome, err := combat.RunBattle(env,
		combat.NewTeam(combat.Team1Name, cfg.CannonsPerTeam, a.Strategy),
		combat.NewTeam(combat.Team2Name, cfg.CannonsPerTeam, b.Strategy))
	if err != nil {
		return err
	}
	logger.Info("trace finished", "team1", a.ID, "team2", b.ID, "outcome", outcome, "rounds", env.Round)

	tr := traceResult{
		Seed:    cfg.Seed,
		Team1:   a.Name,
		Team2:   b.Name,
		Cannons: cfg.CannonsPerTeam,
		Outcome: outcome,
		Rounds:  env.Round,
		Events:  events,
	}
	if opts.out != "" && opts.out != "-" {
		if err := report.WriteJSON(opts.out, tr); err != nil {
			return err
		}
		logger.Info("trace written", "path", opts.out)
		return nil
	}
	_, err = stdout.Write(append(report.MarshalPretty(tr), '\n'))
	return err
}
