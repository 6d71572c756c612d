package combat

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"cannon_duel/internal/util"
)

var (
	ErrInvalidBatch   = errors.New("invalid batch")
	ErrUnknownOutcome = errors.New("unknown outcome")
)

// BatchConfig parameterizes one strategy pairing. Stream separates the seeds
// of different pairings inside a sweep. Workers 0 means one shard per CPU;
// counts are only reproducible for a fixed worker count.
type BatchConfig struct {
	Rounds    int
	Cannons   int
	Workers   int
	MaxRounds int
	Seed      int64
	Stream    int
}

func (c BatchConfig) validate() error {
	if c.Rounds <= 0 {
		return fmt.Errorf("%w: rounds must be > 0, got %d", ErrInvalidBatch, c.Rounds)
	}
	if c.Cannons <= 0 {
		return fmt.Errorf("%w: cannons must be > 0, got %d", ErrInvalidBatch, c.Cannons)
	}
	if c.Workers < 0 {
		return fmt.Errorf("%w: workers must be >= 0, got %d", ErrInvalidBatch, c.Workers)
	}
	return nil
}

type Tally struct {
	Team1 int `json:"team1"`
	Team2 int `json:"team2"`
	Draw  int `json:"draw"`
}

func (t *Tally) Record(outcome string) error {
	switch outcome {
	case Team1Name:
		t.Team1++
	case Team2Name:
		t.Team2++
	case Draw:
		t.Draw++
	default:
		return fmt.Errorf("%w: %q", ErrUnknownOutcome, outcome)
	}
	return nil
}

func (t *Tally) Merge(o Tally) {
	t.Team1 += o.Team1
	t.Team2 += o.Team2
	t.Draw += o.Draw
}

func (t Tally) Total() int { return t.Team1 + t.Team2 + t.Draw }

func (t Tally) Counts() map[string]int {
	return map[string]int{Team1Name: t.Team1, Team2Name: t.Team2, Draw: t.Draw}
}

// Simulate runs cfg.Rounds independent battles of s1 (as Team1) against s2
// (as Team2). Battles are split into contiguous shards, one per worker, each
// with its own generator and tally.
func Simulate(ctx context.Context, s1, s2 Strategy, cfg BatchConfig) (Tally, error) {
	if err := cfg.validate(); err != nil {
		return Tally{}, err
	}
	sizes := shardSizes(cfg.Rounds, cfg.Workers)
	tallies := make([]Tally, len(sizes))

	g, ctx := errgroup.WithContext(ctx)
	for w, n := range sizes {
		g.Go(func() error {
			rng := util.New(util.ShardSeed(cfg.Seed, cfg.Stream, w))
			t, err := SimulateWith(ctx, rng, s1, s2, n, cfg.Cannons, cfg.MaxRounds)
			if err != nil {
				return fmt.Errorf("shard %d: %w", w, err)
			}
			tallies[w] = t
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Tally{}, err
	}

	var total Tally
	for _, t := range tallies {
		total.Merge(t)
	}
	return total, nil
}

// SimulateWith runs rounds battles sequentially on a caller-supplied
// generator. Every battle gets fresh teams.
func SimulateWith(ctx context.Context, rng Rand, s1, s2 Strategy, rounds, cannons, maxRounds int) (Tally, error) {
	var tally Tally
	env := &Env{Rng: rng, MaxRounds: maxRounds}
	for i := 0; i < rounds; i++ {
		if i%256 == 0 {
			if err := ctx.Err(); err != nil {
				return tally, err
			}
		}
		team1 := NewTeam(Team1Name, cannons, s1)
		team2 := NewTeam(Team2Name, cannons, s2)
		outcome, err := RunBattle(env, team1, team2)
		if err != nil {
			return tally, fmt.Errorf("battle %d: %w", i, err)
		}
		if err := tally.Record(outcome); err != nil {
			return tally, err
		}
	}
	return tally, nil
}

// shardSizes splits rounds over at most workers shards; the first
// rounds%shards shards take one extra battle.
func shardSizes(rounds, workers int) []int {
	if workers == 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > rounds {
		workers = rounds
	}
	base, extra := rounds/workers, rounds%workers
	sizes := make([]int, workers)
	for i := range sizes {
		sizes[i] = base
		if i < extra {
			sizes[i]++
		}
	}
	return sizes
}
