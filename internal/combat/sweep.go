package combat

import (
	"context"
	"fmt"
	"math"
)

type SweepConfig struct {
	Batch      BatchConfig
	Strategies []NamedStrategy
}

type PairingResult struct {
	Index         int     `json:"index"`
	Team1ID       string  `json:"team1_id"`
	Team1Strategy string  `json:"team1_strategy"`
	Team2ID       string  `json:"team2_id"`
	Team2Strategy string  `json:"team2_strategy"`
	Counts        Tally   `json:"counts"`
	Team1Rate     float64 `json:"team1_rate"`
	Team2Rate     float64 `json:"team2_rate"`
	DrawRate      float64 `json:"draw_rate"`
	Difference    float64 `json:"difference"`
}

// Extreme is the pairing at one end of the difference range. Found is false
// when no pairing qualified.
type Extreme struct {
	Found         bool    `json:"found"`
	Index         int     `json:"index"`
	Team1Strategy string  `json:"team1_strategy"`
	Team2Strategy string  `json:"team2_strategy"`
	Difference    float64 `json:"difference"`
}

type SweepResult struct {
	Rounds   int             `json:"rounds"`
	Cannons  int             `json:"cannons"`
	Workers  int             `json:"workers"`
	Seed     int64           `json:"seed"`
	Pairings []PairingResult `json:"pairings"`
	Balanced Extreme         `json:"balanced"`
	Skewed   Extreme         `json:"skewed"`
}

// NewPairingResult derives rates from a tally. The tally must be non-empty.
func NewPairingResult(index int, a, b NamedStrategy, t Tally) PairingResult {
	total := float64(t.Total())
	r1 := float64(t.Team1) / total
	r2 := float64(t.Team2) / total
	return PairingResult{
		Index:         index,
		Team1ID:       a.ID,
		Team1Strategy: a.Name,
		Team2ID:       b.ID,
		Team2Strategy: b.Name,
		Counts:        t,
		Team1Rate:     r1,
		Team2Rate:     r2,
		DrawRate:      float64(t.Draw) / total,
		Difference:    math.Abs(r1 - r2),
	}
}

// Sweep simulates every ordered pair (i, j) of cfg.Strategies, i outer and j
// inner. Pairing k = i*n+j runs as batch stream k. progress, when non-nil, is
// called after each pairing.
func Sweep(ctx context.Context, cfg SweepConfig, progress func(PairingResult)) (SweepResult, error) {
	n := len(cfg.Strategies)
	if n == 0 {
		return SweepResult{}, fmt.Errorf("%w: empty strategy set", ErrInvalidBatch)
	}
	if err := cfg.Batch.validate(); err != nil {
		return SweepResult{}, err
	}

	res := SweepResult{
		Rounds:   cfg.Batch.Rounds,
		Cannons:  cfg.Batch.Cannons,
		Workers:  cfg.Batch.Workers,
		Seed:     cfg.Batch.Seed,
		Pairings: make([]PairingResult, 0, n*n),
	}
	for i, a := range cfg.Strategies {
		for j, b := range cfg.Strategies {
			bc := cfg.Batch
			bc.Stream = i*n + j
			tally, err := Simulate(ctx, a.Strategy, b.Strategy, bc)
			if err != nil {
				return SweepResult{}, fmt.Errorf("%s vs %s: %w", a.Name, b.Name, err)
			}
			pr := NewPairingResult(bc.Stream, a, b, tally)
			res.Pairings = append(res.Pairings, pr)
			if progress != nil {
				progress(pr)
			}
		}
	}
	res.Balanced, res.Skewed = Extremes(res.Pairings)
	return res, nil
}

// Extremes returns the pairings with the smallest and largest Difference.
// Comparisons are strict, so the earliest pairing wins a tie. The maximum
// starts at the smallest positive float64: a sweep where every difference is
// zero has no skewed pairing.
func Extremes(pairings []PairingResult) (balanced, skewed Extreme) {
	minDiff := math.MaxFloat64
	maxDiff := math.SmallestNonzeroFloat64
	for _, p := range pairings {
		if p.Difference < minDiff {
			minDiff = p.Difference
			balanced = extremeOf(p)
		}
		if p.Difference > maxDiff {
			maxDiff = p.Difference
			skewed = extremeOf(p)
		}
	}
	return balanced, skewed
}

func extremeOf(p PairingResult) Extreme {
	return Extreme{
		Found:         true,
		Index:         p.Index,
		Team1Strategy: p.Team1Strategy,
		Team2Strategy: p.Team2Strategy,
		Difference:    p.Difference,
	}
}
