package config

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid configuration")

func invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidConfig, fmt.Sprintf(format, args...))
}

// Validate rejects configurations that cannot be simulated. It runs before
// any battle so a bad value never turns into an empty sweep.
func (c *SimConfig) Validate() error {
	if c.Rounds <= 0 {
		return invalidf("rounds must be > 0, got %d", c.Rounds)
	}
	if c.CannonsPerTeam <= 0 {
		return invalidf("cannons_per_team must be > 0, got %d", c.CannonsPerTeam)
	}
	if c.Workers < 0 {
		return invalidf("workers must be >= 0, got %d", c.Workers)
	}
	if c.MaxBattleRounds <= 0 {
		return invalidf("max_battle_rounds must be > 0, got %d", c.MaxBattleRounds)
	}
	if c.HitChance <= 0 || c.HitChance > 1 {
		return invalidf("hit_chance must be in (0, 1], got %v", c.HitChance)
	}
	if len(c.StrategySet) == 0 {
		return invalidf("strategy_set is empty")
	}

	custom := map[string]bool{}
	for i, s := range c.Strategies {
		if s.ID == "" {
			return invalidf("strategies[%d]: missing id", i)
		}
		if custom[s.ID] {
			return invalidf("strategies[%d]: duplicate id %q", i, s.ID)
		}
		custom[s.ID] = true
		if err := validateDef(s); err != nil {
			return fmt.Errorf("strategies[%d]: %w", i, err)
		}
	}

	seen := map[string]bool{}
	for _, id := range c.StrategySet {
		if seen[id] {
			return invalidf("strategy %q listed twice in strategy_set", id)
		}
		seen[id] = true
	}
	_, err := c.ResolveStrategies()
	return err
}

func validateDef(s StrategyDef) error {
	switch s.Kind {
	case KindDrunk:
	case KindGroup:
		if s.Groups < 1 {
			return invalidf("strategy %q: groups must be >= 1, got %d", s.ID, s.Groups)
		}
	default:
		return invalidf("strategy %q: unknown kind %q (want %s or %s)", s.ID, s.Kind, KindDrunk, KindGroup)
	}
	if s.HitChance < 0 || s.HitChance > 1 {
		return invalidf("strategy %q: hit_chance must be in [0, 1], got %v", s.ID, s.HitChance)
	}
	return nil
}
