package config

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

func loadYAML(path string, out any) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(b, out)
}

// Load builds a SimConfig from the defaults, the YAML file at path (skipped
// when path is empty) and DUEL_* environment variables, in that order.
// The result is not validated; callers apply flag overrides first.
func Load(path string) (*SimConfig, error) {
	cfg := Default()
	if path != "" {
		if err := loadYAML(path, &cfg); err != nil {
			return nil, fmt.Errorf("load config %s: %w", path, err)
		}
	}
	var ov envOverrides
	if err := ParseEnv(&ov); err != nil {
		return nil, err
	}
	ov.apply(&cfg)
	return &cfg, nil
}

// envOverrides holds the DUEL_* variables; nil fields were not set.
type envOverrides struct {
	Rounds          *int     `env:"DUEL_ROUNDS"`
	CannonsPerTeam  *int     `env:"DUEL_CANNONS"`
	Workers         *int     `env:"DUEL_WORKERS"`
	Seed            *int64   `env:"DUEL_SEED"`
	MaxBattleRounds *int     `env:"DUEL_MAX_BATTLE_ROUNDS"`
	HitChance       *float64 `env:"DUEL_HIT_CHANCE"`
	StrategySet     []string `env:"DUEL_STRATEGY_SET" envSeparator:","`
	Locale          *string  `env:"DUEL_LOCALE"`
}

func (o envOverrides) apply(cfg *SimConfig) {
	if o.Rounds != nil {
		cfg.Rounds = *o.Rounds
	}
	if o.CannonsPerTeam != nil {
		cfg.CannonsPerTeam = *o.CannonsPerTeam
	}
	if o.Workers != nil {
		cfg.Workers = *o.Workers
	}
	if o.Seed != nil {
		cfg.Seed = *o.Seed
	}
	if o.MaxBattleRounds != nil {
		cfg.MaxBattleRounds = *o.MaxBattleRounds
	}
	if o.HitChance != nil {
		cfg.HitChance = *o.HitChance
	}
	if len(o.StrategySet) > 0 {
		cfg.StrategySet = o.StrategySet
	}
	if o.Locale != nil {
		cfg.Locale = *o.Locale
	}
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}
