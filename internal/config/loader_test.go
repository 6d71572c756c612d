package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

func TestDefault_IsReferenceSweep(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should validate, got %v", err)
	}
	if cfg.Rounds != 100000 || cfg.CannonsPerTeam != 12 {
		t.Fatalf("expected rounds=100000 cannons=12, got rounds=%d cannons=%d", cfg.Rounds, cfg.CannonsPerTeam)
	}
	want := []string{"drunk_commander", "two_platoons", "three_platoons", "four_platoons"}
	if strings.Join(cfg.StrategySet, ",") != strings.Join(want, ",") {
		t.Fatalf("expected strategy set %v, got %v", want, cfg.StrategySet)
	}
}

func TestLoad_EmptyPathUsesDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Rounds != Default().Rounds {
		t.Fatalf("expected default rounds, got %d", cfg.Rounds)
	}
}

func TestLoad_YAMLOverridesDefaults(t *testing.T) {
	path := writeFile(t, "duel.yaml", `
rounds: 500
cannons_per_team: 10
seed: 7
strategy_set: [two_platoons, five_squads]
strategies:
  - id: five_squads
    name: Five Squads
    kind: group
    groups: 5
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Rounds != 500 || cfg.CannonsPerTeam != 10 || cfg.Seed != 7 {
		t.Fatalf("yaml values not applied: %+v", cfg)
	}
	if cfg.Workers != 8 || cfg.HitChance != 0.1 {
		t.Fatalf("unset keys should keep defaults, got workers=%d hit=%v", cfg.Workers, cfg.HitChance)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected valid config, got %v", err)
	}
	defs, err := cfg.ResolveStrategies()
	if err != nil {
		t.Fatalf("ResolveStrategies failed: %v", err)
	}
	if len(defs) != 2 || defs[1].Groups != 5 || defs[1].HitChance != 0.1 {
		t.Fatalf("unexpected resolved strategies: %+v", defs)
	}
}

func TestLoad_EnvOverridesYAML(t *testing.T) {
	path := writeFile(t, "duel.yaml", "rounds: 500\nworkers: 2\n")
	t.Setenv("DUEL_ROUNDS", "250")
	t.Setenv("DUEL_STRATEGY_SET", "four_platoons,drunk_commander")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Rounds != 250 {
		t.Fatalf("expected env rounds=250, got %d", cfg.Rounds)
	}
	if cfg.Workers != 2 {
		t.Fatalf("expected yaml workers=2 to survive, got %d", cfg.Workers)
	}
	if len(cfg.StrategySet) != 2 || cfg.StrategySet[0] != "four_platoons" {
		t.Fatalf("expected env strategy set, got %v", cfg.StrategySet)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing config file")
	}
}

func TestLoad_BadEnv(t *testing.T) {
	t.Setenv("DUEL_ROUNDS", "many")
	if _, err := Load(""); err == nil {
		t.Fatal("expected error for non-numeric DUEL_ROUNDS")
	}
}

func TestLoad_AssetsFile(t *testing.T) {
	cfg, err := Load(filepath.Join("..", "..", "assets", "duel.yaml"))
	if err != nil {
		t.Fatalf("Load assets/duel.yaml failed: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("assets/duel.yaml should validate, got %v", err)
	}
}

// --- Validate ---

func TestValidate_Rejects(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*SimConfig)
	}{
		{"zero rounds", func(c *SimConfig) { c.Rounds = 0 }},
		{"negative rounds", func(c *SimConfig) { c.Rounds = -5 }},
		{"zero cannons", func(c *SimConfig) { c.CannonsPerTeam = 0 }},
		{"negative workers", func(c *SimConfig) { c.Workers = -1 }},
		{"zero max battle rounds", func(c *SimConfig) { c.MaxBattleRounds = 0 }},
		{"zero hit chance", func(c *SimConfig) { c.HitChance = 0 }},
		{"hit chance above one", func(c *SimConfig) { c.HitChance = 1.5 }},
		{"empty strategy set", func(c *SimConfig) { c.StrategySet = nil }},
		{"unknown strategy", func(c *SimConfig) { c.StrategySet = []string{"cavalry"} }},
		{"duplicate in set", func(c *SimConfig) { c.StrategySet = []string{"two_platoons", "two_platoons"} }},
		{"custom without id", func(c *SimConfig) { c.Strategies = []StrategyDef{{Kind: KindDrunk}} }},
		{"custom bad kind", func(c *SimConfig) { c.Strategies = []StrategyDef{{ID: "x", Kind: "artillery"}} }},
		{"custom zero groups", func(c *SimConfig) { c.Strategies = []StrategyDef{{ID: "x", Kind: KindGroup}} }},
		{"custom duplicate", func(c *SimConfig) {
			c.Strategies = []StrategyDef{{ID: "x", Kind: KindDrunk}, {ID: "x", Kind: KindDrunk}}
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !errors.Is(err, ErrInvalidConfig) {
				t.Fatalf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestResolveStrategies_CustomShadowsBuiltin(t *testing.T) {
	cfg := Default()
	cfg.Strategies = []StrategyDef{{ID: "two_platoons", Name: "Two Sloppy Platoons", Kind: KindGroup, Groups: 2, HitChance: 0.05}}
	defs, err := cfg.ResolveStrategies()
	if err != nil {
		t.Fatalf("ResolveStrategies failed: %v", err)
	}
	if defs[1].Name != "Two Sloppy Platoons" || defs[1].HitChance != 0.05 {
		t.Fatalf("expected custom definition to shadow builtin, got %+v", defs[1])
	}
	if defs[0].HitChance != 0.1 {
		t.Fatalf("expected builtin to inherit run-wide hit chance, got %v", defs[0].HitChance)
	}
}
