package config

// Strategy kinds understood by the combat roster.
const (
	KindDrunk = "drunk"
	KindGroup = "group"
)

type SimConfig struct {
	Rounds          int           `yaml:"rounds"`
	CannonsPerTeam  int           `yaml:"cannons_per_team"`
	Workers         int           `yaml:"workers"`
	Seed            int64         `yaml:"seed"`
	MaxBattleRounds int           `yaml:"max_battle_rounds"`
	HitChance       float64       `yaml:"hit_chance"`
	StrategySet     []string      `yaml:"strategy_set"`
	Strategies      []StrategyDef `yaml:"strategies"`
	Locale          string        `yaml:"locale"`
}

// StrategyDef describes one named strategy. HitChance 0 means the run-wide
// hit chance.
type StrategyDef struct {
	ID        string  `yaml:"id"`
	Name      string  `yaml:"name"`
	Kind      string  `yaml:"kind"`
	Groups    int     `yaml:"groups"`
	HitChance float64 `yaml:"hit_chance"`
	Note      string  `yaml:"note"`
}

// Builtins are the four reference strategies, in sweep order.
func Builtins() []StrategyDef {
	return []StrategyDef{
		{ID: "drunk_commander", Name: "Drunk Commander", Kind: KindDrunk, Groups: 1,
			Note: "every cannon fires at a random index, disabled or not"},
		{ID: "two_platoons", Name: "Two Platoons", Kind: KindGroup, Groups: 2},
		{ID: "three_platoons", Name: "Three Platoons", Kind: KindGroup, Groups: 3},
		{ID: "four_platoons", Name: "Four Platoons", Kind: KindGroup, Groups: 4},
	}
}

func Default() SimConfig {
	builtins := Builtins()
	set := make([]string, len(builtins))
	for i, b := range builtins {
		set[i] = b.ID
	}
	return SimConfig{
		Rounds:          100000,
		CannonsPerTeam:  12,
		Workers:         8,
		MaxBattleRounds: 10000,
		HitChance:       0.1,
		StrategySet:     set,
		Locale:          "en",
	}
}

// ResolveStrategies returns the definitions named by StrategySet, in order.
// Custom definitions shadow builtins with the same id.
func (c *SimConfig) ResolveStrategies() ([]StrategyDef, error) {
	byID := map[string]StrategyDef{}
	for _, b := range Builtins() {
		byID[b.ID] = b
	}
	for _, s := range c.Strategies {
		byID[s.ID] = s
	}
	out := make([]StrategyDef, 0, len(c.StrategySet))
	for _, id := range c.StrategySet {
		def, ok := byID[id]
		if !ok {
			return nil, invalidf("unknown strategy %q in strategy_set", id)
		}
		if def.HitChance == 0 {
			def.HitChance = c.HitChance
		}
		if def.Name == "" {
			def.Name = def.ID
		}
		out = append(out, def)
	}
	return out, nil
}
