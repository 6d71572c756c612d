package combat

import (
	"errors"
	"fmt"

	"cannon_duel/internal/config"
)

// DefaultHitChance is the probability that a single shot disables its target.
const DefaultHitChance = 0.1

var ErrUnknownStrategy = errors.New("unknown strategy")

// Rand is the slice of *rand.Rand the strategies draw from.
type Rand interface {
	Intn(n int) int
	Float64() float64
}

// Strategy fires one volley from attacker at defender, disabling defender
// cannons in place.
type Strategy interface {
	Fire(rng Rand, attacker, defender *Team)
}

// DrunkCommander sends every operational cannon at a uniformly random
// defender index. Disabled cannons stay in the draw, so a hit on one is
// wasted.
type DrunkCommander struct {
	HitChance float64
}

func (s DrunkCommander) Fire(rng Rand, attacker, defender *Team) {
	if len(defender.Cannons) == 0 {
		return
	}
	p := hitChance(s.HitChance)
	for i := range attacker.Cannons {
		if !attacker.Cannons[i].Operational {
			continue
		}
		target := rng.Intn(len(defender.Cannons))
		if rng.Float64() < p {
			defender.Cannons[target].Operational = false
		}
	}
}

// GroupFire splits the attacker into Groups contiguous platoons. Each platoon
// picks the defender's first operational cannon once and every operational
// cannon in it fires at that index, even after an earlier shot from the same
// platoon has already disabled it.
type GroupFire struct {
	Groups    int
	HitChance float64
}

func (s GroupFire) Fire(rng Rand, attacker, defender *Team) {
	p := hitChance(s.HitChance)
	for _, g := range Partition(len(attacker.Cannons), s.Groups) {
		target := defender.FirstOperational()
		if target < 0 {
			continue
		}
		for i := g.Start; i < g.End; i++ {
			if !attacker.Cannons[i].Operational {
				continue
			}
			if rng.Float64() < p {
				defender.Cannons[target].Operational = false
			}
		}
	}
}

func hitChance(p float64) float64 {
	if p <= 0 {
		return DefaultHitChance
	}
	return p
}

// Group is a half-open index range [Start, End) of a team's cannons.
type Group struct {
	Start, End int
}

func (g Group) Len() int { return g.End - g.Start }

// Partition chunks total cannons into groups of floor(total/groups); the last
// group runs to the end and absorbs the remainder. With total < groups the
// leading groups are empty.
func Partition(total, groups int) []Group {
	if groups < 1 {
		groups = 1
	}
	size := total / groups
	out := make([]Group, groups)
	for g := range out {
		out[g] = Group{Start: g * size, End: (g + 1) * size}
	}
	out[groups-1].End = total
	return out
}

// --- roster ---

type NamedStrategy struct {
	ID       string
	Name     string
	Strategy Strategy
}

type Roster struct {
	order []NamedStrategy
	byID  map[string]int
}

// NewRoster builds strategies from resolved config definitions, keeping
// their order.
func NewRoster(defs []config.StrategyDef) (*Roster, error) {
	r := &Roster{byID: map[string]int{}}
	for _, d := range defs {
		var s Strategy
		switch d.Kind {
		case config.KindDrunk:
			s = DrunkCommander{HitChance: d.HitChance}
		case config.KindGroup:
			if d.Groups < 1 {
				return nil, fmt.Errorf("strategy %q: groups must be >= 1, got %d", d.ID, d.Groups)
			}
			s = GroupFire{Groups: d.Groups, HitChance: d.HitChance}
		default:
			return nil, fmt.Errorf("%w: %q has kind %q", ErrUnknownStrategy, d.ID, d.Kind)
		}
		if _, dup := r.byID[d.ID]; dup {
			return nil, fmt.Errorf("strategy %q defined twice", d.ID)
		}
		name := d.Name
		if name == "" {
			name = d.ID
		}
		r.byID[d.ID] = len(r.order)
		r.order = append(r.order, NamedStrategy{ID: d.ID, Name: name, Strategy: s})
	}
	return r, nil
}

// ReferenceRoster is the four-strategy set of the reference sweep.
func ReferenceRoster() *Roster {
	r, err := NewRoster(config.Builtins())
	if err != nil {
		panic(err)
	}
	return r
}

func (r *Roster) Strategies() []NamedStrategy {
	return append([]NamedStrategy(nil), r.order...)
}

func (r *Roster) Lookup(id string) (NamedStrategy, error) {
	i, ok := r.byID[id]
	if !ok {
		return NamedStrategy{}, fmt.Errorf("%w: %q", ErrUnknownStrategy, id)
	}
	return r.order[i], nil
}

func (r *Roster) Len() int { return len(r.order) }
