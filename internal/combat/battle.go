package combat

import (
	"errors"
	"fmt"
)

// DefaultMaxRounds bounds a single battle. Each shot has a fixed nonzero hit
// chance, so real battles end long before this.
const DefaultMaxRounds = 10000

var ErrBattleStalled = errors.New("battle did not terminate")

// Env is the per-worker battle context. Round is reset by RunBattle.
type Env struct {
	Round     int
	MaxRounds int
	Rng       Rand
	Emit      func(Event)
}

// RunBattle fights team1 against team2 until at least one side has no
// operational cannon. Each round team1 fires its whole volley before team2
// fires back. It returns the surviving team's name, or Draw.
func RunBattle(env *Env, team1, team2 *Team) (string, error) {
	maxRounds := env.MaxRounds
	if maxRounds <= 0 {
		maxRounds = DefaultMaxRounds
	}
	env.Round = 0
	for team1.AnyOperational() && team2.AnyOperational() {
		if env.Round >= maxRounds {
			return "", fmt.Errorf("%w: %s vs %s still standing after %d rounds (%d/%d cannons)",
				ErrBattleStalled, team1.Name, team2.Name, env.Round, team1.Operational(), team2.Operational())
		}
		env.Round++
		volley(env, team1, team2)
		volley(env, team2, team1)
	}

	outcome := Draw
	switch {
	case team1.AnyOperational():
		outcome = team1.Name
	case team2.AnyOperational():
		outcome = team2.Name
	}
	if env.Emit != nil {
		env.Emit(Event{Round: env.Round, Type: "Outcome", Payload: map[string]any{
			"winner":    outcome,
			"remaining": []int{team1.Operational(), team2.Operational()},
		}})
	}
	return outcome, nil
}

func volley(env *Env, attacker, defender *Team) {
	if env.Emit == nil {
		attacker.Strategy.Fire(env.Rng, attacker, defender)
		return
	}
	before := defender.disabledSet()
	attacker.Strategy.Fire(env.Rng, attacker, defender)
	disabled := []int{}
	for i, c := range defender.Cannons {
		if !c.Operational && !before[i] {
			disabled = append(disabled, i)
		}
	}
	env.Emit(Event{Round: env.Round, Type: "Volley", Payload: map[string]any{
		"attacker":  attacker.Name,
		"defender":  defender.Name,
		"firing":    attacker.Operational(),
		"disabled":  disabled,
		"remaining": defender.Operational(),
	}})
}
