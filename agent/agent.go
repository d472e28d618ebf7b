package agent

import (
	"fmt"

	"liarspoker/baseline"
	"liarspoker/game"
)

// Agent kinds accepted by New.
const (
	Baseline   = "baseline"
	BaselineEV = "baseline-ev"
	Random     = "random"
	MCTS       = "mcts"
)

type Agent interface {
	// FindMove returns the action the agent plays as the player to move in state
	FindMove(state *game.State) (game.Action, error)
}

// New builds an agent of the given kind. Baseline kinds play through engine,
// the random and search kinds draw from seed.
func New(kind string, engine *baseline.Engine, seed uint64) (Agent, error) {
	switch kind {
	case Baseline:
		return NewBaselineAgent(engine, false), nil
	case BaselineEV:
		return NewBaselineAgent(engine, true), nil
	case Random:
		return NewRandomAgent(seed), nil
	case MCTS:
		return NewMCTSAgent(DefaultEpisodes, 1, seed), nil
	default:
		return nil, fmt.Errorf("unknown agent kind %q", kind)
	}
}
