package agent

import (
	"fmt"

	"liarspoker/baseline"
	"liarspoker/game"
)

type baselineAgent struct {
	engine *baseline.Engine
	useEV  bool
}

// NewBaselineAgent returns an agent playing the baseline engine's choice. The
// engine may be shared with any number of other agents.
func NewBaselineAgent(engine *baseline.Engine, useEV bool) Agent {
	return baselineAgent{engine: engine, useEV: useEV}
}

func (a baselineAgent) FindMove(state *game.State) (game.Action, error) {
	if state.IsTerminal() {
		return game.NoAction, fmt.Errorf("%w: round is over", game.ErrPreconditionViolated)
	}
	hand := state.Hand(state.Player())
	return a.engine.NextAction(hand, state.BidState(), a.useEV)
}
