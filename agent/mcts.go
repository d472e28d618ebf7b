package agent

import (
	"liarspoker/game"
	"liarspoker/searcher"
)

// DefaultEpisodes is the search budget per move of agents built by New.
const DefaultEpisodes = 1000

type mctsAgent struct {
	mcts *searcher.MCTS
}

// NewMCTSAgent returns an agent searching episodes determinized playouts per
// move on the given number of goroutines.
func NewMCTSAgent(episodes, goroutines int, seed uint64) Agent {
	return mctsAgent{mcts: searcher.NewMCTS(goroutines, searcher.WithEpisodes(episodes), searcher.WithSeed(seed))}
}

func (a mctsAgent) FindMove(state *game.State) (game.Action, error) {
	return a.mcts.FindMove(state)
}
