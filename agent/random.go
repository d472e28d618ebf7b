package agent

import (
	"fmt"
	"sync"

	"liarspoker/game"

	"golang.org/x/exp/rand"
)

type randomAgent struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewRandomAgent returns an agent playing a uniformly random legal move.
func NewRandomAgent(seed uint64) Agent {
	return &randomAgent{rng: rand.New(rand.NewSource(seed))}
}

func (a *randomAgent) FindMove(state *game.State) (game.Action, error) {
	moves := state.LegalMoves()
	if len(moves) == 0 {
		return game.NoAction, fmt.Errorf("%w: no legal moves", game.ErrPreconditionViolated)
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	return moves[a.rng.Intn(len(moves))], nil
}
