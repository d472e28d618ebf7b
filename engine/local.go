package engine

import (
	"context"
	"fmt"
	"time"

	"liarspoker/agent"
	"liarspoker/experiments/metrics"
	"liarspoker/game"

	"github.com/rs/zerolog/log"
)

type Option func(e *Engine)

func WithMetrics() Option {
	return func(e *Engine) {
		e.metrics = metrics.NewCollector()
	}
}

// Engine plays a single round, asking each player's agent for a move in turn.
type Engine struct {
	State   *game.State
	Agents  []agent.Agent
	players []string
	metrics metrics.Collector
}

func LocalEngine(players []string, agents []agent.Agent, state *game.State, options ...Option) (*Engine, error) {
	if len(players) != len(agents) {
		return nil, fmt.Errorf("number of players %d does not match number of agents %d", len(players), len(agents))
	}
	if len(players) != state.Params().NumPlayers {
		return nil, fmt.Errorf("number of players %d does not match game parameters %s", len(players), state.Params())
	}

	e := &Engine{
		State:   state,
		Agents:  agents,
		players: players,
		metrics: metrics.NewDummyCollector(),
	}
	for _, option := range options {
		option(e)
	}
	return e, nil
}

// Run plays the round until it is over and settles it.
func (e *Engine) Run(ctx context.Context) (Round, error) {
	e.metrics.Start(e.State.Player())
	log.Debug().Msgf("%s is opening, hands %s", e.players[e.State.Player()], game.HandsString(e.State.Hands()))

	for moves := 0; !e.State.IsTerminal(); moves++ {
		if moves >= MaxMoves {
			return Round{}, fmt.Errorf("round exceeded %d moves", MaxMoves)
		}
		if err := ctx.Err(); err != nil {
			return Round{}, err
		}

		player := e.State.Player()
		isRebid := e.State.IsRebid()
		start := time.Now()

		action, err := e.Agents[player].FindMove(e.State)
		if err != nil {
			return Round{}, fmt.Errorf("failed to find move for %s: %w", e.players[player], err)
		}
		next, err := e.State.Play(action)
		if err != nil {
			return Round{}, fmt.Errorf("failed to play move for %s: %w", e.players[player], err)
		}
		move, err := e.State.Actions().Decode(action)
		if err != nil {
			return Round{}, err
		}

		e.metrics.AddMove(player, move, isRebid, time.Since(start))
		log.Debug().Msgf("%s move (hand %s): %s", e.players[player], e.State.Hand(player), move)

		e.State = next
	}

	result, err := e.State.Settle()
	if err != nil {
		return Round{}, fmt.Errorf("failed to settle round: %w", err)
	}
	roundMetric, moveMetrics, playerMetrics := e.metrics.Complete(e.State, result)

	outcome := "loss"
	if result.Won {
		outcome = "win"
	}
	log.Debug().Msgf("%s for %s with bid %s and total count %d", outcome, e.players[result.Bidder], result.Bid, result.Total)

	return Round{
		Final:         e.State,
		Result:        result,
		RoundMetric:   roundMetric,
		MoveMetrics:   moveMetrics,
		PlayerMetrics: playerMetrics,
	}, nil
}
