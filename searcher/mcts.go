package searcher

import (
	"context"
	"fmt"
	"sync"
	"time"

	"liarspoker/game"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
	"golang.org/x/sync/errgroup"
)

type Option func(m *MCTS)

// MCTS searches the public bid history with tree parallelization. Each episode
// deals fresh hands to the opponents of the searching player, replays the bids
// on them and plays out the rest of the round at random.
type MCTS struct {
	mu         sync.Mutex
	goroutines int
	episodes   int
	duration   time.Duration
	rng        *rand.Rand
	metrics    MetricsCollector
}

func WithEpisodes(episodes int) Option {
	return func(m *MCTS) {
		if episodes > 0 {
			m.episodes = episodes
		}
	}
}

func WithDuration(duration time.Duration) Option {
	return func(m *MCTS) {
		if duration > 0 {
			m.duration = duration
		}
	}
}

func WithSeed(seed uint64) Option {
	return func(m *MCTS) {
		m.rng = rand.New(rand.NewSource(seed))
	}
}

func WithMetrics() Option {
	return func(m *MCTS) {
		m.metrics = NewMetricsCollector()
	}
}

func NewMCTS(goroutines int, options ...Option) *MCTS {
	m := &MCTS{ // Default values
		goroutines: goroutines,
		rng:        rand.New(rand.NewSource(uint64(time.Now().UnixNano()))),
		metrics:    NewNoMetricsCollector(),
	}
	for _, option := range options {
		option(m)
	}
	if m.goroutines < 1 {
		panic("Must search with at least one goroutine")
	}
	if m.episodes <= 0 && m.duration <= 0 {
		panic("Must specify search episodes or duration")
	}
	return m
}

// FindMove searches from state and returns the most visited move of the player to move.
func (m *MCTS) FindMove(state *game.State) (game.Action, error) {
	root, err := m.search(state)
	if err != nil {
		return game.NoAction, err
	}
	return root.bestMove()
}

// Simulate searches from state and returns the share of visits of every move.
func (m *MCTS) Simulate(state *game.State) (map[game.Action]float64, MoveMetrics, error) {
	root, err := m.search(state)
	if err != nil {
		return nil, MoveMetrics{}, err
	}
	return root.Policy(), m.metrics.Complete(), nil
}

func (m *MCTS) search(state *game.State) (*decision, error) {
	if state.IsTerminal() {
		return nil, fmt.Errorf("%w: round is over", game.ErrPreconditionViolated)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	rngs := make([]*rand.Rand, m.goroutines)
	for i := range rngs {
		rngs[i] = rand.New(rand.NewSource(m.rng.Uint64()))
	}

	root := newDecision(nil, -1, state)
	m.metrics.Start()
	var err error
	if m.episodes > 0 {
		err = m.iterate(root, state, rngs)
	} else {
		err = m.countdown(root, state, rngs)
	}
	if err != nil {
		return nil, err
	}

	metric := m.metrics.Complete()
	log.Debug().Msgf("player %d searched %d episodes, %d nodes in %s", state.Player(), metric.Episodes, metric.Nodes, metric.Duration)
	return root, nil
}

func (m *MCTS) iterate(root *decision, state *game.State, rngs []*rand.Rand) error {
	task := make(chan any, m.episodes)
	for i := 0; i < m.episodes; i++ {
		task <- nil
	}
	close(task)

	var g errgroup.Group
	for _, rng := range rngs {
		g.Go(func() error {
			for range task {
				if err := m.simulate(root, state, rng); err != nil {
					return err
				}
				m.metrics.AddEpisode()
			}
			return nil
		})
	}
	return g.Wait()
}

func (m *MCTS) countdown(root *decision, state *game.State, rngs []*rand.Rand) error {
	done := make(chan any)
	g, ctx := errgroup.WithContext(context.Background())

	for _, rng := range rngs {
		g.Go(func() error {
			for {
				select {
				case <-done:
					return nil
				case <-ctx.Done():
					return nil
				default:
					if err := m.simulate(root, state, rng); err != nil {
						return err
					}
					m.metrics.AddEpisode()
				}
			}
		})
	}

	select {
	case <-time.After(m.duration):
	case <-ctx.Done():
	}
	close(done)
	return g.Wait()
}

func (m *MCTS) simulate(root *decision, state *game.State, rng *rand.Rand) error {
	sample, err := determinize(state, rng)
	if err != nil {
		return err
	}
	node, leaf, err := m.selectThenExpand(root, sample)
	if err != nil {
		return err
	}
	result, err := rollout(leaf, rng)
	if err != nil {
		return err
	}
	backup(node, scaleRewards(state.Params(), result.Rewards))
	return nil
}

// determinize deals fresh hands to every opponent of the player to move and
// replays the round so far on them.
func determinize(state *game.State, rng *rand.Rand) (*game.State, error) {
	me := state.Player()
	hands := game.Deal(state.Params(), rng)
	hands[me] = state.Hand(me)

	history := state.History()
	starting := me
	if len(history) > 0 {
		starting = history[0].Player
	}
	sample, err := game.NewState(state.Actions(), hands, starting)
	if err != nil {
		return nil, err
	}
	for _, turn := range history {
		sample, err = sample.Play(turn.Move.Action)
		if err != nil {
			return nil, fmt.Errorf("failed to replay history: %w", err)
		}
	}
	return sample, nil
}

func (m *MCTS) selectThenExpand(root *decision, state *game.State) (*decision, *game.State, error) {
	parent := root
	child, state, selected, err := parent.SelectOrExpand(state)
	for err == nil && selected && child != parent {
		parent = child
		child, state, selected, err = parent.SelectOrExpand(state)
	}
	if err != nil {
		return nil, nil, err
	}
	if child != parent {
		m.metrics.AddNode()
	}
	return child, state, nil
}

func rollout(state *game.State, rng *rand.Rand) (game.Result, error) {
	var err error
	moves := state.LegalMoves()
	for len(moves) > 0 { // Random rollout policy
		state, err = state.Play(moves[rng.Intn(len(moves))])
		if err != nil {
			return game.Result{}, err
		}
		moves = state.LegalMoves()
	}
	return state.Settle()
}

func backup(newNode *decision, rewards []float64) {
	node := newNode
	for node != nil {
		node = node.Backup(rewards)
	}
}
