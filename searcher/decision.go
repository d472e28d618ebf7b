package searcher

import (
	"errors"
	"fmt"
	"sync"

	"liarspoker/game"
)

var errNoChildren = errors.New("node has no children")

// decision is a tree node for a public bid history. Every determinization of
// the same history reaches the same node, since legal moves only depend on bids.
type decision struct {
	sync.RWMutex
	parent     *decision
	mover      int // Player whose move led here, -1 at the root
	player     int // Player to move
	unexplored []game.Action
	explored   []game.Action
	children   []*decision
	rewards    float64 // Scaled rewards of mover
	visits     float64
}

func newDecision(parent *decision, mover int, state *game.State) *decision {
	moves := state.LegalMoves()
	return &decision{
		parent:     parent,
		mover:      mover,
		player:     state.Player(),
		unexplored: moves,
		explored:   make([]game.Action, 0, len(moves)),
		children:   make([]*decision, 0, len(moves)),
	}
}

// SelectOrExpand descends one level. It expands the next unexplored move when
// there is one, otherwise selects the child with the highest UCT value. Both
// apply a temporary loss to the child until its episode is backed up. The
// returned flag is false once the descent should stop.
func (d *decision) SelectOrExpand(state *game.State) (*decision, *game.State, bool, error) {
	d.Lock()
	defer d.Unlock()

	if len(d.unexplored) == 0 && len(d.children) == 0 { // Terminal node
		return d, state, false, nil
	}

	if len(d.unexplored) > 0 { // Expandable node
		move := d.unexplored[0]
		next, err := state.Play(move)
		if err != nil {
			return nil, nil, false, fmt.Errorf("failed to expand move %d: %w", move, err)
		}
		child := newDecision(d, d.player, next)
		d.unexplored = d.unexplored[1:]
		d.explored = append(d.explored, move)
		d.children = append(d.children, child)
		child.applyLoss()
		return child, next, false, nil
	}

	// Fully expanded node
	ith := d.pickChild()
	next, err := state.Play(d.explored[ith])
	if err != nil {
		return nil, nil, false, fmt.Errorf("failed to select move %d: %w", d.explored[ith], err)
	}
	child := d.children[ith]
	child.applyLoss()
	return child, next, true, nil
}

func (d *decision) pickChild() int {
	policy := newUCT(CSquared, max(d.visits, 1))

	maxIndex := -1
	maxScore := 0.0
	for i, child := range d.children {
		score := child.score(policy)
		if maxIndex < 0 || score > maxScore {
			maxIndex, maxScore = i, score
		}
	}
	return maxIndex
}

func (d *decision) score(policy uct) float64 {
	d.RLock()
	defer d.RUnlock()

	return policy.evaluate(d.rewards, d.visits)
}

func (d *decision) applyLoss() {
	d.Lock()
	defer d.Unlock()

	d.rewards += Loss
	d.visits++
}

// Backup credits the mover with its scaled reward and returns the parent.
func (d *decision) Backup(rewards []float64) *decision {
	d.Lock()
	defer d.Unlock()

	if d.parent != nil { // Non-root node
		d.rewards -= Loss
		d.visits--
	}
	if d.mover >= 0 {
		d.rewards += rewards[d.mover]
	}
	d.visits++

	return d.parent
}

func (d *decision) Visits() float64 {
	d.RLock()
	defer d.RUnlock()

	return d.visits
}

// bestMove returns the most visited move, the first one on ties.
func (d *decision) bestMove() (game.Action, error) {
	d.RLock()
	defer d.RUnlock()

	if len(d.children) == 0 {
		return game.NoAction, errNoChildren
	}
	bestIndex, maxVisits := 0, d.children[0].Visits()
	for i, child := range d.children {
		if v := child.Visits(); v > maxVisits {
			bestIndex, maxVisits = i, v
		}
	}
	return d.explored[bestIndex], nil
}

// Policy is the share of visits of each explored move.
func (d *decision) Policy() map[game.Action]float64 {
	d.RLock()
	defer d.RUnlock()

	total := 0.0
	visits := make([]float64, len(d.children))
	for i, child := range d.children {
		visits[i] = child.Visits()
		total += visits[i]
	}
	policy := make(map[game.Action]float64, len(d.children))
	for i, move := range d.explored {
		if total > 0 {
			policy[move] = visits[i] / total
		}
	}
	return policy
}
