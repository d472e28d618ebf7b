package baseline

import (
	"fmt"
	"time"

	"liarspoker/game"

	"github.com/rs/zerolog/log"
)

type Option func(e *Engine)

// WithActionMap shares a prebuilt action map instead of building one.
func WithActionMap(am *game.ActionMap) Option {
	return func(e *Engine) {
		if am != nil {
			e.actions = am
		}
	}
}

// WithTable shares a prebuilt probability table instead of building one.
func WithTable(t *Table) Option {
	return func(e *Engine) {
		if t != nil {
			e.table = t
		}
	}
}

func WithMetrics() Option {
	return func(e *Engine) {
		e.metrics = NewMetricsCollector()
	}
}

// Engine picks the next action from the probability table: the greediest
// new bid, unless challenging (or counting on a rebid) is at least as good.
// It keeps no per-decision state and is safe for concurrent use.
type Engine struct {
	params  game.Params
	actions *game.ActionMap
	table   *Table
	metrics MetricsCollector
}

func NewEngine(p game.Params, options ...Option) (*Engine, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	e := &Engine{ // Default values
		params:  p,
		metrics: NewNoMetricsCollector(),
	}
	for _, option := range options {
		option(e)
	}
	if e.actions == nil {
		e.actions = game.NewActionMap(p)
	} else if e.actions.Params() != p {
		return nil, fmt.Errorf("%w: action map built for %s, engine for %s", game.ErrInvalidParams, e.actions.Params(), p)
	}
	if e.table == nil {
		e.table = NewTable(p)
	} else if e.table.Params() != p {
		return nil, fmt.Errorf("%w: table built for %s, engine for %s", game.ErrInvalidParams, e.table.Params(), p)
	}
	return e, nil
}

func (e *Engine) Params() game.Params {
	return e.params
}

func (e *Engine) Actions() *game.ActionMap {
	return e.actions
}

func (e *Engine) Table() *Table {
	return e.table
}

func (e *Engine) Metrics() DecisionMetrics {
	return e.metrics.Complete()
}

// Decision carries the chosen action and the probabilities it was chosen from.
type Decision struct {
	Action     game.Action
	CountDiff  int     // Count difference of the outstanding bid, 0 on an opening
	PChallenge float64 // Chance that challenging the outstanding bid wins
	PRebid     float64 // Chance that the outstanding bid stands
	BestNew    game.Action
	PBestNew   float64 // -1 when no greater bid exists
}

// Decide scans bids in ascending identifier order and keeps the first one with
// the highest success probability. On an opening that bid is played. Otherwise
// it is compared against challenging, or against counting when the decider is
// on a rebid, and ties go to the challenge or count. With useEV every
// probability p becomes reward*(2p-1), with the win reward for bids and counts
// and the challenge reward for challenges.
func (e *Engine) Decide(hand game.Hand, bid game.BidState, useEV bool) (Decision, error) {
	start := time.Now()
	if hand.IsZero() {
		return Decision{}, fmt.Errorf("%w: decision needs a hand", game.ErrPreconditionViolated)
	}

	if bid.IsOpening() {
		best, p, err := e.findBest(hand, 1)
		if err != nil {
			return Decision{}, err
		}
		d := Decision{Action: best, BestNew: best, PBestNew: p}
		e.record(d, hand, bid, openingKind, start)
		return d, nil
	}

	if bid.Move.Action == game.Challenge {
		return Decision{}, fmt.Errorf("%w: outstanding bid cannot be a challenge", game.ErrInvalidAction)
	}
	m, err := e.actions.Decode(bid.Move.Action)
	if err != nil {
		return Decision{}, err
	}
	if !bid.Move.Bid.IsZero() && bid.Move.Bid != m.Bid {
		return Decision{}, fmt.Errorf("%w: action %d is %s, not %s", game.ErrInvalidBid, m.Action, m.Bid, bid.Move.Bid)
	}
	bid.Move = m
	diff, err := bid.CountDiff(hand)
	if err != nil {
		return Decision{}, err
	}

	best, pBest, err := e.findBest(hand, bid.Move.Action+1)
	if err != nil {
		return Decision{}, err
	}
	d := Decision{
		CountDiff:  diff,
		PChallenge: e.table.ChallengeSuccess(diff),
		PRebid:     e.table.BidSuccess(diff),
		BestNew:    best,
		PBestNew:   pBest,
	}

	d.Action = game.Challenge
	kind := challengeKind
	if best != game.NoAction && !e.prefersConservative(d, bid.IsRebid, useEV) {
		d.Action = best
		kind = newBidKind
	}
	e.record(d, hand, bid, kind, start)
	return d, nil
}

func (e *Engine) prefersConservative(d Decision, isRebid bool, useEV bool) bool {
	conservative, reward := d.PChallenge, e.params.ChallengeReward()
	if isRebid {
		conservative, reward = d.PRebid, e.params.WinReward()
	}
	escalate := d.PBestNew
	if useEV {
		conservative = expectedValue(conservative, reward)
		escalate = expectedValue(escalate, e.params.WinReward())
	}
	return conservative >= escalate
}

// findBest returns the first bid from the given identifier on with the
// highest success probability, or NoAction when there is none.
func (e *Engine) findBest(hand game.Hand, from game.Action) (game.Action, float64, error) {
	best, pBest := game.NoAction, -1.0
	for a := from; int(a) <= e.actions.Size(); a++ {
		m, err := e.actions.Decode(a)
		if err != nil {
			return game.NoAction, 0, err
		}
		p := e.table.BidSuccess(m.Bid.Count - hand.Count(m.Bid.Digit))
		if p > pBest {
			best, pBest = a, p
		}
	}
	return best, pBest, nil
}

func (e *Engine) record(d Decision, hand game.Hand, bid game.BidState, kind decisionKind, start time.Time) {
	e.metrics.AddDecision(kind, time.Since(start))
	log.Debug().
		Str("hand", hand.String()).
		Str("bid", bid.String()).
		Bool("rebid", bid.IsRebid).
		Int("count_diff", d.CountDiff).
		Float64("p_challenge", d.PChallenge).
		Float64("p_best", d.PBestNew).
		Int("action", int(d.Action)).
		Msg("baseline decision")
}

// NextAction returns the identifier of the chosen action.
func (e *Engine) NextAction(hand game.Hand, bid game.BidState, useEV bool) (game.Action, error) {
	d, err := e.Decide(hand, bid, useEV)
	if err != nil {
		return game.NoAction, err
	}
	return d.Action, nil
}

// NextActionText returns the chosen action as bid text or "challenge".
func (e *Engine) NextActionText(hand game.Hand, bid game.BidState, useEV bool) (string, error) {
	a, err := e.NextAction(hand, bid, useEV)
	if err != nil {
		return "", err
	}
	return e.actions.Text(a)
}

// expectedValue maps a win probability onto [-reward, reward], a coin flip being worth 0.
func expectedValue(p float64, reward int) float64 {
	return float64(reward) * (2*p - 1)
}
