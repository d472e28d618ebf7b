package baseline

import (
	"sync"
	"testing"

	"liarspoker/game"

	"github.com/stretchr/testify/require"
)

func newTestEngine(t *testing.T, options ...Option) *Engine {
	t.Helper()
	e, err := NewEngine(standard, options...)
	require.NoError(t, err)
	return e
}

func hand(t *testing.T, e *Engine, digits string) game.Hand {
	t.Helper()
	h, err := game.NewHand(e.Params(), digits)
	require.NoError(t, err)
	return h
}

func bidState(t *testing.T, e *Engine, text string, isRebid bool) game.BidState {
	t.Helper()
	b, err := game.NewBidState(e.Actions(), text, isRebid)
	require.NoError(t, err)
	return b
}

func TestDecide(t *testing.T) {
	t.Run("opening with the first certain bid", func(t *testing.T) {
		e := newTestEngine(t)

		d, err := e.Decide(hand(t, e, "111"), game.NoBid, false)

		require.NoError(t, err)
		require.Equal(t, game.Action(1), d.Action)
		require.Equal(t, 1.0, d.PBestNew)
		text, err := e.NextActionText(hand(t, e, "111"), game.NoBid, false)
		require.NoError(t, err)
		require.Equal(t, "1 of 1", text)
	})

	t.Run("challenging an unlikely bid", func(t *testing.T) {
		e := newTestEngine(t)

		d, err := e.Decide(hand(t, e, "111"), bidState(t, e, "7 of 1", false), false)

		require.NoError(t, err)
		require.Equal(t, game.Challenge, d.Action)
		require.Equal(t, 4, d.CountDiff)
		require.InDelta(t, 73.0/729, d.PRebid, 1e-9)
		require.InDelta(t, 656.0/729, d.PChallenge, 1e-9)
	})

	t.Run("raising when a certain bid remains", func(t *testing.T) {
		e := newTestEngine(t)

		a, err := e.NextAction(hand(t, e, "111"), bidState(t, e, "1 of 2", false), false)

		require.NoError(t, err)
		require.Equal(t, game.Action(4), a, "2 of 1 is certain for a hand of three ones")
	})

	t.Run("counting on a tie when rebidding", func(t *testing.T) {
		e := newTestEngine(t)
		h := hand(t, e, "123")

		rebid, err := e.NextAction(h, bidState(t, e, "2 of 1", true), false)
		require.NoError(t, err)
		require.Equal(t, game.Count, rebid, "Standing by the bid ties the best raise")

		fresh, err := e.NextAction(h, bidState(t, e, "2 of 1", false), false)
		require.NoError(t, err)
		require.Equal(t, game.Action(5), fresh, "The first of the equally likely raises wins")
	})

	t.Run("weighting by reward in expected value mode", func(t *testing.T) {
		e := newTestEngine(t)
		h := hand(t, e, "122")
		b := bidState(t, e, "4 of 1", false)

		byProbability, err := e.NextAction(h, b, false)
		require.NoError(t, err)
		require.Equal(t, game.Challenge, byProbability)

		byValue, err := e.NextAction(h, b, true)
		require.NoError(t, err)
		text, err := e.Actions().Text(byValue)
		require.NoError(t, err)
		require.Equal(t, "4 of 2", text)
	})

	t.Run("challenging on an exact tie", func(t *testing.T) {
		lo := -(standard.HandLength - 1)
		size := standard.TotalDigits() - lo + 1
		flat := &Table{params: standard, minDiff: lo, unknown: standard.UnknownDigits(), bid: make([]float64, size), challenge: make([]float64, size)}
		for i := range flat.bid {
			flat.bid[i], flat.challenge[i] = 0.5, 0.5
		}
		e := newTestEngine(t, WithTable(flat))

		d, err := e.Decide(hand(t, e, "123"), bidState(t, e, "2 of 1", false), false)

		require.NoError(t, err)
		require.Equal(t, 0.5, d.PChallenge)
		require.Equal(t, 0.5, d.PBestNew)
		require.Equal(t, game.Challenge, d.Action)
	})

	t.Run("challenging the greatest bid", func(t *testing.T) {
		e := newTestEngine(t)

		d, err := e.Decide(hand(t, e, "111"), bidState(t, e, "9 of 3", false), false)

		require.NoError(t, err)
		require.Equal(t, game.Challenge, d.Action)
		require.Equal(t, game.NoAction, d.BestNew)
		require.Equal(t, -1.0, d.PBestNew)
	})

	t.Run("agreeing across modes when rewards match", func(t *testing.T) {
		two := game.Params{HandLength: 3, NumDigits: 3, NumPlayers: 2}
		for _, p := range []game.Params{standard, two} {
			e, err := NewEngine(p)
			require.NoError(t, err)
			for _, digits := range []string{"111", "112", "123", "132", "222", "233", "321", "333"} {
				h, err := game.NewHand(p, digits)
				require.NoError(t, err)
				for a := game.Action(1); int(a) <= e.Actions().Size(); a++ {
					for _, isRebid := range []bool{true, false} {
						if p != two && !isRebid {
							continue // rewards differ outside rebids with more than two players
						}
						b, err := game.BidStateOf(e.Actions(), a, isRebid)
						require.NoError(t, err)
						byProbability, err := e.NextAction(h, b, false)
						require.NoError(t, err)
						byValue, err := e.NextAction(h, b, true)
						require.NoError(t, err)
						require.Equal(t, byProbability, byValue, "%s: hand %s against %s", p, digits, b)
					}
				}
			}
		}
	})

	t.Run("playing the demonstration hands", func(t *testing.T) {
		e := newTestEngine(t)
		want := map[string][]game.Action{
			"111": {4, 4, 4, 7, 7, 7, 10, 10, 10, 13, 0, 0, 0, 0, 0, 0, 0, 0, 0},
			"121": {2, 4, 4, 5, 7, 7, 8, 10, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0},
			"132": {2, 3, 4, 5, 6, 7, 8, 9, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0},
		}
		for digits, actions := range want {
			h := hand(t, e, digits)
			for i, expected := range actions {
				b, err := game.BidStateOf(e.Actions(), game.Action(i+1), false)
				require.NoError(t, err)
				a, err := e.NextAction(h, b, false)
				require.NoError(t, err)
				require.Equal(t, expected, a, "Hand %s against %s", digits, b)
			}
		}
	})

	t.Run("rejecting invalid input", func(t *testing.T) {
		e := newTestEngine(t)
		h := hand(t, e, "111")

		_, err := e.Decide(game.Hand{}, game.NoBid, false)
		require.ErrorIs(t, err, game.ErrPreconditionViolated)

		_, err = e.Decide(h, game.BidState{Move: game.Move{Action: game.Challenge, Bid: game.Bid{Count: 1, Digit: 1}}}, false)
		require.ErrorIs(t, err, game.ErrInvalidAction)

		_, err = e.Decide(h, game.BidState{Move: game.Move{Action: 28, Bid: game.Bid{Count: 10, Digit: 1}}}, false)
		require.ErrorIs(t, err, game.ErrInvalidAction)

		_, err = e.Decide(h, game.BidState{Move: game.Move{Action: 19, Bid: game.Bid{Count: 1, Digit: 1}}}, false)
		require.ErrorIs(t, err, game.ErrInvalidBid)
	})

	t.Run("reading the outstanding bid from its identifier", func(t *testing.T) {
		e := newTestEngine(t)

		d, err := e.Decide(hand(t, e, "111"), game.BidState{Move: game.Move{Action: 19}}, false)

		require.NoError(t, err)
		require.Equal(t, game.Challenge, d.Action)
		require.Equal(t, 4, d.CountDiff)
	})

	t.Run("sharing one engine between goroutines", func(t *testing.T) {
		e := newTestEngine(t, WithMetrics())
		h := hand(t, e, "121")

		var wg sync.WaitGroup
		results := make([]game.Action, 16)
		for i := range results {
			wg.Add(1)
			go func() {
				defer wg.Done()
				a, err := e.NextAction(h, bidStateAt(e, game.Action(i%19+1)), false)
				if err == nil {
					results[i] = a
				} else {
					results[i] = game.NoAction
				}
			}()
		}
		wg.Wait()

		for i, a := range results {
			expected, err := e.NextAction(h, bidStateAt(e, game.Action(i%19+1)), false)
			require.NoError(t, err)
			require.Equal(t, expected, a)
		}
		require.Equal(t, int64(32), e.Metrics().Decisions)
	})
}

func bidStateAt(e *Engine, a game.Action) game.BidState {
	b, err := game.BidStateOf(e.Actions(), a, false)
	if err != nil {
		panic(err)
	}
	return b
}

func TestNewEngine(t *testing.T) {
	t.Run("rejecting invalid parameters", func(t *testing.T) {
		_, err := NewEngine(game.Params{HandLength: 3, NumDigits: 1, NumPlayers: 3})

		require.ErrorIs(t, err, game.ErrInvalidParams)
	})

	t.Run("rejecting an action map built for other parameters", func(t *testing.T) {
		other := game.NewActionMap(game.Params{HandLength: 4, NumDigits: 3, NumPlayers: 3})

		_, err := NewEngine(standard, WithActionMap(other))

		require.ErrorIs(t, err, game.ErrInvalidParams)
	})

	t.Run("rejecting a table built for other parameters", func(t *testing.T) {
		other := NewTable(game.Params{HandLength: 3, NumDigits: 3, NumPlayers: 2})

		_, err := NewEngine(standard, WithTable(other))

		require.ErrorIs(t, err, game.ErrInvalidParams)
	})

	t.Run("sharing prebuilt components", func(t *testing.T) {
		am := game.NewActionMap(standard)
		table := NewTable(standard)

		e := newTestEngine(t, WithActionMap(am), WithTable(table))

		require.Same(t, am, e.Actions())
		require.Same(t, table, e.Table())
	})

	t.Run("counting decisions by kind", func(t *testing.T) {
		e := newTestEngine(t, WithMetrics())
		h := hand(t, e, "111")

		_, err := e.NextAction(h, game.NoBid, false)
		require.NoError(t, err)
		_, err = e.NextAction(h, bidState(t, e, "7 of 1", false), false)
		require.NoError(t, err)
		_, err = e.NextAction(h, bidState(t, e, "1 of 2", false), false)
		require.NoError(t, err)
		_, err = e.NextAction(game.Hand{}, game.NoBid, false)
		require.Error(t, err)

		m := e.Metrics()
		require.Equal(t, int64(3), m.Decisions)
		require.Equal(t, int64(1), m.Openings)
		require.Equal(t, int64(1), m.Challenges)
		require.Equal(t, int64(1), m.NewBids)
	})

	t.Run("collecting nothing by default", func(t *testing.T) {
		e := newTestEngine(t)

		_, err := e.NextAction(hand(t, e, "111"), game.NoBid, false)
		require.NoError(t, err)

		require.Equal(t, DecisionMetrics{}, e.Metrics())
	})
}
