package metrics

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"liarspoker/game"

	"github.com/stretchr/testify/require"
)

func TestStandings(t *testing.T) {
	t.Run("booking wins and losses", func(t *testing.T) {
		s := NewStandings([]string{"a", "b", "c"})

		s.Record(game.Result{Bidder: 0, Won: true, Rewards: []int{2, -1, -1}})
		s.Record(game.Result{Bidder: 1, Won: false, Rewards: []int{1, -2, 1}})

		require.Equal(t, 2, s.Rounds())
		require.Equal(t, []Standing{
			{Player: "a", WinsByBid: 1, WinsByChallenge: 1, Equity: 3},
			{Player: "b", LossesByBid: 1, LossesByChallenge: 1, Equity: -3},
			{Player: "c", LossesByChallenge: 1, WinsByChallenge: 1, Equity: 0},
		}, s.Rows())
		require.Equal(t, 1.5, s.AverageReward(0))
		require.Equal(t, -1.5, s.AverageReward(1))
	})

	t.Run("averaging nothing", func(t *testing.T) {
		s := NewStandings([]string{"a", "b"})

		require.Equal(t, 0.0, s.AverageReward(0))
	})

	t.Run("returning a copy of the rows", func(t *testing.T) {
		s := NewStandings([]string{"a", "b"})

		rows := s.Rows()
		rows[0].Equity = 10

		require.Zero(t, s.Rows()[0].Equity)
	})
}

func TestCollector(t *testing.T) {
	t.Run("numbering moves in order", func(t *testing.T) {
		c := NewCollector()
		c.Start(2)

		c.AddMove(2, game.Move{Action: 1, Bid: game.Bid{Count: 1, Digit: 1}}, false, time.Millisecond)
		c.AddMove(0, game.Move{Action: game.Challenge}, false, time.Millisecond)

		_, moves, _ := c.Complete(&game.State{}, game.Result{Bid: game.Bid{Count: 1, Digit: 1}})
		require.Len(t, moves, 2)
		require.Equal(t, 1, moves[0].Step)
		require.Equal(t, "1 of 1", moves[0].Move)
		require.Equal(t, 2, moves[1].Step)
		require.Equal(t, "challenge", moves[1].Move)
	})

	t.Run("describing every player of a finished round", func(t *testing.T) {
		p := game.Params{HandLength: 3, NumDigits: 3, NumPlayers: 3}
		hands := make([]game.Hand, 3)
		for i, digits := range []string{"111", "223", "222"} {
			h, err := game.NewHand(p, digits)
			require.NoError(t, err)
			hands[i] = h
		}
		state, err := game.NewState(game.NewActionMap(p), hands, 1)
		require.NoError(t, err)
		for _, a := range []game.Action{5, game.Challenge, game.Challenge, game.Count} {
			state, err = state.Play(a)
			require.NoError(t, err)
		}
		result, err := state.Settle()
		require.NoError(t, err)

		c := NewCollector()
		c.Start(1)
		_, _, players := c.Complete(state, result)

		require.Equal(t, []PlayerMetric{
			{Position: 3, Player: 0, Hand: "111", HandKind: "3 of a kind", Reward: -1, LastMoveType: "-2 challenge"},
			{Position: 1, Player: 1, Hand: "223", HandKind: "2 of a kind", Reward: 2, IsLastBidder: true, LastMoveType: "0 bid"},
			{Position: 2, Player: 2, Hand: "222", HandKind: "3 of a kind", Reward: -1, LastMoveType: "1 challenge"},
		}, players)
	})

	t.Run("collecting nothing", func(t *testing.T) {
		c := NewDummyCollector()
		c.Start(0)

		round, moves, players := c.Complete(&game.State{}, game.Result{})

		require.Zero(t, round)
		require.Nil(t, moves)
		require.Nil(t, players)
	})
}

func TestWriter(t *testing.T) {
	t.Run("writing csv files under a timestamped directory", func(t *testing.T) {
		dir := t.TempDir()
		w, err := NewWriter(dir, "exp")
		require.NoError(t, err)
		require.Equal(t, filepath.Join(dir, "exp"), filepath.Dir(w.Dir()))

		require.NoError(t, w.WriteMatchRecords([]MatchRecord{{ID: 1, Params: "3x3/3p", Players: "a:baseline,b:random", Rounds: 10, Seed: 4}}))
		require.NoError(t, w.WriteStandings([]StandingRecord{{Match: 1, Standing: Standing{Player: "a", WinsByBid: 2, Equity: 4}}}))

		f, err := os.Open(filepath.Join(w.Dir(), "match_configs.csv"))
		require.NoError(t, err)
		defer f.Close()
		rows, err := csv.NewReader(f).ReadAll()
		require.NoError(t, err)
		require.Equal(t, [][]string{
			{"id", "params", "players", "rounds", "seed"},
			{"1", "3x3/3p", "a:baseline,b:random", "10", "4"},
		}, rows)

		g, err := os.Open(filepath.Join(w.Dir(), "standings.csv"))
		require.NoError(t, err)
		defer g.Close()
		rows, err = csv.NewReader(g).ReadAll()
		require.NoError(t, err)
		require.Equal(t, []string{"1", "a", "2", "0", "0", "0", "4"}, rows[1])
	})

	t.Run("writing one row per player and round", func(t *testing.T) {
		w, err := NewWriter(t.TempDir(), "exp")
		require.NoError(t, err)

		require.NoError(t, w.WritePlayerRecords([]PlayerRecord{
			{Match: 1, Round: 2, Name: "a", Kind: "baseline", PlayerMetric: PlayerMetric{Position: 1, Hand: "223", HandKind: "2 of a kind", Reward: 2, IsLastBidder: true, LastMoveType: "0 bid"}},
			{Match: 1, Round: 2, Name: "b", Kind: "random", PlayerMetric: PlayerMetric{Position: 2, Player: 1, Hand: "111", HandKind: "3 of a kind", Reward: -1, LastMoveType: "-2 challenge"}},
		}))

		f, err := os.Open(filepath.Join(w.Dir(), "player_records.csv"))
		require.NoError(t, err)
		defer f.Close()
		rows, err := csv.NewReader(f).ReadAll()
		require.NoError(t, err)
		require.Equal(t, [][]string{
			{"match", "round", "position", "player", "player_type", "hand", "hand_type", "reward", "is_last_bidder", "last_move_type"},
			{"1", "2", "1", "a", "baseline", "223", "2 of a kind", "2", "yes", "0 bid"},
			{"1", "2", "2", "b", "random", "111", "3 of a kind", "-1", "no", "-2 challenge"},
		}, rows)
	})

	t.Run("failing once the directory is gone", func(t *testing.T) {
		w, err := NewWriter(t.TempDir(), "exp")
		require.NoError(t, err)
		require.NoError(t, os.RemoveAll(w.Dir()))

		err = w.WriteStandings(nil)

		require.Error(t, err)
		require.Contains(t, err.Error(), "standings.csv")
	})
}
