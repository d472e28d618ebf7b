package experiments

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"liarspoker/agent"
	"liarspoker/baseline"
	"liarspoker/engine"
	"liarspoker/experiments/metrics"
	"liarspoker/game"
	"liarspoker/utils"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
	"golang.org/x/sync/errgroup"
)

type PlayerConfig struct {
	Name string
	Kind string // agent.Baseline, agent.BaselineEV, agent.Random or agent.MCTS
}

type Config struct {
	Name    string
	Params  game.Params
	Players []PlayerConfig
	Rounds  int // Per match
	Matches int
	Workers int    // Matches played concurrently
	Seed    uint64 // 0 = random
}

func (c Config) Validate() error {
	if err := c.Params.Validate(); err != nil {
		return err
	}
	if len(c.Players) != c.Params.NumPlayers {
		return fmt.Errorf("got %d players for a %d-player game", len(c.Players), c.Params.NumPlayers)
	}
	names := make([]string, 0, len(c.Players))
	for _, p := range c.Players {
		if p.Name == "" {
			return errors.New("player name must not be empty")
		}
		if utils.FindIndex(names, p.Name) >= 0 {
			return fmt.Errorf("duplicate player name %q", p.Name)
		}
		names = append(names, p.Name)
	}
	if c.Rounds < 1 {
		return errors.New("rounds must be > 0")
	}
	if c.Matches < 1 {
		return errors.New("matches must be > 0")
	}
	return nil
}

type MatchConfig struct {
	ID      int
	Params  game.Params
	Players []PlayerConfig
	Rounds  int
	Seed    uint64
}

type MatchResult struct {
	Config    MatchConfig
	Standings *metrics.Standings
	Rounds    []metrics.RoundRecord
	Moves     []metrics.MoveRecord
	Players   []metrics.PlayerRecord
}

// Run plays every match of the experiment on up to Workers goroutines. All
// matches share one decision engine, built once for the game parameters. When
// writer is not nil the records are stored as CSV.
func Run(ctx context.Context, cfg Config, writer *metrics.Writer) ([]*MatchResult, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid experiment config: %w", err)
	}
	decider, err := baseline.NewEngine(cfg.Params, baseline.WithMetrics())
	if err != nil {
		return nil, err
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	matches := make([]MatchConfig, cfg.Matches)
	for i := range matches {
		matches[i] = MatchConfig{
			ID:      i + 1,
			Params:  cfg.Params,
			Players: cfg.Players,
			Rounds:  cfg.Rounds,
			Seed:    seed + uint64(i),
		}
	}

	log.Info().Msgf("starting %s experiment with %d matches of %d rounds...", cfg.Name, cfg.Matches, cfg.Rounds)

	results := make([]*MatchResult, len(matches))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, cfg.Workers))
	for i, match := range matches {
		g.Go(func() error {
			log.Info().Msgf("starting match %d of %d...", match.ID, len(matches))
			result, err := RunMatch(ctx, match, decider)
			if err != nil {
				return fmt.Errorf("failed to run match %d: %w", match.ID, err)
			}
			results[i] = result
			log.Info().Msgf("completed match %d of %d", match.ID, len(matches))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	dm := decider.Metrics()
	log.Info().
		Int64("decisions", dm.Decisions).
		Int64("openings", dm.Openings).
		Int64("challenges", dm.Challenges).
		Int64("new_bids", dm.NewBids).
		Dur("decision_time", dm.Duration).
		Msgf("completed %s experiment", cfg.Name)

	if writer != nil {
		if err := store(writer, results); err != nil {
			return nil, err
		}
		log.Info().Msgf("stored experiment records in %s", writer.Dir())
	}
	return results, nil
}

// RunMatch plays the rounds of a match. Hands are dealt fresh every round, the
// first opener is drawn at random and every later round is opened by the
// previous final bidder.
func RunMatch(ctx context.Context, cfg MatchConfig, decider *baseline.Engine) (*MatchResult, error) {
	if decider.Params() != cfg.Params {
		return nil, fmt.Errorf("decision engine built for %s, match plays %s", decider.Params(), cfg.Params)
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	names := make([]string, len(cfg.Players))
	agents := make([]agent.Agent, len(cfg.Players))
	seeds := agentSeeds(rng, len(cfg.Players))
	for i, p := range cfg.Players {
		a, err := agent.New(p.Kind, decider, seeds[i])
		if err != nil {
			return nil, err
		}
		names[i] = p.Name
		agents[i] = a
	}

	result := &MatchResult{
		Config:    cfg,
		Standings: metrics.NewStandings(names),
	}
	opener := rng.Intn(len(names))
	for round := 1; round <= cfg.Rounds; round++ {
		state, err := game.NewState(decider.Actions(), game.Deal(cfg.Params, rng), opener)
		if err != nil {
			return nil, err
		}
		e, err := engine.LocalEngine(names, agents, state, engine.WithMetrics())
		if err != nil {
			return nil, err
		}
		r, err := e.Run(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to run round %d: %w", round, err)
		}

		result.Standings.Record(r.Result)
		result.Rounds = append(result.Rounds, metrics.RoundRecord{
			Match:       cfg.ID,
			Round:       round,
			RoundMetric: r.RoundMetric,
		})
		for _, mm := range r.MoveMetrics {
			result.Moves = append(result.Moves, metrics.MoveRecord{
				Match:      cfg.ID,
				Round:      round,
				MoveMetric: mm,
			})
		}
		for _, pm := range r.PlayerMetrics {
			result.Players = append(result.Players, metrics.PlayerRecord{
				Match:        cfg.ID,
				Round:        round,
				Name:         names[pm.Player],
				Kind:         cfg.Players[pm.Player].Kind,
				PlayerMetric: pm,
			})
		}
		opener = r.Result.Bidder
	}

	equity := utils.SumBy(result.Standings.Rows(), func(s metrics.Standing) int { return s.Equity })
	if equity != 0 {
		return nil, fmt.Errorf("match %d ledger sums to %d, want 0", cfg.ID, equity)
	}
	return result, nil
}

// agentSeeds draws one seed per player from the match rng, so agents of
// neighbouring match seeds do not share random streams.
func agentSeeds(rng *rand.Rand, n int) []uint64 {
	seeds := make([]uint64, n)
	for i := range seeds {
		seeds[i] = rng.Uint64()
	}
	return seeds
}

// Summary renders a match's standings as a tab separated table.
func Summary(result *MatchResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Total successful rounds: %d\n", result.Standings.Rounds())
	b.WriteString("Player\tWins by Bid\tLosses by Bid\tWins by Challenge\tLosses by Challenge\tEquity\tAvg Reward\n")
	for i, row := range result.Standings.Rows() {
		fmt.Fprintf(&b, "%s\t%d\t%d\t%d\t%d\t%d\t%2.2f\n",
			row.Player, row.WinsByBid, row.LossesByBid, row.WinsByChallenge, row.LossesByChallenge,
			row.Equity, result.Standings.AverageReward(i))
	}
	return b.String()
}

func store(writer *metrics.Writer, results []*MatchResult) error {
	var matches []metrics.MatchRecord
	var rounds []metrics.RoundRecord
	var moves []metrics.MoveRecord
	var players []metrics.PlayerRecord
	var standings []metrics.StandingRecord
	for _, r := range results {
		lineup := make([]string, len(r.Config.Players))
		for i, p := range r.Config.Players {
			lineup[i] = p.Name + ":" + p.Kind
		}
		matches = append(matches, metrics.MatchRecord{
			ID:      r.Config.ID,
			Params:  r.Config.Params.String(),
			Players: strings.Join(lineup, ","),
			Rounds:  r.Config.Rounds,
			Seed:    r.Config.Seed,
		})
		rounds = append(rounds, r.Rounds...)
		moves = append(moves, r.Moves...)
		players = append(players, r.Players...)
		for _, row := range r.Standings.Rows() {
			standings = append(standings, metrics.StandingRecord{Match: r.Config.ID, Standing: row})
		}
	}

	if err := writer.WriteMatchRecords(matches); err != nil {
		return fmt.Errorf("failed to store match configs: %w", err)
	}
	if err := writer.WriteRoundRecords(rounds); err != nil {
		return fmt.Errorf("failed to store round records: %w", err)
	}
	if err := writer.WriteMoveRecords(moves); err != nil {
		return fmt.Errorf("failed to store move records: %w", err)
	}
	if err := writer.WritePlayerRecords(players); err != nil {
		return fmt.Errorf("failed to store player records: %w", err)
	}
	if err := writer.WriteStandings(standings); err != nil {
		return fmt.Errorf("failed to store standings: %w", err)
	}
	return nil
}
