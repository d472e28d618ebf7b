package metrics

import (
	"time"

	"liarspoker/game"
)

type MoveMetric struct {
	Step     int
	Player   int
	Action   game.Action
	Move     string // Bid text, or "challenge"
	IsRebid  bool   // Whether the player moved as the challenged bidder
	Duration time.Duration
}

type RoundMetric struct {
	StartingPlayer int
	Bidder         int // Final bidder
	Bid            string
	Total          int // Occurrences of the bid digit across all hands
	Won            bool
	Hands          string
	StartTime      time.Time
	EndTime        time.Time
	Duration       time.Duration
	TotalMoves     int
}

// PlayerMetric is one player's view of a finished round.
type PlayerMetric struct {
	Position     int // Seat in turn order, 1 for the starting player
	Player       int
	Hand         string
	HandKind     string
	Reward       int
	IsLastBidder bool
	LastMoveType string
}

type Collector interface {
	Start(startingPlayer int)
	AddMove(player int, move game.Move, isRebid bool, elapsed time.Duration)
	Complete(state *game.State, result game.Result) (RoundMetric, []MoveMetric, []PlayerMetric)
}

type collector struct {
	startingPlayer int
	startTime      time.Time
	moves          []MoveMetric
}

func NewCollector() Collector {
	return &collector{}
}

func (c *collector) Start(startingPlayer int) {
	c.startingPlayer = startingPlayer
	c.startTime = time.Now()
	c.moves = nil
}

func (c *collector) AddMove(player int, move game.Move, isRebid bool, elapsed time.Duration) {
	c.moves = append(c.moves, MoveMetric{
		Step:     len(c.moves) + 1,
		Player:   player,
		Action:   move.Action,
		Move:     move.String(),
		IsRebid:  isRebid,
		Duration: elapsed,
	})
}

func (c *collector) Complete(state *game.State, result game.Result) (RoundMetric, []MoveMetric, []PlayerMetric) {
	end := time.Now()
	n := len(result.Rewards)
	players := make([]PlayerMetric, n)
	for i := range players {
		hand := state.Hand(i)
		players[i] = PlayerMetric{
			Position:     (i-c.startingPlayer+n)%n + 1,
			Player:       i,
			Hand:         hand.String(),
			HandKind:     hand.Kind(),
			Reward:       result.Rewards[i],
			IsLastBidder: i == result.Bidder,
			LastMoveType: state.LastMoveType(i),
		}
	}
	return RoundMetric{
		StartingPlayer: c.startingPlayer,
		Bidder:         result.Bidder,
		Bid:            result.Bid.String(),
		Total:          result.Total,
		Won:            result.Won,
		Hands:          game.HandsString(state.Hands()),
		StartTime:      c.startTime,
		EndTime:        end,
		Duration:       end.Sub(c.startTime),
		TotalMoves:     len(c.moves),
	}, c.moves, players
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (c *dummyCollector) Start(int)                                   {}
func (c *dummyCollector) AddMove(int, game.Move, bool, time.Duration) {}
func (c *dummyCollector) Complete(*game.State, game.Result) (RoundMetric, []MoveMetric, []PlayerMetric) {
	return RoundMetric{}, nil, nil
}
