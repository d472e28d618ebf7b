package engine

import (
	"liarspoker/experiments/metrics"
	"liarspoker/game"
)

// MaxMoves caps the moves of a single round.
const MaxMoves = 10000

// Round is the outcome of a finished round.
type Round struct {
	Final         *game.State
	Result        game.Result
	RoundMetric   metrics.RoundMetric
	MoveMetrics   []metrics.MoveMetric
	PlayerMetrics []metrics.PlayerMetric
}
