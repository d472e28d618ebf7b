package searcher

import (
	"math"

	"liarspoker/game"
)

// Hyperparameters for MCTS

const CSquared = 2.0 // Exploration constant

// Rewards are scaled into [Loss, Win] so node values estimate the chance of winning
const (
	Win  = 1.0
	Loss = 0.0
)

type uct struct {
	numerator float64
}

func newUCT(cSquared float64, N float64) uct {
	if N == 0 {
		panic("N cannot be 0")
	}
	return uct{numerator: cSquared * math.Log(N)}
}

func (u uct) evaluate(q float64, n float64) float64 {
	if n == 0 {
		panic("n cannot be 0")
	}
	// UCT = q/n + sqrt(c^2*ln(N)/n)
	return q/n + math.Sqrt(u.numerator/n)
}

// scaleRewards maps settlement rewards in [-WinReward, WinReward] onto [Loss, Win].
func scaleRewards(p game.Params, rewards []int) []float64 {
	bound := float64(p.WinReward())
	scaled := make([]float64, len(rewards))
	for i, r := range rewards {
		scaled[i] = Loss + (Win-Loss)*(float64(r)+bound)/(2*bound)
	}
	return scaled
}
