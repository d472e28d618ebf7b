package game

import (
	"fmt"

	"liarspoker/utils"
)

// Result is the settlement of a finished round.
type Result struct {
	Bid     Bid   // Final bid
	Bidder  int   // Final bidder
	Total   int   // Occurrences of the bid digit across all hands
	Won     bool  // Whether the final bid was made
	Rewards []int // Per player, sums to zero
}

// Settle counts the final bid digit across every hand. The bidder wins or loses
// WinReward, each opponent loses or wins ChallengeReward.
func (s *State) Settle() (Result, error) {
	if !s.terminal {
		return Result{}, fmt.Errorf("%w: round is not over", ErrPreconditionViolated)
	}

	p := s.Params()
	bid := s.bid.Bid
	total := utils.SumBy(s.hands, func(h Hand) int { return h.Count(bid.Digit) })

	won := total >= bid.Count
	sign := 1
	if !won {
		sign = -1
	}
	rewards := make([]int, p.NumPlayers)
	for i := range rewards {
		if i == s.bidder {
			rewards[i] = sign * p.WinReward()
		} else {
			rewards[i] = -sign * p.ChallengeReward()
		}
	}

	return Result{
		Bid:     bid,
		Bidder:  s.bidder,
		Total:   total,
		Won:     won,
		Rewards: rewards,
	}, nil
}

// LastMoveType describes a player's stance on the final bid relative to their
// own hand: "<count_diff> bid" for the bidder, "<-count_diff> challenge" otherwise.
func (s *State) LastMoveType(player int) string {
	bid := s.bid.Bid
	diff := bid.Count - s.hands[player].Count(bid.Digit)
	if player == s.bidder {
		return fmt.Sprintf("%d bid", diff)
	}
	return fmt.Sprintf("%d challenge", -diff)
}
