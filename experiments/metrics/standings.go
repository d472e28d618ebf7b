package metrics

import "liarspoker/game"

// Standing is a player's running record over the rounds of a match.
type Standing struct {
	Player            string
	WinsByBid         int
	LossesByBid       int
	WinsByChallenge   int
	LossesByChallenge int
	Equity            int
}

// Standings is the equity ledger of a match. It is not safe for concurrent use.
type Standings struct {
	rows   []Standing
	rounds int
}

func NewStandings(players []string) *Standings {
	rows := make([]Standing, len(players))
	for i, name := range players {
		rows[i].Player = name
	}
	return &Standings{rows: rows}
}

// Record books a settled round: the final bidder wins or loses by bid, every
// other player by challenge.
func (s *Standings) Record(result game.Result) {
	for i := range s.rows {
		row := &s.rows[i]
		row.Equity += result.Rewards[i]
		switch {
		case i == result.Bidder && result.Won:
			row.WinsByBid++
		case i == result.Bidder:
			row.LossesByBid++
		case result.Won:
			row.LossesByChallenge++
		default:
			row.WinsByChallenge++
		}
	}
	s.rounds++
}

func (s *Standings) Rounds() int {
	return s.rounds
}

func (s *Standings) Rows() []Standing {
	return append([]Standing(nil), s.rows...)
}

// AverageReward is the player's equity per recorded round.
func (s *Standings) AverageReward(player int) float64 {
	if s.rounds == 0 {
		return 0
	}
	return float64(s.rows[player].Equity) / float64(s.rounds)
}
