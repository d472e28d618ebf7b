package baseline

import (
	"math"

	"liarspoker/game"

	"gonum.org/v1/gonum/stat/distuv"
)

// Table holds, for every count difference d, the chance that a bid needing d
// more matching digits from the unknown hands stands, and the chance that
// challenging it wins. Both assume digits are uniform across unknown hands.
// A Table is immutable and safe for concurrent use.
type Table struct {
	params    game.Params
	minDiff   int
	unknown   int
	bid       []float64
	challenge []float64
}

// NewTable precomputes both probabilities for d in -(HandLength-1)..TotalDigits.
func NewTable(p game.Params) *Table {
	n := p.UnknownDigits()
	binomial := distuv.Binomial{N: float64(n), P: 1.0 / float64(p.NumDigits)}
	pmf := make([]float64, n+1)
	for k := range pmf {
		pmf[k] = binomial.Prob(float64(k))
	}

	// atLeast[k] = P(X >= k), atMost[k] = P(X <= k); accumulated from the ends
	// so both stay monotone under rounding
	atLeast := make([]float64, n+2)
	for k := n; k >= 0; k-- {
		atLeast[k] = math.Min(1, atLeast[k+1]+pmf[k])
	}
	atMost := make([]float64, n+1)
	for k := 0; k <= n; k++ {
		prev := 0.0
		if k > 0 {
			prev = atMost[k-1]
		}
		atMost[k] = math.Min(1, prev+pmf[k])
	}

	minDiff := -(p.HandLength - 1)
	size := p.TotalDigits() - minDiff + 1
	t := &Table{
		params:    p,
		minDiff:   minDiff,
		unknown:   n,
		bid:       make([]float64, size),
		challenge: make([]float64, size),
	}
	for i := range t.bid {
		d := minDiff + i
		switch {
		case d <= 0:
			t.bid[i], t.challenge[i] = 1.0, 0.0
		case d > n:
			t.bid[i], t.challenge[i] = 0.0, 1.0
		default:
			t.bid[i], t.challenge[i] = atLeast[d], atMost[d-1]
		}
	}
	return t
}

// BidSuccess is P(X >= d) for X ~ Binomial(UnknownDigits, 1/NumDigits).
func (t *Table) BidSuccess(d int) float64 {
	switch {
	case d <= 0:
		return 1.0
	case d > t.unknown:
		return 0.0
	}
	return t.bid[t.index(d)]
}

// ChallengeSuccess is P(X < d), the complement of BidSuccess.
func (t *Table) ChallengeSuccess(d int) float64 {
	switch {
	case d <= 0:
		return 0.0
	case d > t.unknown:
		return 1.0
	}
	return t.challenge[t.index(d)]
}

// Params returns the game parameters the table was built for.
func (t *Table) Params() game.Params {
	return t.params
}

// Range returns the smallest and largest precomputed count difference.
func (t *Table) Range() (lo, hi int) {
	return t.minDiff, t.minDiff + len(t.bid) - 1
}

func (t *Table) index(d int) int {
	return d - t.minDiff
}
