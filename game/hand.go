package game

import (
	"fmt"
	"strings"
)

// Hand is a private hand together with its per-digit counts. Hands are values;
// a new deal builds a new Hand.
type Hand struct {
	digits string
	counts []int // indexed by digit, counts[0] unused
}

// NewHand reads a hand of HandLength digit characters, each within 1..NumDigits.
func NewHand(p Params, digits string) (Hand, error) {
	if len(digits) != p.HandLength {
		return Hand{}, fmt.Errorf("%w: %q has length %d, want %d", ErrInvalidHand, digits, len(digits), p.HandLength)
	}

	counts := make([]int, p.NumDigits+1)
	for _, r := range digits {
		d := int(r - '0')
		if d < 1 || d > p.NumDigits {
			return Hand{}, fmt.Errorf("%w: %q contains %q outside 1..%d", ErrInvalidHand, digits, r, p.NumDigits)
		}
		counts[d]++
	}
	return Hand{digits: digits, counts: counts}, nil
}

func (h Hand) IsZero() bool {
	return h.counts == nil
}

// Count returns how many times digit occurs in the hand, 0 for digits outside the alphabet.
func (h Hand) Count(digit int) int {
	if digit < 1 || digit >= len(h.counts) {
		return 0
	}
	return h.counts[digit]
}

// Kind classifies the hand as "1 of each" or "<k> of a kind" for its largest multiplicity.
func (h Hand) Kind() string {
	most := 0
	for _, c := range h.counts {
		most = max(most, c)
	}
	if most <= 1 {
		return "1 of each"
	}
	return fmt.Sprintf("%d of a kind", most)
}

func (h Hand) String() string {
	return h.digits
}

// HandsString joins hands the way round logs print them.
func HandsString(hands []Hand) string {
	parts := make([]string, len(hands))
	for i, h := range hands {
		parts[i] = h.String()
	}
	return strings.Join(parts, " ")
}
