package game

import (
	"fmt"
	"regexp"
	"strconv"
)

// Action identifies a move in the dense action space shared with the rules engine.
type Action int

const (
	// NoAction stands for "no bid yet" before the opening bid of a round.
	NoAction Action = -1
	// Challenge disputes the outstanding bid.
	Challenge Action = 0
	// Count is the bidder's reaffirmation after every opponent challenged.
	// It shares the challenge identifier.
	Count = Challenge
)

const challengeText = "challenge"

var bidPattern = regexp.MustCompile(`^(\d+) of (\d+)$`)

// Bid claims at least Count occurrences of Digit among all hands combined.
// The zero value is the empty bid.
type Bid struct {
	Count int
	Digit int
}

func (b Bid) IsZero() bool {
	return b.Count == 0 && b.Digit == 0
}

// Beats reports whether b is strictly stronger than other: a greater count,
// or the same count of a higher digit.
func (b Bid) Beats(other Bid) bool {
	if b.Count != other.Count {
		return b.Count > other.Count
	}
	return b.Digit > other.Digit
}

func (b Bid) String() string {
	if b.IsZero() {
		return ""
	}
	return fmt.Sprintf("%d of %d", b.Count, b.Digit)
}

// Move pairs an action identifier with the bid it stands for. Challenge and
// NoAction moves carry the empty bid.
type Move struct {
	Action Action
	Bid    Bid
}

func (m Move) IsChallenge() bool {
	return m.Action == Challenge
}

func (m Move) IsOpening() bool {
	return m.Action == NoAction
}

func (m Move) String() string {
	switch m.Action {
	case NoAction:
		return ""
	case Challenge:
		return challengeText
	default:
		return m.Bid.String()
	}
}

// ActionMap is the bijection between bids and identifiers 1..MaxAllowedMoves,
// assigned in ascending (count, digit) order with count outermost. Identifier 0
// is reserved for the challenge. It is read-only after construction.
type ActionMap struct {
	params Params
	bids   []Bid // indexed by action, bids[0] unused
}

func NewActionMap(p Params) *ActionMap {
	bids := make([]Bid, 1, p.MaxAllowedMoves()+1)
	for count := 1; count <= p.TotalDigits(); count++ {
		for digit := 1; digit <= p.NumDigits; digit++ {
			bids = append(bids, Bid{Count: count, Digit: digit})
		}
	}
	return &ActionMap{params: p, bids: bids}
}

func (am *ActionMap) Params() Params {
	return am.params
}

// Size is the number of bid identifiers, excluding the challenge.
func (am *ActionMap) Size() int {
	return len(am.bids) - 1
}

func (am *ActionMap) Encode(count, digit int) (Action, error) {
	if count < 1 || count > am.params.TotalDigits() {
		return NoAction, fmt.Errorf("%w: count %d outside 1..%d", ErrInvalidBid, count, am.params.TotalDigits())
	}
	if digit < 1 || digit > am.params.NumDigits {
		return NoAction, fmt.Errorf("%w: digit %d outside 1..%d", ErrInvalidBid, digit, am.params.NumDigits)
	}
	return Action((count-1)*am.params.NumDigits + digit), nil
}

func (am *ActionMap) Decode(a Action) (Move, error) {
	if a < Challenge || int(a) > am.Size() {
		return Move{}, fmt.Errorf("%w: %d outside 0..%d", ErrInvalidAction, a, am.Size())
	}
	if a == Challenge {
		return Move{Action: Challenge}, nil
	}
	return Move{Action: a, Bid: am.bids[a]}, nil
}

// Parse reads "challenge", the empty string (no bid yet) or "<count> of <digit>".
func (am *ActionMap) Parse(text string) (Move, error) {
	switch text {
	case challengeText:
		return Move{Action: Challenge}, nil
	case "":
		return Move{Action: NoAction}, nil
	}

	match := bidPattern.FindStringSubmatch(text)
	if match == nil {
		return Move{}, fmt.Errorf("%w: %q", ErrMalformedBidText, text)
	}
	count, err := strconv.Atoi(match[1])
	if err != nil {
		return Move{}, fmt.Errorf("%w: %q", ErrMalformedBidText, text)
	}
	digit, err := strconv.Atoi(match[2])
	if err != nil {
		return Move{}, fmt.Errorf("%w: %q", ErrMalformedBidText, text)
	}

	a, err := am.Encode(count, digit)
	if err != nil {
		return Move{}, err
	}
	return Move{Action: a, Bid: Bid{Count: count, Digit: digit}}, nil
}

// Text renders an action as bid text or "challenge".
func (am *ActionMap) Text(a Action) (string, error) {
	m, err := am.Decode(a)
	if err != nil {
		return "", err
	}
	return m.String(), nil
}
