package game

import "fmt"

// BidState is the outstanding bid as seen by the player about to move.
type BidState struct {
	Move Move
	// IsRebid is set when the deciding player issued the bid and every opponent challenged it.
	IsRebid bool
}

// NoBid is the bid state of an opening move.
var NoBid = BidState{Move: Move{Action: NoAction}}

// NewBidState parses bid text ("" for no bid yet) into a bid state.
func NewBidState(am *ActionMap, text string, isRebid bool) (BidState, error) {
	m, err := am.Parse(text)
	if err != nil {
		return BidState{}, err
	}
	if m.IsChallenge() {
		return BidState{}, fmt.Errorf("%w: %q is not a bid", ErrMalformedBidText, text)
	}
	return BidState{Move: m, IsRebid: isRebid}, nil
}

// BidStateOf builds a bid state from an action identifier; NoAction means no bid yet.
func BidStateOf(am *ActionMap, a Action, isRebid bool) (BidState, error) {
	if a == NoAction {
		return BidState{Move: Move{Action: NoAction}, IsRebid: isRebid}, nil
	}
	if a == Challenge {
		return BidState{}, fmt.Errorf("%w: challenge is not a bid", ErrInvalidAction)
	}
	m, err := am.Decode(a)
	if err != nil {
		return BidState{}, err
	}
	return BidState{Move: m, IsRebid: isRebid}, nil
}

// IsOpening reports whether no bid is outstanding, which only NoAction means.
func (b BidState) IsOpening() bool {
	return b.Move.IsOpening()
}

// CountDiff is how many more of the bid digit the other hands must hold for the bid to stand.
func (b BidState) CountDiff(h Hand) (int, error) {
	if h.IsZero() {
		return 0, fmt.Errorf("%w: count difference needs a hand", ErrPreconditionViolated)
	}
	if b.IsOpening() {
		return 0, fmt.Errorf("%w: count difference needs a bid", ErrPreconditionViolated)
	}
	return b.Move.Bid.Count - h.Count(b.Move.Bid.Digit), nil
}

func (b BidState) String() string {
	return b.Move.String()
}
