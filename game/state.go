package game

import "fmt"

// Turn records a move played during a round.
type Turn struct {
	Player int
	Move   Move
}

// State is one round of the game: dealt hands, the outstanding bid and whose
// turn it is. State is immutable - Play always returns a new copy.
type State struct {
	actions    *ActionMap
	hands      []Hand
	player     int  // Player to move
	bidder     int  // Player who issued the outstanding bid, -1 before the opening bid
	bid        Move // Outstanding bid
	challenges int  // Consecutive challenges against the outstanding bid
	rebid      bool // Whether the outstanding bid is its bidder's rebid
	terminal   bool
	history    []Turn
}

// NewState starts a round with the given hands, one per player, and the opening bidder.
func NewState(am *ActionMap, hands []Hand, starting int) (*State, error) {
	p := am.Params()
	if len(hands) != p.NumPlayers {
		return nil, fmt.Errorf("%w: got %d hands for %d players", ErrInvalidHand, len(hands), p.NumPlayers)
	}
	for i, h := range hands {
		if h.IsZero() {
			return nil, fmt.Errorf("%w: player %d has no hand", ErrInvalidHand, i)
		}
	}
	if starting < 0 || starting >= p.NumPlayers {
		return nil, fmt.Errorf("%w: starting player %d outside 0..%d", ErrInvalidParams, starting, p.NumPlayers-1)
	}

	return &State{
		actions: am,
		hands:   hands,
		player:  starting,
		bidder:  -1,
		bid:     Move{Action: NoAction},
	}, nil
}

func (s *State) Actions() *ActionMap {
	return s.actions
}

func (s *State) Params() Params {
	return s.actions.Params()
}

// Player returns the index of the player to move.
func (s *State) Player() int {
	return s.player
}

func (s *State) Hand(player int) Hand {
	return s.hands[player]
}

func (s *State) Hands() []Hand {
	return append([]Hand(nil), s.hands...)
}

// Bid returns the outstanding bid, a NoAction move before the opening bid.
func (s *State) Bid() Move {
	return s.bid
}

// Bidder returns the index of the outstanding bidder, -1 before the opening bid.
func (s *State) Bidder() int {
	return s.bidder
}

// IsRebid reports whether the player to move is the outstanding bidder, which
// only happens once every opponent has challenged the bid.
func (s *State) IsRebid() bool {
	return !s.terminal && s.bidder >= 0 && s.bidder == s.player
}

// BidState is the outstanding bid from the perspective of the player to move.
func (s *State) BidState() BidState {
	return BidState{Move: s.bid, IsRebid: s.IsRebid()}
}

func (s *State) IsTerminal() bool {
	return s.terminal
}

func (s *State) History() []Turn {
	return append([]Turn(nil), s.history...)
}

// LegalMoves lists the challenge (once a bid exists) followed by every strictly
// greater bid identifier.
func (s *State) LegalMoves() []Action {
	if s.terminal {
		return nil
	}

	start := max(Action(1), s.bid.Action+1)
	moves := make([]Action, 0, s.actions.Size()-int(start)+2)
	if !s.bid.IsOpening() {
		moves = append(moves, Challenge)
	}
	for a := start; int(a) <= s.actions.Size(); a++ {
		moves = append(moves, a)
	}
	return moves
}

func (s *State) IsLegal(a Action) bool {
	if s.terminal {
		return false
	}
	if a == Challenge {
		return !s.bid.IsOpening()
	}
	m, err := s.actions.Decode(a)
	if err != nil {
		return false
	}
	return s.bid.IsOpening() || m.Bid.Beats(s.bid.Bid)
}

// Play applies an action of the player to move. A challenge by the bidder is
// the count and ends the round, as does a rebid challenged by every opponent.
func (s *State) Play(a Action) (*State, error) {
	if !s.IsLegal(a) {
		return nil, fmt.Errorf("%w: action %d by player %d", ErrIllegalMove, a, s.player)
	}
	m, err := s.actions.Decode(a)
	if err != nil {
		return nil, err
	}

	next := s.copy()
	next.history = append(next.history, Turn{Player: s.player, Move: m})
	numPlayers := s.Params().NumPlayers

	if a == Challenge {
		if s.player == s.bidder {
			next.terminal = true
			return next, nil
		}
		next.challenges++
		if next.challenges == numPlayers-1 && s.rebid {
			next.terminal = true
			return next, nil
		}
		next.player = (s.player + 1) % numPlayers
		return next, nil
	}

	next.rebid = s.player == s.bidder
	next.bidder = s.player
	next.bid = m
	next.challenges = 0
	next.player = (s.player + 1) % numPlayers
	return next, nil
}

func (s *State) copy() *State {
	history := make([]Turn, len(s.history), len(s.history)+1)
	copy(history, s.history)

	next := *s
	next.history = history
	return &next
}
