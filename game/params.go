package game

import "fmt"

// MaxDigits bounds the digit alphabet so every digit fits in a single hand character.
const MaxDigits = 9

// Params holds the game parameters every other structure is derived from.
// A Params value is immutable once constructed.
type Params struct {
	HandLength int // Digits per private hand
	NumDigits  int // Digits take values 1..NumDigits
	NumPlayers int
}

func NewParams(handLength, numDigits, numPlayers int) (Params, error) {
	p := Params{HandLength: handLength, NumDigits: numDigits, NumPlayers: numPlayers}
	if err := p.Validate(); err != nil {
		return Params{}, err
	}
	return p, nil
}

func (p Params) Validate() error {
	if p.HandLength < 1 {
		return fmt.Errorf("%w: hand length %d must be at least 1", ErrInvalidParams, p.HandLength)
	}
	if p.NumDigits < 2 || p.NumDigits > MaxDigits {
		return fmt.Errorf("%w: number of digits %d must be within 2..%d", ErrInvalidParams, p.NumDigits, MaxDigits)
	}
	if p.NumPlayers < 2 {
		return fmt.Errorf("%w: number of players %d must be at least 2", ErrInvalidParams, p.NumPlayers)
	}
	return nil
}

// TotalDigits is the largest count a bid can name.
func (p Params) TotalDigits() int {
	return p.HandLength * p.NumPlayers
}

// UnknownDigits is the number of digit slots held by the other players.
func (p Params) UnknownDigits() int {
	return p.HandLength * (p.NumPlayers - 1)
}

// MaxAllowedMoves is the size of the bid action space, excluding the challenge.
func (p Params) MaxAllowedMoves() int {
	return p.HandLength * p.NumDigits * p.NumPlayers
}

// WinReward is what the final bidder wins (or loses) against each opponent combined.
func (p Params) WinReward() int {
	return p.NumPlayers - 1
}

func (p Params) ChallengeReward() int {
	return 1
}

func (p Params) String() string {
	return fmt.Sprintf("%dx%d/%dp", p.HandLength, p.NumDigits, p.NumPlayers)
}
