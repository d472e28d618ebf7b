package game

import "errors"

var (
	ErrInvalidParams        = errors.New("invalid game parameters")
	ErrMalformedBidText     = errors.New("malformed bid text")
	ErrInvalidHand          = errors.New("invalid hand")
	ErrInvalidBid           = errors.New("invalid bid")
	ErrInvalidAction        = errors.New("invalid action")
	ErrPreconditionViolated = errors.New("precondition violated")
	ErrIllegalMove          = errors.New("illegal move")
)
