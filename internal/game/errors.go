package game

import "errors"

var (
	// ErrInvalidConfig is returned when a hand cannot be constructed from
	// the given parameters, such as a big blind that is not a positive even number.
	ErrInvalidConfig = errors.New("invalid hand configuration")

	// ErrInvalidTransition is returned when advancing from Ended, advancing
	// while players still owe an action, or starting without enough players.
	ErrInvalidTransition = errors.New("invalid round transition")

	// ErrTurnOrder is returned when a player acts while not at the head of
	// the acting queue.
	ErrTurnOrder = errors.New("player is not next to act")

	// ErrInactivePlayer is returned when a folded player tries to act
	ErrInactivePlayer = errors.New("player is not active in the hand")

	// ErrIllegalAction is returned for actions that are not allowed in the
	// current situation, such as checking facing a bet.
	ErrIllegalAction = errors.New("illegal action")
)
