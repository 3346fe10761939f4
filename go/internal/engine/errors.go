package engine

import "errors"

// The closed set of domain errors the state machine can return. All of them
// are recoverable and reported to the originating session only; none mutate
// state.
var (
	ErrAuctionNotRunning   = errors.New("auction not running")
	ErrNoCurrentPlayer     = errors.New("no current player")
	ErrBelowBasePrice      = errors.New("bid below base price")
	ErrBidTooLow           = errors.New("bid must be greater than current")
	ErrNoPlayersQueued     = errors.New("no players in queue")
	ErrInvalidBid          = errors.New("invalid bid")
	ErrEmptyPlayerName     = errors.New("player name required")
	ErrBasePriceOutOfRange = errors.New("base price out of range")
	ErrBasePriceDisabled   = errors.New("base prices are not enabled")
)
