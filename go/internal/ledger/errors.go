package ledger

import "errors"

var (
	// ErrAuthenticationFailed is returned when a team id or secret does not match.
	ErrAuthenticationFailed = errors.New("bad credentials")
	// ErrUnknownTeam is returned when a team id does not exist.
	ErrUnknownTeam = errors.New("unknown team")
	// ErrInsufficientFunds is returned when a debit would overdraw a balance.
	ErrInsufficientFunds = errors.New("insufficient tokens")
	// ErrEmptyName is returned when a rename is empty after trimming.
	ErrEmptyName = errors.New("name required")
)
