package kitties

import "github.com/iov-one/kitties/errors"

var (
	// ErrDuplicateToken is returned when a kitty with the same DNA exists.
	ErrDuplicateToken = errors.Register(500, "duplicate kitty")

	// ErrTooManyOwned is returned when an account cannot own more kitties.
	ErrTooManyOwned = errors.Register(501, "too many kitties owned")

	// ErrNoSuchToken is returned when a kitty does not exist.
	ErrNoSuchToken = errors.Register(502, "no such kitty")

	// ErrNotOwner is returned when the caller does not own the kitty.
	ErrNotOwner = errors.Register(503, "not the owner")

	// ErrTransferToSelf is returned when the destination is the caller.
	ErrTransferToSelf = errors.Register(504, "transfer to self")
)
