package fireworks

import "errors"

var (
	// ErrInvalidColor reports a shell whose color rule is not a single color,
	// a pair, a palette or random. It indicates a broken catalog entry and
	// aborts the burst.
	ErrInvalidColor = errors.New("fireworks: invalid shell color")

	// ErrShellSpent is returned when a shell is launched or burst twice.
	ErrShellSpent = errors.New("fireworks: shell already used")

	// ErrUnknownShell is returned for a shell type name not in the catalog.
	ErrUnknownShell = errors.New("fireworks: unknown shell type")

	// ErrUnknownSound is returned by audio players asked for an unregistered sound.
	ErrUnknownSound = errors.New("fireworks: unknown sound")
)
