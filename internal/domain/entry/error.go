package entry

import (
	"errors"
)

var (
	ErrNotFound     = errors.New("entry not found")
	ErrUnknownDrink = errors.New("unknown drink id")
	ErrInvalidEntry = errors.New("invalid entry")
)
