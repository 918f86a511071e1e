package achievement

import (
	"errors"
)

var (
	ErrUnknownAchievement = errors.New("unknown achievement id")
)
