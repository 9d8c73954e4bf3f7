package goal

import "errors"

var (
	ErrInvalidGoal     = errors.New("invalid step goal")
	ErrVersionConflict = errors.New("goals version conflict")
)
