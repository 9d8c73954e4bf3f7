package walklog

import "errors"

var (
	ErrNotFound    = errors.New("walk log not found")
	ErrInvalidData = errors.New("invalid walk log")
	ErrNotActive   = errors.New("walk already finished")
)
