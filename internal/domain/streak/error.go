package streak

import "errors"

var (
	ErrInvalidDate     = errors.New("invalid walk date")
	ErrVersionConflict = errors.New("streak version conflict")
)
