package photo

import "errors"

var (
	ErrNotFound        = errors.New("photo not found")
	ErrInvalidPhoto    = errors.New("invalid photo")
	ErrInvalidDataURL  = errors.New("invalid data url")
	ErrUnsupportedType = errors.New("unsupported content type")
	ErrTooLarge        = errors.New("photo too large")
	ErrStorageDisabled = errors.New("object storage is not configured")
)
