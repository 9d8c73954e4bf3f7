package user

import "errors"

var (
	ErrNotFound      = errors.New("user not found")
	ErrInvalidAuth   = errors.New("invalid credentials")
	ErrInvalidInput  = errors.New("invalid input")
	ErrAlreadyExists = errors.New("login already taken")
)
