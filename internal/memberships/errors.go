package memberships

import "errors"

var (
	ErrValidation  = errors.New("validation failed")
	ErrInvalidUser = errors.New("invalid user id")
)
