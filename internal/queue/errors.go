package queue

import "errors"

var (
	ErrUnknownDriver = errors.New("unknown queue driver")
	ErrClosed        = errors.New("queue is closed")
	ErrNoHandler     = errors.New("queue has no handler")
)
