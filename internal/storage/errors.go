package storage

import "errors"

var (
	ErrUnknownDriver        = errors.New("unknown data source")
	ErrDriverNotImplemented = errors.New("data source is not implemented")

	ErrMissingCollection = errors.New("collection name must be provided to repository")
	ErrMissingProvider   = errors.New("provider must be provided to repository")
)
