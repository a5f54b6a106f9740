package storage

import "context"

type unwrapper interface {
	Unwrap() Provider
}

// WithTransaction runs fn as one unit on provider.
//
// Providers implementing Transactor run fn atomically. For all others fn is
// called directly, and writes made before a failure inside fn stay in place;
// compensating for them is the caller's responsibility.
func WithTransaction(ctx context.Context, provider Provider, fn func(ctx context.Context) error) error {
	for p := provider; p != nil; {
		if t, ok := p.(Transactor); ok {
			return t.RunInTransaction(ctx, fn) //nolint:wrapcheck //errors of fn are passed through
		}

		u, ok := p.(unwrapper)
		if !ok {
			break
		}
		p = u.Unwrap()
	}

	return fn(ctx)
}
