package repository

import "context"

// Transactor runs fn as one unit of work. Repository calls made with the
// context handed to fn join the same transaction.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}
