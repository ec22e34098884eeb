package repository

import "context"

// Tx is the part of a driver transaction the repositories share. Rollback after
// a successful Commit must return nil.
type Tx interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}
