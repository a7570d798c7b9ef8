// Package storage defines how fills and their queue jobs are persisted.
// pkg/storage/postgres is the only backend; the interfaces exist so the fill
// service can be tested against mocks.
//
//go:generate mockgen -package mockstorage -source=interface.go -destination=mock/mockstorage.go *
package storage

import (
	"context"
	"errors"
)

//nolint: gochecknoglobals
var (
	// ErrAlreadyInTx is returned by operations that need the pool, such as
	// Begin, when called on a transaction handle.
	ErrAlreadyInTx = errors.New("already in tx")
	// ErrNotInTx is returned by Commit and Rollback outside a transaction.
	ErrNotInTx = errors.New("not in tx")
)

// AllStorage is everything a fill operation may touch, inside or outside a
// transaction.
type AllStorage interface {
	FillStorage
	JobStorage
}

// TxStorage is a handle bound to one transaction. It must not be used after
// Commit or Rollback.
type TxStorage interface {
	AllStorage

	Commit() error
	Rollback() error
}

// Storage is the pool level handle.
type Storage interface {
	AllStorage

	Close() error
	Begin(ctx context.Context) (TxStorage, error)
	// WithTx runs cb in a transaction and commits when it returns nil. A fill
	// and its job are always created this way.
	WithTx(ctx context.Context, cb func(storage AllStorage) error) error
}
