package store

import (
	"context"
	"errors"

	"github.com/Jeomhps/hotelbooking-api/internal/booking"
)

// Package store defines the record store contract shared by every backend.
// Backends live in sub-packages:
// - jsonstore: a single JSON document on local disk (default)
// - sqlstore:  MySQL or PostgreSQL through sqlx

// Collection is the name of the booking collection, used as the top-level
// document key and as the SQL table name (lowercased).
const Collection = "Hotelbooking"

// ErrNotFound is returned when no booking matches the requested id.
var ErrNotFound = errors.New("booking not found")

// Repository is the durable mapping from booking id to booking record.
// Every mutation is flushed to durable storage before it returns.
type Repository interface {
	// List returns every booking in insertion order. Never nil.
	List(ctx context.Context) ([]booking.Booking, error)
	// FindByID returns the first booking with the given id, or ErrNotFound.
	FindByID(ctx context.Context, id string) (booking.Booking, error)
	// Create assigns a fresh id, appends and persists the record.
	Create(ctx context.Context, fields map[string]any) (booking.Booking, error)
	// Update merges fields into the stored record; the stored id is kept.
	Update(ctx context.Context, id string, fields map[string]any) (booking.Booking, error)
	// Delete removes the booking, or returns ErrNotFound if none matched.
	Delete(ctx context.Context, id string) error
	// Ping reports whether the backing storage is reachable.
	Ping(ctx context.Context) error
	Close() error
}

// StorageError reports a durable read or write that could not complete.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string { return "storage: " + e.Op + ": " + e.Err.Error() }

func (e *StorageError) Unwrap() error { return e.Err }

// Storage wraps err as a *StorageError for op. A nil err stays nil.
func Storage(op string, err error) error {
	if err == nil {
		return nil
	}
	return &StorageError{Op: op, Err: err}
}
