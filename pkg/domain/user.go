package domain

import "github.com/google/uuid"

// UserID uniquely identifies a user within the system.
// It is a thin wrapper around uuid.UUID to provide type safety at the domain layer.
type UserID uuid.UUID

// AnonymousUser owns every fill when authentication is disabled.
var AnonymousUser = UserID(uuid.Nil) //nolint: gochecknoglobals

// String returns the canonical UUID representation.
func (id UserID) String() string { return uuid.UUID(id).String() }

// MarshalText encodes the id in its canonical UUID form.
func (id UserID) MarshalText() ([]byte, error) { return uuid.UUID(id).MarshalText() }

// UnmarshalText parses a UUID.
func (id *UserID) UnmarshalText(b []byte) error { return (*uuid.UUID)(id).UnmarshalText(b) }
