package store

import (
	"context"
	"errors"

	"github.com/jahangeer-44/Job-Nest/internal/identity/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite for
// now) implement this. It exposes sub-repositories to keep concerns tidy
// and testable.
type Store interface {
	Users() Users

	ApplyMigrations() error

	// WithTx executes a function within a transaction.
	// If fn returns an error, the transaction is rolled back.
	// If fn returns nil, the transaction is committed.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transaction-scoped view of the store.
type Tx interface {
	Users() Users
}

// Users is the narrow gateway the identity service uses against the user
// record store. Email uniqueness is enforced here, atomically, by the
// storage layer's unique constraint.
type Users interface {
	// GetByID returns a user by id.
	GetByID(ctx context.Context, id string) (domain.User, error)

	// GetByEmail looks a user up by the login key.
	GetByEmail(ctx context.Context, email string) (domain.User, error)

	// Create inserts a new user (id is provided by the app via ULID).
	// A duplicate email yields ErrAlreadyExists, never an overwrite.
	Create(ctx context.Context, u domain.User) error

	// Update persists the mutated user row and bumps updated_at.
	Update(ctx context.Context, u domain.User) error
}
