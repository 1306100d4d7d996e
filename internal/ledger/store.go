package ledger

import "context"

// Store abstracts persistence of user ledgers. Implementations must be
// safe for concurrent use and must not lose an update for one user while
// another user's ledger is being written.
//
// Load creates and persists a default ledger on first access for a user.
// Update performs a read-modify-write for one user as a single atomic step.
type Store interface {
	Load(ctx context.Context, userID int64) (Ledger, error)
	Save(ctx context.Context, userID int64, l Ledger) error
	Update(ctx context.Context, userID int64, fn func(*Ledger) error) error
}
