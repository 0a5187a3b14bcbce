// Package credit implements the metering ledger: every chat turn and image
// generation is paid for from a per-user integer balance, with an audit entry
// per successful mutation.
package credit

import (
	"context"
	"time"
)

// Reason labels why a ledger entry was written.
type Reason string

const (
	ReasonChat       Reason = "chat"
	ReasonChatRefund Reason = "chat_refund"
	ReasonImage      Reason = "image"
	ReasonGrant      Reason = "grant"
)

// Entry is one signed balance mutation. Debits are negative, credits positive.
type Entry struct {
	ID        uint
	UserID    uint
	Amount    int
	Reason    Reason
	CreatedAt time.Time
}

// Repository defines storage operations for the credit ledger. The stored
// balance is the single source of truth; callers must never trust a cached
// value after a failure path.
type Repository interface {
	// GetBalance reads the authoritative balance.
	GetBalance(ctx context.Context, userID uint) (int, error)

	// DebitIfSufficient atomically deducts amount when the balance covers it.
	// ok is false when the balance is insufficient; the balance is then left
	// untouched (rejected, not clamped).
	DebitIfSufficient(ctx context.Context, userID uint, amount int) (newBalance int, ok bool, err error)

	// Credit adds amount back and returns the resulting authoritative balance.
	Credit(ctx context.Context, userID uint, amount int) (newBalance int, err error)

	// RecordEntry appends an audit row.
	RecordEntry(ctx context.Context, entry *Entry) error

	// ListEntries returns the most recent entries for a user, newest first.
	ListEntries(ctx context.Context, userID uint, limit int) ([]*Entry, error)
}
