package credit

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLedger struct {
	balances map[uint]int
	entries  []*Entry
}

func newFakeLedger(balances map[uint]int) *fakeLedger {
	return &fakeLedger{balances: balances}
}

func (r *fakeLedger) GetBalance(_ context.Context, userID uint) (int, error) {
	return r.balances[userID], nil
}

func (r *fakeLedger) DebitIfSufficient(_ context.Context, userID uint, amount int) (int, bool, error) {
	balance := r.balances[userID]
	if balance < amount {
		return balance, false, nil
	}
	r.balances[userID] = balance - amount
	return r.balances[userID], true, nil
}

func (r *fakeLedger) Credit(_ context.Context, userID uint, amount int) (int, error) {
	r.balances[userID] += amount
	return r.balances[userID], nil
}

func (r *fakeLedger) RecordEntry(_ context.Context, entry *Entry) error {
	r.entries = append(r.entries, entry)
	return nil
}

func (r *fakeLedger) ListEntries(_ context.Context, userID uint, limit int) ([]*Entry, error) {
	var out []*Entry
	for i := len(r.entries) - 1; i >= 0 && len(out) < limit; i-- {
		if r.entries[i].UserID == userID {
			out = append(out, r.entries[i])
		}
	}
	return out, nil
}

func TestDeduct(t *testing.T) {
	ctx := context.Background()

	t.Run("deducts and records entry", func(t *testing.T) {
		ledger := newFakeLedger(map[uint]int{1: 10})
		svc := NewService(ledger)

		newBalance, err := svc.Deduct(ctx, 1, 5, ReasonImage)
		require.NoError(t, err)
		assert.Equal(t, 5, newBalance)

		require.Len(t, ledger.entries, 1)
		assert.Equal(t, -5, ledger.entries[0].Amount)
		assert.Equal(t, ReasonImage, ledger.entries[0].Reason)
	})

	t.Run("rejects insufficient balance without clamping", func(t *testing.T) {
		ledger := newFakeLedger(map[uint]int{1: 4})
		svc := NewService(ledger)

		_, err := svc.Deduct(ctx, 1, 5, ReasonImage)
		require.Error(t, err)
		assert.True(t, IsInsufficientCredits(err))

		assert.Equal(t, 4, ledger.balances[1])
		assert.Empty(t, ledger.entries)
	})

	t.Run("exact balance is sufficient", func(t *testing.T) {
		ledger := newFakeLedger(map[uint]int{1: 5})
		svc := NewService(ledger)

		newBalance, err := svc.Deduct(ctx, 1, 5, ReasonImage)
		require.NoError(t, err)
		assert.Equal(t, 0, newBalance)
	})
}

func TestReserveCommit(t *testing.T) {
	ctx := context.Background()
	ledger := newFakeLedger(map[uint]int{1: 3})
	svc := NewService(ledger)

	res, err := svc.Reserve(ctx, 1, 1, ReasonChat)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Balance())
	assert.Equal(t, 2, ledger.balances[1])

	require.NoError(t, res.Commit(ctx))
	require.Len(t, ledger.entries, 1)
	assert.Equal(t, -1, ledger.entries[0].Amount)
	assert.Equal(t, ReasonChat, ledger.entries[0].Reason)

	// committing twice must not double the entry
	require.NoError(t, res.Commit(ctx))
	assert.Len(t, ledger.entries, 1)
}

func TestReserveRelease(t *testing.T) {
	ctx := context.Background()
	ledger := newFakeLedger(map[uint]int{1: 3})
	svc := NewService(ledger)

	res, err := svc.Reserve(ctx, 1, 1, ReasonChat)
	require.NoError(t, err)
	assert.Equal(t, 2, ledger.balances[1])

	// a concurrent grant lands while the remote call is in flight
	_, err = ledger.Credit(ctx, 1, 10)
	require.NoError(t, err)

	balance, err := res.Release(ctx)
	require.NoError(t, err)
	assert.Equal(t, 13, balance, "release must report a freshly read balance")
	assert.Empty(t, ledger.entries, "a released reservation leaves no audit entry")
}

func TestReserveInsufficient(t *testing.T) {
	ctx := context.Background()
	ledger := newFakeLedger(map[uint]int{1: 0})
	svc := NewService(ledger)

	_, err := svc.Reserve(ctx, 1, 1, ReasonChat)
	require.Error(t, err)
	assert.True(t, IsInsufficientCredits(err))
	assert.Equal(t, 0, ledger.balances[1])
}

func TestGrant(t *testing.T) {
	ctx := context.Background()
	ledger := newFakeLedger(map[uint]int{1: 0})
	svc := NewService(ledger)

	balance, err := svc.Grant(ctx, 1, 25)
	require.NoError(t, err)
	assert.Equal(t, 25, balance)
	require.Len(t, ledger.entries, 1)
	assert.Equal(t, ReasonGrant, ledger.entries[0].Reason)

	t.Run("non-positive amount is a no-op", func(t *testing.T) {
		balance, err := svc.Grant(ctx, 1, 0)
		require.NoError(t, err)
		assert.Equal(t, 25, balance)
		assert.Len(t, ledger.entries, 1)
	})
}

func TestHistoryNewestFirst(t *testing.T) {
	ctx := context.Background()
	ledger := newFakeLedger(map[uint]int{1: 100})
	svc := NewService(ledger)

	_, err := svc.Deduct(ctx, 1, 1, ReasonChat)
	require.NoError(t, err)
	_, err = svc.Deduct(ctx, 1, 5, ReasonImage)
	require.NoError(t, err)

	entries, err := svc.History(ctx, 1, 10)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, ReasonImage, entries[0].Reason)
	assert.Equal(t, ReasonChat, entries[1].Reason)
}
