package credit

import (
	"context"
	"fmt"

	"glow-server/internal/utils/platformerrors"
)

// Service provides balance reads and the reserve/commit/release protocol used
// by the chat flow, plus the single-shot deduction used by image generation.
type Service struct {
	repo Repository
}

// NewService constructs a Service with required dependencies.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Balance returns the authoritative stored balance.
func (s *Service) Balance(ctx context.Context, userID uint) (int, error) {
	balance, err := s.repo.GetBalance(ctx, userID)
	if err != nil {
		return 0, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to read credit balance")
	}
	return balance, nil
}

// History returns the most recent ledger entries, newest first.
func (s *Service) History(ctx context.Context, userID uint, limit int) ([]*Entry, error) {
	if limit <= 0 {
		limit = 50
	}
	entries, err := s.repo.ListEntries(ctx, userID, limit)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to list credit entries")
	}
	return entries, nil
}

// Grant adds credits unconditionally (signup bonus, top-up) and records the
// entry.
func (s *Service) Grant(ctx context.Context, userID uint, amount int) (int, error) {
	if amount <= 0 {
		return s.Balance(ctx, userID)
	}
	newBalance, err := s.repo.Credit(ctx, userID, amount)
	if err != nil {
		return 0, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to grant credits")
	}
	if err := s.repo.RecordEntry(ctx, &Entry{UserID: userID, Amount: amount, Reason: ReasonGrant}); err != nil {
		return 0, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to record grant entry")
	}
	return newBalance, nil
}

// Deduct is the image-generation path: a single atomic check-and-deduct whose
// reported new balance is authoritative. Insufficient funds reject the whole
// operation before any generation attempt. There is deliberately no paired
// refund here; see Reserve for the chat path.
func (s *Service) Deduct(ctx context.Context, userID uint, amount int, reason Reason) (int, error) {
	newBalance, ok, err := s.repo.DebitIfSufficient(ctx, userID, amount)
	if err != nil {
		return 0, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to deduct credits")
	}
	if !ok {
		return newBalance, NewInsufficientCreditsError(ctx, amount, newBalance)
	}
	if err := s.repo.RecordEntry(ctx, &Entry{UserID: userID, Amount: -amount, Reason: reason}); err != nil {
		return 0, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to record debit entry")
	}
	return newBalance, nil
}

// Reserve debits amount up front so a remote generation call never runs
// unpaid. The caller must finish the reservation exactly once: Commit after
// the generation succeeded, Release after it failed.
func (s *Service) Reserve(ctx context.Context, userID uint, amount int, reason Reason) (*Reservation, error) {
	newBalance, ok, err := s.repo.DebitIfSufficient(ctx, userID, amount)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to reserve credits")
	}
	if !ok {
		return nil, NewInsufficientCreditsError(ctx, amount, newBalance)
	}
	return &Reservation{
		svc:     s,
		userID:  userID,
		amount:  amount,
		reason:  reason,
		balance: newBalance,
	}, nil
}

// Reservation is an in-flight debit. The stored balance already reflects the
// deduction; only the audit entry and the possible refund are pending.
type Reservation struct {
	svc      *Service
	userID   uint
	amount   int
	reason   Reason
	balance  int
	finished bool
}

// Balance is the balance observed right after the reservation's debit.
func (r *Reservation) Balance() int {
	return r.balance
}

// Commit finalizes the debit by recording its ledger entry.
func (r *Reservation) Commit(ctx context.Context) error {
	if r.finished {
		return nil
	}
	r.finished = true
	if err := r.svc.repo.RecordEntry(ctx, &Entry{UserID: r.userID, Amount: -r.amount, Reason: r.reason}); err != nil {
		return platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to record reservation entry")
	}
	return nil
}

// Release refunds the reserved amount and returns a freshly read authoritative
// balance. The re-read matters: concurrent operations may have moved the
// balance while the generation call was in flight, so the pre-reservation
// value must not be trusted.
func (r *Reservation) Release(ctx context.Context) (int, error) {
	if r.finished {
		return r.svc.Balance(ctx, r.userID)
	}
	r.finished = true
	if _, err := r.svc.repo.Credit(ctx, r.userID, r.amount); err != nil {
		return 0, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to refund reserved credits")
	}
	return r.svc.Balance(ctx, r.userID)
}

// NewInsufficientCreditsError builds the typed rejection for a balance that
// cannot cover the requested amount.
func NewInsufficientCreditsError(ctx context.Context, required, balance int) error {
	return platformerrors.NewError(
		ctx,
		platformerrors.LayerDomain,
		platformerrors.ErrorTypePaymentRequired,
		fmt.Sprintf("insufficient credits: need %d, have %d", required, balance),
		nil,
		"",
	)
}

// IsInsufficientCredits reports whether err is the insufficient-balance
// rejection.
func IsInsufficientCredits(err error) bool {
	return platformerrors.IsErrorType(err, platformerrors.ErrorTypePaymentRequired)
}
