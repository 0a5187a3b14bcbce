package credithandler

import (
	"context"

	"glow-server/internal/domain/credit"
	creditresponses "glow-server/internal/interfaces/httpserver/responses/credit"
)

const defaultHistoryLimit = 50

// CreditHandler exposes balance and ledger reads to the HTTP layer.
type CreditHandler struct {
	credits *credit.Service
}

// NewCreditHandler creates a new credit handler
func NewCreditHandler(credits *credit.Service) *CreditHandler {
	return &CreditHandler{credits: credits}
}

// GetBalance returns the authoritative balance plus recent ledger history.
func (h *CreditHandler) GetBalance(ctx context.Context, userID uint) (*creditresponses.CreditBalanceResponse, error) {
	balance, err := h.credits.Balance(ctx, userID)
	if err != nil {
		return nil, err
	}
	entries, err := h.credits.History(ctx, userID, defaultHistoryLimit)
	if err != nil {
		return nil, err
	}
	return creditresponses.NewCreditBalanceResponse(balance, entries), nil
}
