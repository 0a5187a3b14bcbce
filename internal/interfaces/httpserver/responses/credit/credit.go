package creditresponses

import (
	"time"

	"glow-server/internal/domain/credit"
)

// CreditEntryResponse is one ledger entry.
type CreditEntryResponse struct {
	ID        uint      `json:"id"`
	Amount    int       `json:"amount"`
	Reason    string    `json:"reason"`
	CreatedAt time.Time `json:"created_at"`
}

// CreditBalanceResponse is the authoritative balance plus recent history.
type CreditBalanceResponse struct {
	Balance int                   `json:"balance"`
	History []CreditEntryResponse `json:"history"`
}

// NewCreditBalanceResponse builds the balance view.
func NewCreditBalanceResponse(balance int, entries []*credit.Entry) *CreditBalanceResponse {
	history := make([]CreditEntryResponse, 0, len(entries))
	for _, e := range entries {
		history = append(history, CreditEntryResponse{
			ID:        e.ID,
			Amount:    e.Amount,
			Reason:    string(e.Reason),
			CreatedAt: e.CreatedAt,
		})
	}
	return &CreditBalanceResponse{Balance: balance, History: history}
}
