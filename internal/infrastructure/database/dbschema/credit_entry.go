package dbschema

import (
	"glow-server/internal/domain/credit"
	"glow-server/internal/infrastructure/database"
)

func init() {
	database.RegisterSchemaForAutoMigrate(CreditEntry{})
}

// CreditEntry represents one persisted ledger mutation.
type CreditEntry struct {
	BaseModel
	UserID uint   `gorm:"index:idx_credit_entries_user_created;not null"`
	User   User   `gorm:"foreignKey:UserID"`
	Amount int    `gorm:"not null"`
	Reason string `gorm:"type:varchar(30);not null"`
}

// NewSchemaCreditEntry converts a domain entry into a schema instance.
func NewSchemaCreditEntry(e *credit.Entry) *CreditEntry {
	if e == nil {
		return nil
	}

	return &CreditEntry{
		BaseModel: BaseModel{
			ID:        e.ID,
			CreatedAt: e.CreatedAt,
		},
		UserID: e.UserID,
		Amount: e.Amount,
		Reason: string(e.Reason),
	}
}

// EtoD converts a schema entry back to the domain representation.
func (e *CreditEntry) EtoD() *credit.Entry {
	if e == nil {
		return nil
	}

	return &credit.Entry{
		ID:        e.ID,
		UserID:    e.UserID,
		Amount:    e.Amount,
		Reason:    credit.Reason(e.Reason),
		CreatedAt: e.CreatedAt,
	}
}
