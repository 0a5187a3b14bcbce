package dbschema

import (
	"glow-server/internal/domain/user"
	"glow-server/internal/infrastructure/database"
)

func init() {
	database.RegisterSchemaForAutoMigrate(User{})
}

// User represents the persisted user schema tied to an external identity.
type User struct {
	BaseModel
	PublicID string  `gorm:"type:varchar(50);uniqueIndex;not null"`
	Issuer   string  `gorm:"type:varchar(255);not null;uniqueIndex:ux_users_issuer_subject"`
	Subject  string  `gorm:"type:varchar(255);not null;uniqueIndex:ux_users_issuer_subject"`
	Email    *string `gorm:"type:varchar(320)"`
	Name     *string `gorm:"type:varchar(255)"`
	// CreditBalance is mutated only through the credit repository's atomic
	// updates.
	CreditBalance int `gorm:"not null;default:0"`
}

// NewSchemaUser converts a domain user into a schema instance.
func NewSchemaUser(u *user.User) *User {
	if u == nil {
		return nil
	}

	return &User{
		BaseModel: BaseModel{
			ID:        u.ID,
			CreatedAt: u.CreatedAt,
			UpdatedAt: u.UpdatedAt,
		},
		PublicID:      u.PublicID,
		Issuer:        u.Issuer,
		Subject:       u.Subject,
		Email:         u.Email,
		Name:          u.Name,
		CreditBalance: u.CreditBalance,
	}
}

// EtoD converts a schema user back to the domain representation.
func (u *User) EtoD() *user.User {
	if u == nil {
		return nil
	}

	return &user.User{
		ID:            u.ID,
		PublicID:      u.PublicID,
		Issuer:        u.Issuer,
		Subject:       u.Subject,
		Email:         u.Email,
		Name:          u.Name,
		CreditBalance: u.CreditBalance,
		CreatedAt:     u.CreatedAt,
		UpdatedAt:     u.UpdatedAt,
	}
}
