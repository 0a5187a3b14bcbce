package dbschema

import (
	"glow-server/internal/domain/persona"
	"glow-server/internal/infrastructure/database"
)

func init() {
	database.RegisterSchemaForAutoMigrate(Persona{})
}

// Persona represents the database schema for saved assistant personalities.
type Persona struct {
	BaseModel
	PublicID     string `gorm:"type:varchar(50);uniqueIndex;not null"`
	UserID       uint   `gorm:"index;not null"`
	User         User   `gorm:"foreignKey:UserID"`
	Name         string `gorm:"type:varchar(120);not null"`
	SystemPrompt string `gorm:"type:text;not null"`
}

// NewSchemaPersona converts a domain persona into a schema instance.
func NewSchemaPersona(p *persona.Persona) *Persona {
	if p == nil {
		return nil
	}

	return &Persona{
		BaseModel: BaseModel{
			ID:        p.ID,
			CreatedAt: p.CreatedAt,
			UpdatedAt: p.UpdatedAt,
		},
		PublicID:     p.PublicID,
		UserID:       p.UserID,
		Name:         p.Name,
		SystemPrompt: p.SystemPrompt,
	}
}

// EtoD converts a schema persona back to the domain representation.
func (p *Persona) EtoD() *persona.Persona {
	if p == nil {
		return nil
	}

	return &persona.Persona{
		ID:           p.ID,
		PublicID:     p.PublicID,
		UserID:       p.UserID,
		Name:         p.Name,
		SystemPrompt: p.SystemPrompt,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}
