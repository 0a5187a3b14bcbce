// Package persona owns reusable assistant personalities. A persona's system
// prompt is prepended to the model context when a chat turn selects it.
package persona

import (
	"context"
	"time"
)

// Persona is a named system prompt owned by one user.
type Persona struct {
	ID           uint
	PublicID     string
	UserID       uint
	Name         string
	SystemPrompt string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// PersonaFilter narrows persona lookups.
type PersonaFilter struct {
	ID       *uint
	PublicID *string
	UserID   *uint
}

// Repository defines storage operations for personas.
type Repository interface {
	Create(ctx context.Context, p *Persona) error
	FindByFilter(ctx context.Context, filter PersonaFilter) ([]*Persona, error)
	FindByPublicID(ctx context.Context, publicID string) (*Persona, error)
	Update(ctx context.Context, p *Persona) error
	Delete(ctx context.Context, id uint) error
}
