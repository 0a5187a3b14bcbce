package personaresponses

import (
	"time"

	"glow-server/internal/domain/persona"
)

// PersonaResponse is one stored persona.
type PersonaResponse struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	SystemPrompt string    `json:"system_prompt"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// PersonaListResponse wraps a persona listing.
type PersonaListResponse struct {
	Personas []PersonaResponse `json:"personas"`
}

// NewPersonaResponse converts a domain persona.
func NewPersonaResponse(p *persona.Persona) PersonaResponse {
	return PersonaResponse{
		ID:           p.PublicID,
		Name:         p.Name,
		SystemPrompt: p.SystemPrompt,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

// NewPersonaListResponse converts a slice of domain personas.
func NewPersonaListResponse(personas []*persona.Persona) *PersonaListResponse {
	out := make([]PersonaResponse, 0, len(personas))
	for _, p := range personas {
		out = append(out, NewPersonaResponse(p))
	}
	return &PersonaListResponse{Personas: out}
}
