package personahandler

import (
	"context"

	"glow-server/internal/domain/persona"
	personarequests "glow-server/internal/interfaces/httpserver/requests/persona"
	personaresponses "glow-server/internal/interfaces/httpserver/responses/persona"
)

// PersonaHandler exposes persona CRUD to the HTTP layer.
type PersonaHandler struct {
	personas *persona.Service
}

// NewPersonaHandler creates a new persona handler
func NewPersonaHandler(personas *persona.Service) *PersonaHandler {
	return &PersonaHandler{personas: personas}
}

// CreatePersona stores a new persona for the caller.
func (h *PersonaHandler) CreatePersona(ctx context.Context, userID uint, request personarequests.CreatePersonaRequest) (*personaresponses.PersonaResponse, error) {
	p, err := h.personas.Create(ctx, userID, request.Name, request.SystemPrompt)
	if err != nil {
		return nil, err
	}
	resp := personaresponses.NewPersonaResponse(p)
	return &resp, nil
}

// ListPersonas returns the caller's personas.
func (h *PersonaHandler) ListPersonas(ctx context.Context, userID uint) (*personaresponses.PersonaListResponse, error) {
	personas, err := h.personas.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	return personaresponses.NewPersonaListResponse(personas), nil
}

// UpdatePersona changes a persona's name and/or system prompt.
func (h *PersonaHandler) UpdatePersona(ctx context.Context, userID uint, publicID string, request personarequests.UpdatePersonaRequest) (*personaresponses.PersonaResponse, error) {
	p, err := h.personas.Update(ctx, userID, publicID, request.Name, request.SystemPrompt)
	if err != nil {
		return nil, err
	}
	resp := personaresponses.NewPersonaResponse(p)
	return &resp, nil
}

// DeletePersona removes a persona.
func (h *PersonaHandler) DeletePersona(ctx context.Context, userID uint, publicID string) error {
	return h.personas.Delete(ctx, userID, publicID)
}
