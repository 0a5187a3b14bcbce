package persona

import (
	"context"
	"strings"
	"time"

	"glow-server/internal/utils/idgen"
	"glow-server/internal/utils/platformerrors"
)

// Service provides persona business logic with per-user ownership checks.
type Service struct {
	repo Repository
}

// NewService constructs a Service with required dependencies.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create validates and stores a new persona for the caller.
func (s *Service) Create(ctx context.Context, userID uint, name, systemPrompt string) (*Persona, error) {
	name = strings.TrimSpace(name)
	systemPrompt = strings.TrimSpace(systemPrompt)
	if name == "" {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation, "persona name is required", nil, "")
	}
	if systemPrompt == "" {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation, "persona system prompt is required", nil, "")
	}

	publicID, err := idgen.GenerateSecureID("prs", 16)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to generate persona id")
	}
	p := &Persona{
		PublicID:     publicID,
		UserID:       userID,
		Name:         name,
		SystemPrompt: systemPrompt,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to create persona")
	}
	return p, nil
}

// List returns the caller's personas.
func (s *Service) List(ctx context.Context, userID uint) ([]*Persona, error) {
	personas, err := s.repo.FindByFilter(ctx, PersonaFilter{UserID: &userID})
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to list personas")
	}
	return personas, nil
}

// GetOwned fetches a persona and enforces ownership.
func (s *Service) GetOwned(ctx context.Context, userID uint, publicID string) (*Persona, error) {
	p, err := s.repo.FindByPublicID(ctx, publicID)
	if err != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeNotFound, "persona not found", err, "")
	}
	if p.UserID != userID {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeForbidden, "persona belongs to another user", nil, "")
	}
	return p, nil
}

// Update changes a persona's name and/or system prompt. Nil fields keep the
// stored value.
func (s *Service) Update(ctx context.Context, userID uint, publicID string, name, systemPrompt *string) (*Persona, error) {
	p, err := s.GetOwned(ctx, userID, publicID)
	if err != nil {
		return nil, err
	}

	if name != nil {
		trimmed := strings.TrimSpace(*name)
		if trimmed == "" {
			return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation, "persona name cannot be blank", nil, "")
		}
		p.Name = trimmed
	}
	if systemPrompt != nil {
		trimmed := strings.TrimSpace(*systemPrompt)
		if trimmed == "" {
			return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation, "persona system prompt cannot be blank", nil, "")
		}
		p.SystemPrompt = trimmed
	}

	p.UpdatedAt = time.Now()
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to update persona")
	}
	return p, nil
}

// Delete removes the persona. Existing threads that used it keep their
// already persisted messages untouched.
func (s *Service) Delete(ctx context.Context, userID uint, publicID string) error {
	p, err := s.GetOwned(ctx, userID, publicID)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, p.ID); err != nil {
		return platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to delete persona")
	}
	return nil
}
