package image

import (
	"context"

	"glow-server/internal/utils/idgen"
	"glow-server/internal/utils/platformerrors"
)

// Service provides gallery business logic.
type Service struct {
	repo Repository
}

// NewService constructs a Service with required dependencies.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Record stores a successful generation in the caller's gallery.
func (s *Service) Record(ctx context.Context, userID uint, prompt, model, size, url string) (*GeneratedImage, error) {
	publicID, err := idgen.GenerateSecureID("img", 16)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to generate image id")
	}
	img := &GeneratedImage{
		PublicID: publicID,
		UserID:   userID,
		Prompt:   prompt,
		Model:    model,
		Size:     size,
		URL:      url,
	}
	if err := s.repo.Create(ctx, img); err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to store generated image")
	}
	return img, nil
}

// List returns the caller's gallery, newest first.
func (s *Service) List(ctx context.Context, userID uint) ([]*GeneratedImage, error) {
	images, err := s.repo.FindByFilter(ctx, ImageFilter{UserID: &userID})
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to list generated images")
	}
	return images, nil
}
