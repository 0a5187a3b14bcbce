// Package image owns the gallery of generated images. Records are written
// only after the remote provider returns a usable result; failed generations
// leave no gallery entry.
package image

import (
	"context"
	"time"
)

// GeneratedImage is one successful generation stored in the user's gallery.
type GeneratedImage struct {
	ID        uint
	PublicID  string
	UserID    uint
	Prompt    string
	Model     string
	Size      string
	URL       string
	CreatedAt time.Time
}

// ImageFilter narrows gallery lookups.
type ImageFilter struct {
	ID       *uint
	PublicID *string
	UserID   *uint
}

// Repository defines storage operations for generated images.
type Repository interface {
	Create(ctx context.Context, img *GeneratedImage) error
	FindByFilter(ctx context.Context, filter ImageFilter) ([]*GeneratedImage, error)
	FindByPublicID(ctx context.Context, publicID string) (*GeneratedImage, error)
}
