package imageresponses

import (
	"time"

	"glow-server/internal/domain/image"
)

// GeneratedImageResponse is one gallery entry.
type GeneratedImageResponse struct {
	ID        string    `json:"id"`
	Prompt    string    `json:"prompt"`
	Model     string    `json:"model"`
	Size      string    `json:"size"`
	URL       string    `json:"url"`
	CreatedAt time.Time `json:"created_at"`
}

// GenerateImageResponse carries a fresh generation plus the remaining
// credit balance.
type GenerateImageResponse struct {
	Image         GeneratedImageResponse `json:"image"`
	CreditBalance int                    `json:"credit_balance"`
}

// ImageListResponse wraps a gallery listing.
type ImageListResponse struct {
	Images []GeneratedImageResponse `json:"images"`
}

// NewGeneratedImageResponse converts a domain gallery entry.
func NewGeneratedImageResponse(img *image.GeneratedImage) GeneratedImageResponse {
	return GeneratedImageResponse{
		ID:        img.PublicID,
		Prompt:    img.Prompt,
		Model:     img.Model,
		Size:      img.Size,
		URL:       img.URL,
		CreatedAt: img.CreatedAt,
	}
}

// NewImageListResponse converts a slice of domain gallery entries.
func NewImageListResponse(images []*image.GeneratedImage) *ImageListResponse {
	out := make([]GeneratedImageResponse, 0, len(images))
	for _, img := range images {
		out = append(out, NewGeneratedImageResponse(img))
	}
	return &ImageListResponse{Images: out}
}
