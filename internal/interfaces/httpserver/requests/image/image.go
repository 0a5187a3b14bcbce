package imagerequests

// GenerateImageRequest asks for one image generation.
type GenerateImageRequest struct {
	Prompt string  `json:"prompt" binding:"required"`
	Size   *string `json:"size,omitempty"`
}
