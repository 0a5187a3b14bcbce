package personarequests

// CreatePersonaRequest stores a new reusable system prompt.
type CreatePersonaRequest struct {
	Name         string `json:"name" binding:"required"`
	SystemPrompt string `json:"system_prompt" binding:"required"`
}

// UpdatePersonaRequest changes selected persona fields. Nil fields keep the
// stored value.
type UpdatePersonaRequest struct {
	Name         *string `json:"name,omitempty"`
	SystemPrompt *string `json:"system_prompt,omitempty"`
}
