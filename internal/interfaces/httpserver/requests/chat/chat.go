package chatrequests

// ChatMessageRequest is one user turn. ThreadID is optional: when absent a
// new thread is created for this turn.
type ChatMessageRequest struct {
	ThreadID    *string  `json:"thread_id,omitempty"`
	Content     string   `json:"content" binding:"required"`
	PersonaID   *string  `json:"persona_id,omitempty"`
	Model       *string  `json:"model,omitempty"`
	Temperature *float32 `json:"temperature,omitempty" binding:"omitempty,gte=0,lte=2"`
	MaxTokens   *int     `json:"max_tokens,omitempty" binding:"omitempty,gte=1,lte=4000"`
}
