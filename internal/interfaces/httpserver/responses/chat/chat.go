package chatresponses

import (
	"time"

	"glow-server/internal/domain/thread"
)

// MessageResponse is one persisted conversation turn.
type MessageResponse struct {
	ID        string    `json:"id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// ChatMessageResponse carries the assistant reply together with the thread
// context and the caller's remaining credit balance.
type ChatMessageResponse struct {
	ThreadID      string          `json:"thread_id"`
	ThreadTitle   string          `json:"thread_title"`
	Message       MessageResponse `json:"message"`
	Model         string          `json:"model"`
	CreditBalance int             `json:"credit_balance"`
}

// NewMessageResponse converts a domain message.
func NewMessageResponse(m *thread.Message) MessageResponse {
	return MessageResponse{
		ID:        m.PublicID,
		Role:      string(m.Role),
		Content:   m.Content,
		CreatedAt: m.CreatedAt,
	}
}

// NewChatMessageResponse builds the full chat turn response.
func NewChatMessageResponse(t *thread.Thread, reply *thread.Message, model string, creditBalance int) *ChatMessageResponse {
	return &ChatMessageResponse{
		ThreadID:      t.PublicID,
		ThreadTitle:   t.Title,
		Message:       NewMessageResponse(reply),
		Model:         model,
		CreditBalance: creditBalance,
	}
}
