// Package thread owns conversation threads and their messages: one persisted
// thread per conversation, messages as separate append-only rows.
package thread

import (
	"context"
	"time"
)

// MessageRole identifies the author of a message.
type MessageRole string

const (
	RoleUser      MessageRole = "user"
	RoleAssistant MessageRole = "assistant"
	RoleSystem    MessageRole = "system"
)

// Thread is a persisted conversation owned by one user.
type Thread struct {
	ID        uint
	PublicID  string
	UserID    uint
	Title     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Message is one turn inside a thread. Messages are never mutated after
// creation.
type Message struct {
	ID        uint
	PublicID  string
	ThreadID  uint
	UserID    uint
	Role      MessageRole
	Content   string
	CreatedAt time.Time
}

// ThreadFilter narrows thread lookups.
type ThreadFilter struct {
	ID       *uint
	PublicID *string
	UserID   *uint
}

// Repository defines storage operations for threads and messages.
type Repository interface {
	Create(ctx context.Context, t *Thread) error
	FindByFilter(ctx context.Context, filter ThreadFilter) ([]*Thread, error)
	FindByPublicID(ctx context.Context, publicID string) (*Thread, error)
	Update(ctx context.Context, t *Thread) error
	// Delete removes the thread row only. Messages are intentionally left in
	// place; see Service.Delete.
	Delete(ctx context.Context, id uint) error

	AppendMessage(ctx context.Context, m *Message) error
	ListMessages(ctx context.Context, threadID uint) ([]*Message, error)
	// LastMessages returns the most recent n messages in chronological order.
	LastMessages(ctx context.Context, threadID uint, n int) ([]*Message, error)
	CountMessages(ctx context.Context, threadID uint) (int64, error)
}
