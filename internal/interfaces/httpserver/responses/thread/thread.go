package threadresponses

import (
	"time"

	"glow-server/internal/domain/thread"
	chatresponses "glow-server/internal/interfaces/httpserver/responses/chat"
)

// ThreadResponse is one thread summary for listings.
type ThreadResponse struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ThreadDetailResponse is a thread plus its full message history.
type ThreadDetailResponse struct {
	ThreadResponse
	Messages []chatresponses.MessageResponse `json:"messages"`
}

// ThreadListResponse wraps a thread listing.
type ThreadListResponse struct {
	Threads []ThreadResponse `json:"threads"`
}

// NewThreadResponse converts a domain thread.
func NewThreadResponse(t *thread.Thread) ThreadResponse {
	return ThreadResponse{
		ID:        t.PublicID,
		Title:     t.Title,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}

// NewThreadListResponse converts a slice of domain threads.
func NewThreadListResponse(threads []*thread.Thread) *ThreadListResponse {
	out := make([]ThreadResponse, 0, len(threads))
	for _, t := range threads {
		out = append(out, NewThreadResponse(t))
	}
	return &ThreadListResponse{Threads: out}
}

// NewThreadDetailResponse converts a thread with its messages.
func NewThreadDetailResponse(t *thread.Thread, messages []*thread.Message) *ThreadDetailResponse {
	msgs := make([]chatresponses.MessageResponse, 0, len(messages))
	for _, m := range messages {
		msgs = append(msgs, chatresponses.NewMessageResponse(m))
	}
	return &ThreadDetailResponse{
		ThreadResponse: NewThreadResponse(t),
		Messages:       msgs,
	}
}
