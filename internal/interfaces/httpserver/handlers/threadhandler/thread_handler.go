package threadhandler

import (
	"context"

	"glow-server/internal/domain/thread"
	"glow-server/internal/infrastructure/metrics"
	threadrequests "glow-server/internal/interfaces/httpserver/requests/thread"
	threadresponses "glow-server/internal/interfaces/httpserver/responses/thread"
)

// ThreadHandler exposes thread CRUD to the HTTP layer.
type ThreadHandler struct {
	threads *thread.Service
}

// NewThreadHandler creates a new thread handler
func NewThreadHandler(threads *thread.Service) *ThreadHandler {
	return &ThreadHandler{threads: threads}
}

// CreateThread starts an empty thread.
func (h *ThreadHandler) CreateThread(ctx context.Context, userID uint) (*threadresponses.ThreadResponse, error) {
	t, err := h.threads.Create(ctx, userID)
	if err != nil {
		return nil, err
	}
	metrics.ThreadsCreatedTotal.Inc()
	resp := threadresponses.NewThreadResponse(t)
	return &resp, nil
}

// ListThreads returns the caller's threads, most recently active first.
func (h *ThreadHandler) ListThreads(ctx context.Context, userID uint) (*threadresponses.ThreadListResponse, error) {
	threads, err := h.threads.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	return threadresponses.NewThreadListResponse(threads), nil
}

// GetThread returns one thread with its full message history.
func (h *ThreadHandler) GetThread(ctx context.Context, userID uint, publicID string) (*threadresponses.ThreadDetailResponse, error) {
	t, err := h.threads.GetOwned(ctx, userID, publicID)
	if err != nil {
		return nil, err
	}
	messages, err := h.threads.Messages(ctx, t.ID)
	if err != nil {
		return nil, err
	}
	return threadresponses.NewThreadDetailResponse(t, messages), nil
}

// RenameThread sets a user-chosen title.
func (h *ThreadHandler) RenameThread(ctx context.Context, userID uint, publicID string, request threadrequests.RenameThreadRequest) (*threadresponses.ThreadResponse, error) {
	t, err := h.threads.Rename(ctx, userID, publicID, request.Title)
	if err != nil {
		return nil, err
	}
	resp := threadresponses.NewThreadResponse(t)
	return &resp, nil
}

// DeleteThread removes the thread record.
func (h *ThreadHandler) DeleteThread(ctx context.Context, userID uint, publicID string) error {
	return h.threads.Delete(ctx, userID, publicID)
}
