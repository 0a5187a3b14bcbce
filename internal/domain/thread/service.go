package thread

import (
	"context"
	"strings"
	"time"

	"glow-server/internal/utils/idgen"
	"glow-server/internal/utils/platformerrors"
	"glow-server/internal/utils/stringutils"
)

// Service provides thread business logic: creation, message appends with
// first-message title derivation, rename and delete.
type Service struct {
	repo Repository
}

// NewService constructs a Service with required dependencies.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create starts a fresh thread titled "New Chat".
func (s *Service) Create(ctx context.Context, userID uint) (*Thread, error) {
	publicID, err := idgen.GenerateSecureID("thr", 16)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to generate thread id")
	}
	t := &Thread{
		PublicID: publicID,
		UserID:   userID,
		Title:    stringutils.DefaultTitle,
	}
	if err := s.repo.Create(ctx, t); err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to create thread")
	}
	return t, nil
}

// ResolveOrCreate returns the caller's thread for publicID, or a brand new
// thread when publicID is nil/empty.
func (s *Service) ResolveOrCreate(ctx context.Context, userID uint, publicID *string) (*Thread, error) {
	if publicID == nil || strings.TrimSpace(*publicID) == "" {
		return s.Create(ctx, userID)
	}
	return s.GetOwned(ctx, userID, *publicID)
}

// GetOwned fetches a thread and enforces ownership.
func (s *Service) GetOwned(ctx context.Context, userID uint, publicID string) (*Thread, error) {
	t, err := s.repo.FindByPublicID(ctx, publicID)
	if err != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeNotFound, "thread not found", err, "")
	}
	if t.UserID != userID {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeForbidden, "thread belongs to another user", nil, "")
	}
	return t, nil
}

// List returns the caller's threads, most recently updated first.
func (s *Service) List(ctx context.Context, userID uint) ([]*Thread, error) {
	threads, err := s.repo.FindByFilter(ctx, ThreadFilter{UserID: &userID})
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to list threads")
	}
	return threads, nil
}

// Messages returns a thread's messages in chronological order.
func (s *Service) Messages(ctx context.Context, threadID uint) ([]*Message, error) {
	msgs, err := s.repo.ListMessages(ctx, threadID)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to list messages")
	}
	return msgs, nil
}

// ContextWindow returns the last n messages of the thread in chronological
// order, for building the remote prompt.
func (s *Service) ContextWindow(ctx context.Context, threadID uint, n int) ([]*Message, error) {
	msgs, err := s.repo.LastMessages(ctx, threadID, n)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to read context window")
	}
	return msgs, nil
}

// AppendUserMessage durably appends the user's turn. When it is the thread's
// first message and the title is still the placeholder, the title is derived
// from the message text. The thread's UpdatedAt is refreshed either way.
func (s *Service) AppendUserMessage(ctx context.Context, t *Thread, content string) (*Message, error) {
	msg, err := s.appendMessage(ctx, t, RoleUser, content)
	if err != nil {
		return nil, err
	}

	if stringutils.IsDerivedTitle(t.Title) {
		count, err := s.repo.CountMessages(ctx, t.ID)
		if err == nil && count == 1 {
			t.Title = stringutils.DeriveThreadTitle(content)
		}
	}
	t.UpdatedAt = time.Now()
	if err := s.repo.Update(ctx, t); err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to update thread metadata")
	}
	return msg, nil
}

// AppendAssistantMessage appends the model's reply and refreshes UpdatedAt.
func (s *Service) AppendAssistantMessage(ctx context.Context, t *Thread, content string) (*Message, error) {
	msg, err := s.appendMessage(ctx, t, RoleAssistant, content)
	if err != nil {
		return nil, err
	}
	t.UpdatedAt = time.Now()
	if err := s.repo.Update(ctx, t); err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to update thread metadata")
	}
	return msg, nil
}

func (s *Service) appendMessage(ctx context.Context, t *Thread, role MessageRole, content string) (*Message, error) {
	publicID, err := idgen.GenerateSecureID("msg", 16)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to generate message id")
	}
	msg := &Message{
		PublicID: publicID,
		ThreadID: t.ID,
		UserID:   t.UserID,
		Role:     role,
		Content:  content,
	}
	if err := s.repo.AppendMessage(ctx, msg); err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to append message")
	}
	return msg, nil
}

// Rename sets a user-chosen title. A blank or whitespace-only title is a
// no-op: the existing title stays and UpdatedAt is not touched. A successful
// rename permanently overrides first-message derivation.
func (s *Service) Rename(ctx context.Context, userID uint, publicID, newTitle string) (*Thread, error) {
	t, err := s.GetOwned(ctx, userID, publicID)
	if err != nil {
		return nil, err
	}

	trimmed := strings.TrimSpace(newTitle)
	if trimmed == "" {
		return t, nil
	}

	t.Title = trimmed
	t.UpdatedAt = time.Now()
	if err := s.repo.Update(ctx, t); err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to rename thread")
	}
	return t, nil
}

// Delete removes the thread record. Its messages are left orphaned on
// purpose: the store has no multi-record atomic delete, and partially failed
// cascades would be worse than documented orphans.
func (s *Service) Delete(ctx context.Context, userID uint, publicID string) error {
	t, err := s.GetOwned(ctx, userID, publicID)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, t.ID); err != nil {
		return platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to delete thread")
	}
	return nil
}
