package chathandler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"glow-server/internal/config"
	"glow-server/internal/domain/credit"
	"glow-server/internal/domain/persona"
	"glow-server/internal/domain/thread"
	"glow-server/internal/infrastructure/inference"
	chatrequests "glow-server/internal/interfaces/httpserver/requests/chat"
	"glow-server/internal/utils/platformerrors"
)

type fakeThreadRepo struct {
	mu      sync.Mutex
	nextID  uint
	nextMsg uint
	threads map[uint]*thread.Thread
	msgs    []*thread.Message
}

func newFakeThreadRepo() *fakeThreadRepo {
	return &fakeThreadRepo{threads: map[uint]*thread.Thread{}}
}

func (r *fakeThreadRepo) Create(_ context.Context, t *thread.Thread) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	t.ID = r.nextID
	cp := *t
	r.threads[t.ID] = &cp
	return nil
}

func (r *fakeThreadRepo) FindByFilter(_ context.Context, filter thread.ThreadFilter) ([]*thread.Thread, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*thread.Thread
	for _, t := range r.threads {
		if filter.UserID != nil && t.UserID != *filter.UserID {
			continue
		}
		cp := *t
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeThreadRepo) FindByPublicID(_ context.Context, publicID string) (*thread.Thread, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range r.threads {
		if t.PublicID == publicID {
			cp := *t
			return &cp, nil
		}
	}
	return nil, errors.New("record not found")
}

func (r *fakeThreadRepo) Update(_ context.Context, t *thread.Thread) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *t
	r.threads[t.ID] = &cp
	return nil
}

func (r *fakeThreadRepo) Delete(_ context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.threads, id)
	return nil
}

func (r *fakeThreadRepo) AppendMessage(_ context.Context, m *thread.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextMsg++
	m.ID = r.nextMsg
	cp := *m
	r.msgs = append(r.msgs, &cp)
	return nil
}

func (r *fakeThreadRepo) ListMessages(_ context.Context, threadID uint) ([]*thread.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*thread.Message
	for _, m := range r.msgs {
		if m.ThreadID == threadID {
			cp := *m
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeThreadRepo) LastMessages(ctx context.Context, threadID uint, n int) ([]*thread.Message, error) {
	all, err := r.ListMessages(ctx, threadID)
	if err != nil {
		return nil, err
	}
	if len(all) > n {
		all = all[len(all)-n:]
	}
	return all, nil
}

func (r *fakeThreadRepo) CountMessages(ctx context.Context, threadID uint) (int64, error) {
	all, err := r.ListMessages(ctx, threadID)
	if err != nil {
		return 0, err
	}
	return int64(len(all)), nil
}

type fakePersonaRepo struct {
	personas map[string]*persona.Persona
}

func (r *fakePersonaRepo) Create(_ context.Context, p *persona.Persona) error {
	r.personas[p.PublicID] = p
	return nil
}

func (r *fakePersonaRepo) FindByFilter(_ context.Context, filter persona.PersonaFilter) ([]*persona.Persona, error) {
	var out []*persona.Persona
	for _, p := range r.personas {
		if filter.UserID != nil && p.UserID != *filter.UserID {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (r *fakePersonaRepo) FindByPublicID(_ context.Context, publicID string) (*persona.Persona, error) {
	p, ok := r.personas[publicID]
	if !ok {
		return nil, errors.New("record not found")
	}
	return p, nil
}

func (r *fakePersonaRepo) Update(_ context.Context, p *persona.Persona) error {
	r.personas[p.PublicID] = p
	return nil
}

func (r *fakePersonaRepo) Delete(_ context.Context, _ uint) error { return nil }

type fakeLedger struct {
	mu       sync.Mutex
	balances map[uint]int
	entries  []*credit.Entry
}

func newFakeLedger(userID uint, balance int) *fakeLedger {
	return &fakeLedger{balances: map[uint]int{userID: balance}}
}

func (l *fakeLedger) GetBalance(_ context.Context, userID uint) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.balances[userID], nil
}

func (l *fakeLedger) DebitIfSufficient(_ context.Context, userID uint, amount int) (int, bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	balance := l.balances[userID]
	if balance < amount {
		return balance, false, nil
	}
	l.balances[userID] = balance - amount
	return balance - amount, true, nil
}

func (l *fakeLedger) Credit(_ context.Context, userID uint, amount int) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.balances[userID] += amount
	return l.balances[userID], nil
}

func (l *fakeLedger) RecordEntry(_ context.Context, entry *credit.Entry) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, entry)
	return nil
}

func (l *fakeLedger) ListEntries(_ context.Context, userID uint, limit int) ([]*credit.Entry, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	var out []*credit.Entry
	for i := len(l.entries) - 1; i >= 0 && len(out) < limit; i-- {
		if l.entries[i].UserID == userID {
			out = append(out, l.entries[i])
		}
	}
	return out, nil
}

type chatTestEnv struct {
	handler  *ChatHandler
	threads  *fakeThreadRepo
	personas *fakePersonaRepo
	ledger   *fakeLedger
}

func newChatTestEnv(t *testing.T, providerHandler http.HandlerFunc, startBalance int) *chatTestEnv {
	t.Helper()

	server := httptest.NewServer(providerHandler)
	t.Cleanup(server.Close)

	cfg := &config.Config{
		ServiceName:         "glow-server-test",
		ChatProviderBaseURL: server.URL,
		ChatDefaultModel:    "gpt-4o-mini",
		ChatDefaultTemp:     0.7,
		ChatDefaultMaxTok:   800,
		ChatContextWindow:   10,
		ChatCreditCost:      1,
	}

	threads := newFakeThreadRepo()
	personas := &fakePersonaRepo{personas: map[string]*persona.Persona{}}
	ledger := newFakeLedger(1, startBalance)

	handler := NewChatHandler(
		thread.NewService(threads),
		persona.NewService(personas),
		credit.NewService(ledger),
		inference.NewInferenceProvider(cfg),
		cfg,
	)
	return &chatTestEnv{handler: handler, threads: threads, personas: personas, ledger: ledger}
}

func completionHandler(reply string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp := openai.ChatCompletionResponse{
			Model: "gpt-4o-mini",
			Choices: []openai.ChatCompletionChoice{
				{Message: openai.ChatCompletionMessage{Role: openai.ChatMessageRoleAssistant, Content: reply}},
			},
			Usage: openai.Usage{PromptTokens: 12, CompletionTokens: 7},
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}
}

func TestCreateChatMessageNewThread(t *testing.T) {
	env := newChatTestEnv(t, completionHandler("Sure, here is a plan."), 5)

	resp, err := env.handler.CreateChatMessage(context.Background(), 1, chatrequests.ChatMessageRequest{
		Content: "Plan a weekend trip to the coast",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, resp.ThreadID)
	assert.Equal(t, "Plan a weekend trip to the coast", resp.ThreadTitle)
	assert.Equal(t, "assistant", resp.Message.Role)
	assert.Equal(t, "Sure, here is a plan.", resp.Message.Content)
	assert.Equal(t, 4, resp.CreditBalance)

	msgs, err := env.threads.ListMessages(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.Equal(t, thread.RoleUser, msgs[0].Role)
	assert.Equal(t, thread.RoleAssistant, msgs[1].Role)

	require.Len(t, env.ledger.entries, 1)
	assert.Equal(t, -1, env.ledger.entries[0].Amount)
	assert.Equal(t, credit.ReasonChat, env.ledger.entries[0].Reason)
}

func TestCreateChatMessageContinuesExistingThread(t *testing.T) {
	var captured openai.ChatCompletionRequest
	env := newChatTestEnv(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&captured)
		completionHandler("Second reply.")(w, r)
	}, 5)

	first, err := env.handler.CreateChatMessage(context.Background(), 1, chatrequests.ChatMessageRequest{
		Content: "First question",
	})
	require.NoError(t, err)

	second, err := env.handler.CreateChatMessage(context.Background(), 1, chatrequests.ChatMessageRequest{
		ThreadID: &first.ThreadID,
		Content:  "Follow up",
	})
	require.NoError(t, err)

	assert.Equal(t, first.ThreadID, second.ThreadID)
	// The title derived from the first message must survive the second turn.
	assert.Equal(t, "First question", second.ThreadTitle)

	// The provider saw the full window: both user turns plus the first reply.
	require.Len(t, captured.Messages, 3)
	assert.Equal(t, "First question", captured.Messages[0].Content)
	assert.Equal(t, "Second reply.", captured.Messages[1].Content)
	assert.Equal(t, "Follow up", captured.Messages[2].Content)
}

func TestCreateChatMessagePersonaSystemPrompt(t *testing.T) {
	var captured openai.ChatCompletionRequest
	env := newChatTestEnv(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&captured)
		completionHandler("Aye, captain.")(w, r)
	}, 5)

	env.personas.personas["prs_test"] = &persona.Persona{
		ID:           1,
		PublicID:     "prs_test",
		UserID:       1,
		Name:         "Pirate",
		SystemPrompt: "You are a pirate.",
	}

	personaID := "prs_test"
	_, err := env.handler.CreateChatMessage(context.Background(), 1, chatrequests.ChatMessageRequest{
		Content:   "Hello there",
		PersonaID: &personaID,
	})
	require.NoError(t, err)

	require.Len(t, captured.Messages, 2)
	assert.Equal(t, openai.ChatMessageRoleSystem, captured.Messages[0].Role)
	assert.Equal(t, "You are a pirate.", captured.Messages[0].Content)
	assert.Equal(t, "Hello there", captured.Messages[1].Content)
}

func TestCreateChatMessageModelParamOverrides(t *testing.T) {
	var captured openai.ChatCompletionRequest
	env := newChatTestEnv(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&captured)
		completionHandler("ok")(w, r)
	}, 5)

	model := "gpt-4o"
	temperature := float32(1.3)
	maxTokens := 256
	resp, err := env.handler.CreateChatMessage(context.Background(), 1, chatrequests.ChatMessageRequest{
		Content:     "Hello",
		Model:       &model,
		Temperature: &temperature,
		MaxTokens:   &maxTokens,
	})
	require.NoError(t, err)
	require.NotNil(t, resp)

	assert.Equal(t, "gpt-4o", captured.Model)
	assert.InDelta(t, 1.3, captured.Temperature, 0.001)
	assert.Equal(t, 256, captured.MaxTokens)
}

func TestCreateChatMessageInsufficientCredits(t *testing.T) {
	providerCalled := false
	env := newChatTestEnv(t, func(w http.ResponseWriter, r *http.Request) {
		providerCalled = true
		completionHandler("unreachable")(w, r)
	}, 0)

	_, err := env.handler.CreateChatMessage(context.Background(), 1, chatrequests.ChatMessageRequest{
		Content: "Hello",
	})
	require.Error(t, err)
	assert.True(t, credit.IsInsufficientCredits(err))

	// Rejected before anything happened: no thread, no messages, no call.
	assert.False(t, providerCalled)
	assert.Empty(t, env.threads.threads)
	assert.Empty(t, env.threads.msgs)
	assert.Empty(t, env.ledger.entries)
}

func TestCreateChatMessageProviderFailureReleasesReservation(t *testing.T) {
	env := newChatTestEnv(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"upstream exploded"}`, http.StatusBadGateway)
	}, 5)

	_, err := env.handler.CreateChatMessage(context.Background(), 1, chatrequests.ChatMessageRequest{
		Content: "Hello",
	})
	require.Error(t, err)
	assert.True(t, platformerrors.IsErrorType(err, platformerrors.ErrorTypeExternal))

	// Reservation released: the balance is back to its starting value and no
	// ledger entry was written for the failed turn.
	balance, _ := env.ledger.GetBalance(context.Background(), 1)
	assert.Equal(t, 5, balance)
	assert.Empty(t, env.ledger.entries)

	// The user's message stays durably recorded.
	require.Len(t, env.threads.msgs, 1)
	assert.Equal(t, thread.RoleUser, env.threads.msgs[0].Role)
	assert.Len(t, env.threads.threads, 1)
}

func TestCreateChatMessageForeignThreadRejected(t *testing.T) {
	env := newChatTestEnv(t, completionHandler("unreachable"), 5)

	other := &thread.Thread{PublicID: "thr_other", UserID: 42, Title: "Someone else"}
	require.NoError(t, env.threads.Create(context.Background(), other))

	threadID := "thr_other"
	_, err := env.handler.CreateChatMessage(context.Background(), 1, chatrequests.ChatMessageRequest{
		ThreadID: &threadID,
		Content:  "Hello",
	})
	require.Error(t, err)
	assert.True(t, platformerrors.IsErrorType(err, platformerrors.ErrorTypeForbidden))

	// Ownership is checked before the reservation, so no credit moved.
	balance, _ := env.ledger.GetBalance(context.Background(), 1)
	assert.Equal(t, 5, balance)
}

func TestCreateChatMessageUnknownPersonaRejected(t *testing.T) {
	env := newChatTestEnv(t, completionHandler("unreachable"), 5)

	personaID := "prs_missing"
	_, err := env.handler.CreateChatMessage(context.Background(), 1, chatrequests.ChatMessageRequest{
		Content:   "Hello",
		PersonaID: &personaID,
	})
	require.Error(t, err)
	assert.True(t, platformerrors.IsErrorType(err, platformerrors.ErrorTypeNotFound))

	balance, _ := env.ledger.GetBalance(context.Background(), 1)
	assert.Equal(t, 5, balance)
}
