package chathandler

import (
	"context"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"glow-server/internal/config"
	"glow-server/internal/domain/credit"
	"glow-server/internal/domain/persona"
	"glow-server/internal/domain/thread"
	"glow-server/internal/infrastructure/inference"
	"glow-server/internal/infrastructure/metrics"
	"glow-server/internal/infrastructure/observability"
	chatrequests "glow-server/internal/interfaces/httpserver/requests/chat"
	chatresponses "glow-server/internal/interfaces/httpserver/responses/chat"
	"glow-server/internal/utils/platformerrors"
)

// ChatHandler orchestrates one chat turn: credit reservation, durable
// message persistence, the remote completion call, and settlement.
type ChatHandler struct {
	threads   *thread.Service
	personas  *persona.Service
	credits   *credit.Service
	inference *inference.InferenceProvider
	cfg       *config.Config
}

// NewChatHandler creates a new chat handler
func NewChatHandler(
	threads *thread.Service,
	personas *persona.Service,
	credits *credit.Service,
	inferenceProvider *inference.InferenceProvider,
	cfg *config.Config,
) *ChatHandler {
	return &ChatHandler{
		threads:   threads,
		personas:  personas,
		credits:   credits,
		inference: inferenceProvider,
		cfg:       cfg,
	}
}

// CreateChatMessage runs one paid conversation turn.
//
// Order matters here. Ownership problems and insufficient credits must
// reject the turn before anything is persisted. Once the credit is reserved
// the user message is written durably, so a provider failure keeps the
// user's text but releases the reservation.
func (h *ChatHandler) CreateChatMessage(
	ctx context.Context,
	userID uint,
	request chatrequests.ChatMessageRequest,
) (*chatresponses.ChatMessageResponse, error) {
	ctx, span := observability.StartSpan(ctx, h.cfg.ServiceName, "ChatHandler.CreateChatMessage")
	defer span.End()

	startTime := time.Now()
	model := h.cfg.ChatDefaultModel
	if request.Model != nil && *request.Model != "" {
		model = *request.Model
	}
	temperature := h.cfg.ChatDefaultTemp
	if request.Temperature != nil {
		temperature = *request.Temperature
	}
	maxTokens := h.cfg.ChatDefaultMaxTok
	if request.MaxTokens != nil {
		maxTokens = *request.MaxTokens
	}

	observability.AddSpanAttributes(ctx,
		attribute.String("chat.model", model),
		attribute.Int("user.id", int(userID)),
	)

	// Resolve the existing thread first so not-found and ownership errors
	// never cost credits.
	var existing *thread.Thread
	if request.ThreadID != nil && *request.ThreadID != "" {
		var err error
		existing, err = h.threads.GetOwned(ctx, userID, *request.ThreadID)
		if err != nil {
			return nil, err
		}
	}

	var selectedPersona *persona.Persona
	if request.PersonaID != nil && *request.PersonaID != "" {
		var err error
		selectedPersona, err = h.personas.GetOwned(ctx, userID, *request.PersonaID)
		if err != nil {
			return nil, err
		}
	}

	reservation, err := h.credits.Reserve(ctx, userID, h.cfg.ChatCreditCost, credit.ReasonChat)
	if err != nil {
		if credit.IsInsufficientCredits(err) {
			metrics.RecordInsufficientCredits("chat")
		}
		return nil, err
	}

	conv := existing
	if conv == nil {
		conv, err = h.threads.Create(ctx, userID)
		if err != nil {
			h.releaseQuietly(ctx, reservation)
			return nil, err
		}
		metrics.ThreadsCreatedTotal.Inc()
	}

	if _, err := h.threads.AppendUserMessage(ctx, conv, request.Content); err != nil {
		h.releaseQuietly(ctx, reservation)
		return nil, err
	}

	messages, err := h.buildContext(ctx, conv, selectedPersona)
	if err != nil {
		h.releaseQuietly(ctx, reservation)
		return nil, err
	}

	completion, err := h.inference.ChatClient().CreateChatCompletion(ctx, h.inference.ChatAPIKey(), openai.ChatCompletionRequest{
		Model:       model,
		Messages:    messages,
		Temperature: temperature,
		MaxTokens:   maxTokens,
	})
	if err != nil {
		// The user message stays. Only the reservation is rolled back, and
		// the refreshed balance comes from the store, not from arithmetic on
		// the pre-call value.
		balance, releaseErr := reservation.Release(ctx)
		if releaseErr != nil {
			observability.RecordError(ctx, releaseErr)
		} else {
			metrics.RecordCreditsRefunded(string(credit.ReasonChat), h.cfg.ChatCreditCost)
		}
		metrics.RecordChatTurn(model, "provider_error", time.Since(startTime).Seconds())
		observability.SetSpanStatus(ctx, codes.Error, "chat provider call failed")
		return nil, platformerrors.NewErrorWithContext(
			ctx,
			platformerrors.LayerHandler,
			platformerrors.ErrorTypeExternal,
			"chat completion failed",
			err,
			"",
			map[string]any{"credit_balance": balance},
		)
	}

	if len(completion.Choices) == 0 {
		balance, releaseErr := reservation.Release(ctx)
		if releaseErr == nil {
			metrics.RecordCreditsRefunded(string(credit.ReasonChat), h.cfg.ChatCreditCost)
		}
		metrics.RecordChatTurn(model, "empty_response", time.Since(startTime).Seconds())
		return nil, platformerrors.NewErrorWithContext(
			ctx,
			platformerrors.LayerHandler,
			platformerrors.ErrorTypeExternal,
			"chat provider returned no choices",
			nil,
			"",
			map[string]any{"credit_balance": balance},
		)
	}

	reply, err := h.threads.AppendAssistantMessage(ctx, conv, completion.Choices[0].Message.Content)
	if err != nil {
		h.releaseQuietly(ctx, reservation)
		return nil, err
	}

	if err := reservation.Commit(ctx); err != nil {
		observability.RecordError(ctx, err)
	} else {
		metrics.RecordCreditsSpent(string(credit.ReasonChat), h.cfg.ChatCreditCost)
	}

	metrics.RecordChatTurn(model, "ok", time.Since(startTime).Seconds())
	metrics.RecordTokens(model, completion.Usage.PromptTokens, completion.Usage.CompletionTokens)
	observability.SetSpanStatus(ctx, codes.Ok, "")

	return chatresponses.NewChatMessageResponse(conv, reply, completion.Model, reservation.Balance()), nil
}

// buildContext assembles the remote prompt: the optional persona system
// message followed by the thread's recent history in chronological order.
func (h *ChatHandler) buildContext(ctx context.Context, conv *thread.Thread, selectedPersona *persona.Persona) ([]openai.ChatCompletionMessage, error) {
	recent, err := h.threads.ContextWindow(ctx, conv.ID, h.cfg.ChatContextWindow)
	if err != nil {
		return nil, err
	}

	messages := make([]openai.ChatCompletionMessage, 0, len(recent)+1)
	if selectedPersona != nil {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: selectedPersona.SystemPrompt,
		})
	}
	for _, m := range recent {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    string(m.Role),
			Content: m.Content,
		})
	}
	return messages, nil
}

func (h *ChatHandler) releaseQuietly(ctx context.Context, reservation *credit.Reservation) {
	if _, err := reservation.Release(ctx); err != nil {
		observability.RecordError(ctx, err)
		return
	}
	metrics.RecordCreditsRefunded(string(credit.ReasonChat), h.cfg.ChatCreditCost)
}
