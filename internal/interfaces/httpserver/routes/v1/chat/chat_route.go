package chat

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"glow-server/internal/infrastructure/logger"
	"glow-server/internal/interfaces/httpserver/handlers/chathandler"
	"glow-server/internal/interfaces/httpserver/middlewares"
	chatrequests "glow-server/internal/interfaces/httpserver/requests/chat"
	"glow-server/internal/utils/platformerrors"
)

// ChatRoute handles paid chat turns by delegating to the chat handler.
type ChatRoute struct {
	chatHandler *chathandler.ChatHandler
}

func NewChatRoute(chatHandler *chathandler.ChatHandler) *ChatRoute {
	return &ChatRoute{chatHandler: chatHandler}
}

func (route *ChatRoute) RegisterRouter(router *gin.RouterGroup) {
	group := router.Group("/chat")
	group.POST("/messages", route.PostMessage)
}

// PostMessage
// @Summary Send a chat message
// @Description Runs one paid conversation turn: deducts one credit, appends the user message to the thread (creating the thread when no thread_id is given), calls the remote model with the recent thread history and returns the assistant reply. A failed model call refunds the credit; the user message is kept.
// @Tags Chat
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body chatrequests.ChatMessageRequest true "Chat message with optional thread and persona"
// @Success 200 {object} chatresponses.ChatMessageResponse
// @Failure 400 {object} platformerrors.HTTPErrorResponse "Invalid request payload"
// @Failure 402 {object} platformerrors.HTTPErrorResponse "Insufficient credits"
// @Failure 404 {object} platformerrors.HTTPErrorResponse "Unknown thread or persona"
// @Failure 502 {object} platformerrors.HTTPErrorResponse "Chat provider failure"
// @Router /v1/chat/messages [post]
func (route *ChatRoute) PostMessage(reqCtx *gin.Context) {
	usr, ok := middlewares.CurrentUser(reqCtx)
	if !ok {
		platformerrors.WriteUnauthorized(reqCtx, "authentication required")
		return
	}

	var request chatrequests.ChatMessageRequest
	if err := reqCtx.ShouldBindJSON(&request); err != nil {
		platformerrors.WriteValidationError(reqCtx, "invalid request body")
		return
	}

	log.Info().
		Str("route", "/v1/chat/messages").
		Uint("user_id", usr.ID).
		Int("content_length", len(request.Content)).
		Msg("chat message received")

	result, err := route.chatHandler.CreateChatMessage(reqCtx.Request.Context(), usr.ID, request)
	if err != nil {
		platformerrors.WriteError(reqCtx, err, logger.GetLogger())
		return
	}

	reqCtx.JSON(http.StatusOK, result)
}
