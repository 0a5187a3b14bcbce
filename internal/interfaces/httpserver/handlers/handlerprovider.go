package handlers

import (
	"github.com/google/wire"

	"glow-server/internal/interfaces/httpserver/handlers/chathandler"
	"glow-server/internal/interfaces/httpserver/handlers/credithandler"
	"glow-server/internal/interfaces/httpserver/handlers/documenthandler"
	"glow-server/internal/interfaces/httpserver/handlers/imagehandler"
	"glow-server/internal/interfaces/httpserver/handlers/personahandler"
	"glow-server/internal/interfaces/httpserver/handlers/threadhandler"
)

// HandlerProvider provides all HTTP handlers
var HandlerProvider = wire.NewSet(
	chathandler.NewChatHandler,
	imagehandler.NewImageHandler,
	threadhandler.NewThreadHandler,
	personahandler.NewPersonaHandler,
	credithandler.NewCreditHandler,
	documenthandler.NewDocumentHandler,
)
