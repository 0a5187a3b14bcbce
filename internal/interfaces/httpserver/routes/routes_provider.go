package routes

import (
	v1 "glow-server/internal/interfaces/httpserver/routes/v1"
	"glow-server/internal/interfaces/httpserver/routes/v1/chat"
	"glow-server/internal/interfaces/httpserver/routes/v1/credit"
	"glow-server/internal/interfaces/httpserver/routes/v1/file"
	"glow-server/internal/interfaces/httpserver/routes/v1/image"
	"glow-server/internal/interfaces/httpserver/routes/v1/persona"
	"glow-server/internal/interfaces/httpserver/routes/v1/thread"

	"github.com/google/wire"
)

var RouteProvider = wire.NewSet(
	v1.NewV1Route,
	chat.NewChatRoute,
	image.NewImageRoute,
	thread.NewThreadRoute,
	persona.NewPersonaRoute,
	credit.NewCreditRoute,
	file.NewFileRoute,
)
