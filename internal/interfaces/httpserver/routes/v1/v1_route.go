package v1

import (
	"github.com/gin-gonic/gin"

	"glow-server/internal/interfaces/httpserver/routes/v1/chat"
	"glow-server/internal/interfaces/httpserver/routes/v1/credit"
	"glow-server/internal/interfaces/httpserver/routes/v1/file"
	"glow-server/internal/interfaces/httpserver/routes/v1/image"
	"glow-server/internal/interfaces/httpserver/routes/v1/persona"
	"glow-server/internal/interfaces/httpserver/routes/v1/thread"
)

type V1Route struct {
	chat    *chat.ChatRoute
	image   *image.ImageRoute
	thread  *thread.ThreadRoute
	persona *persona.PersonaRoute
	credit  *credit.CreditRoute
	file    *file.FileRoute
}

func NewV1Route(
	chat *chat.ChatRoute,
	image *image.ImageRoute,
	thread *thread.ThreadRoute,
	persona *persona.PersonaRoute,
	credit *credit.CreditRoute,
	file *file.FileRoute,
) *V1Route {
	return &V1Route{
		chat,
		image,
		thread,
		persona,
		credit,
		file,
	}
}

func (v1Route *V1Route) RegisterRouter(router *gin.RouterGroup) {
	v1 := router.Group("/v1")

	v1Route.chat.RegisterRouter(v1)
	v1Route.image.RegisterRouter(v1)
	v1Route.thread.RegisterRouter(v1)
	v1Route.persona.RegisterRouter(v1)
	v1Route.credit.RegisterRouter(v1)
	v1Route.file.RegisterRouter(v1)
}
