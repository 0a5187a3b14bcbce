//go:build wireinject

package main

import (
	"glow-server/internal/domain"
	"glow-server/internal/infrastructure"
	"glow-server/internal/interfaces"
	"glow-server/internal/interfaces/httpserver/handlers"
	"glow-server/internal/interfaces/httpserver/routes"

	"github.com/google/wire"
)

func CreateApplication() (*Application, error) {
	wire.Build(
		domain.ServiceProvider,
		infrastructure.InfrastructureProvider,
		handlers.HandlerProvider,
		routes.RouteProvider,
		interfaces.InterfacesProvider,
		wire.Struct(new(Application), "*"),
	)
	return nil, nil
}
