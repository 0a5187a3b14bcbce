package httpserver

import (
	"fmt"
	"net/http"

	"glow-server/internal/config"
	"glow-server/internal/domain/user"
	"glow-server/internal/infrastructure"
	middleware "glow-server/internal/interfaces/httpserver/middlewares"
	v1 "glow-server/internal/interfaces/httpserver/routes/v1"
	"glow-server/swagger"

	"github.com/gin-gonic/gin"
)

type HTTPServer struct {
	engine  *gin.Engine
	infra   *infrastructure.Infrastructure
	v1Route *v1.V1Route
	users   *user.Service
	config  *config.Config
}

func NewHttpServer(
	v1Route *v1.V1Route,
	users *user.Service,
	infra *infrastructure.Infrastructure,
	cfg *config.Config,
) *HTTPServer {
	if !config.IsDev() {
		gin.SetMode(gin.ReleaseMode)
	}
	server := HTTPServer{
		gin.New(),
		infra,
		v1Route,
		users,
		cfg,
	}
	server.engine.Use(middleware.RequestID())
	server.engine.Use(middleware.TracingMiddleware(cfg.ServiceName))
	server.engine.Use(middleware.LoggingMiddleware(infra.Logger))
	server.engine.Use(middleware.MetricsMiddleware())
	server.engine.Use(middleware.CORSMiddleware())

	server.engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	server.engine.GET("/readyz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	swagger.Register(server.engine)

	return &server
}

func (httpServer *HTTPServer) Run() error {
	// Protected routes (auth middleware applied)
	protected := httpServer.engine.Group("/")
	protected.Use(
		middleware.AuthMiddleware(httpServer.infra.TokenValidator, httpServer.users, httpServer.infra.Logger),
	)

	httpServer.v1Route.RegisterRouter(protected)

	if err := httpServer.engine.Run(fmt.Sprintf(":%d", httpServer.config.HTTPPort)); err != nil {
		return err
	}
	return nil
}
