package domain

import (
	"github.com/google/wire"

	"glow-server/internal/config"
	"glow-server/internal/domain/credit"
	"glow-server/internal/domain/document"
	"glow-server/internal/domain/image"
	"glow-server/internal/domain/persona"
	"glow-server/internal/domain/thread"
	"glow-server/internal/domain/user"
	"glow-server/internal/utils/idgen"
)

// ServiceProvider provides all domain services
var ServiceProvider = wire.NewSet(
	// Credit ledger
	credit.NewService,
	wire.Bind(new(user.CreditGranter), new(*credit.Service)),

	// Users
	ProvideUserService,

	// Threads and messages
	thread.NewService,

	// Personas
	persona.NewService,

	// Image gallery
	image.NewService,

	// Uploaded documents
	ProvideDocumentService,
)

func ProvideUserService(cfg *config.Config, repo user.Repository, credits user.CreditGranter) *user.Service {
	return user.NewService(repo, credits, cfg.SignupCreditGrant, func() string {
		return idgen.MustGenerateSecureID("user", 16)
	})
}

func ProvideDocumentService(cfg *config.Config, repo document.Repository) *document.Service {
	return document.NewService(repo, cfg.MaxUploadBytes, cfg.ChunkSize, cfg.ChunkOverlap)
}
