package infrastructure

import (
	"github.com/google/wire"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"glow-server/internal/config"
	"glow-server/internal/infrastructure/auth"
	"glow-server/internal/infrastructure/database"
	"glow-server/internal/infrastructure/database/repository"
	"glow-server/internal/infrastructure/database/transaction"
	"glow-server/internal/infrastructure/inference"
	"glow-server/internal/infrastructure/logger"
)

// ProvideConfig loads and provides the application configuration
func ProvideConfig() (*config.Config, error) {
	return config.Load()
}

// ProvideTokenValidator provides the session token validator
func ProvideTokenValidator(cfg *config.Config, log zerolog.Logger) (*auth.TokenValidator, error) {
	return auth.NewTokenValidator(cfg.AuthSecret, cfg.AuthIssuer, cfg.AuthAudience, log)
}

// ProvideDatabase provides a database connection
func ProvideDatabase(cfg *config.Config, log zerolog.Logger) (*gorm.DB, error) {
	db, err := database.NewDB(cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}

	// Run migrations if AUTO_MIGRATE is enabled
	if cfg.AutoMigrate {
		log.Info().Msg("Running database migrations...")
		if err := database.Migration(db, "glow."); err != nil {
			log.Error().Err(err).Msg("Failed to run database migrations")
			return nil, err
		}
		log.Info().Msg("Database migrations completed successfully")
	}

	return db, nil
}

// ProvideTransactionDatabase provides a transaction database wrapper
func ProvideTransactionDatabase(db *gorm.DB) *transaction.Database {
	return transaction.NewDatabase(db)
}

// Infrastructure holds all infrastructure dependencies
type Infrastructure struct {
	DB             *gorm.DB
	TokenValidator *auth.TokenValidator
	Logger         zerolog.Logger
}

// NewInfrastructure creates a new infrastructure instance
func NewInfrastructure(
	db *gorm.DB,
	tokenValidator *auth.TokenValidator,
	logger zerolog.Logger,
) *Infrastructure {
	return &Infrastructure{
		DB:             db,
		TokenValidator: tokenValidator,
		Logger:         logger,
	}
}

// InfrastructureProvider provides all infrastructure dependencies
var InfrastructureProvider = wire.NewSet(
	// Config
	ProvideConfig,

	// Database
	ProvideDatabase,
	ProvideTransactionDatabase,

	// Repositories
	repository.RepositoryProvider,

	// Remote providers
	inference.NewInferenceProvider,

	// Logger
	logger.GetLogger,

	// Auth
	ProvideTokenValidator,

	// Infrastructure struct
	NewInfrastructure,
)
