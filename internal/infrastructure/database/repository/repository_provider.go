package repository

import (
	"glow-server/internal/infrastructure/database/repository/creditrepo"
	"glow-server/internal/infrastructure/database/repository/documentrepo"
	"glow-server/internal/infrastructure/database/repository/imagerepo"
	"glow-server/internal/infrastructure/database/repository/personarepo"
	"glow-server/internal/infrastructure/database/repository/threadrepo"
	"glow-server/internal/infrastructure/database/repository/userrepo"

	"github.com/google/wire"
)

var RepositoryProvider = wire.NewSet(
	userrepo.NewUserGormRepository,
	creditrepo.NewCreditGormRepository,
	threadrepo.NewThreadGormRepository,
	personarepo.NewPersonaGormRepository,
	imagerepo.NewImageGormRepository,
	documentrepo.NewDocumentGormRepository,
)
