package personarepo

import (
	"context"

	"glow-server/internal/domain/persona"
	"glow-server/internal/infrastructure/database/dbschema"
	"glow-server/internal/infrastructure/database/transaction"
	"glow-server/internal/utils/functional"
	"glow-server/internal/utils/platformerrors"
)

type PersonaGormRepository struct {
	db *transaction.Database
}

var _ persona.Repository = (*PersonaGormRepository)(nil)

func NewPersonaGormRepository(db *transaction.Database) persona.Repository {
	return &PersonaGormRepository{db: db}
}

func (repo *PersonaGormRepository) Create(ctx context.Context, p *persona.Persona) error {
	entity := dbschema.NewSchemaPersona(p)
	if err := repo.db.GetTx(ctx).WithContext(ctx).Create(entity).Error; err != nil {
		return platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to create persona",
			err,
			"d4a7b2e9-5f18-4c63-8d0b-2e9f6a1c4b85",
		)
	}
	*p = *entity.EtoD()
	return nil
}

func (repo *PersonaGormRepository) FindByFilter(ctx context.Context, filter persona.PersonaFilter) ([]*persona.Persona, error) {
	query := repo.db.GetTx(ctx).WithContext(ctx).Model(&dbschema.Persona{})
	if filter.ID != nil {
		query = query.Where("id = ?", *filter.ID)
	}
	if filter.PublicID != nil {
		query = query.Where("public_id = ?", *filter.PublicID)
	}
	if filter.UserID != nil {
		query = query.Where("user_id = ?", *filter.UserID)
	}

	var entities []*dbschema.Persona
	if err := query.Order("created_at ASC").Find(&entities).Error; err != nil {
		return nil, platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to find personas",
			err,
			"0c8e3f6a-2d91-4b47-a6c0-8f5d1e7b3a29",
		)
	}

	return functional.Map(entities, func(entity *dbschema.Persona) *persona.Persona {
		return entity.EtoD()
	}), nil
}

func (repo *PersonaGormRepository) FindByPublicID(ctx context.Context, publicID string) (*persona.Persona, error) {
	var entity dbschema.Persona
	err := repo.db.GetTx(ctx).WithContext(ctx).
		Where("public_id = ?", publicID).
		First(&entity).
		Error
	if err != nil {
		return nil, platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeNotFound,
			"persona not found",
			err,
			"a1d6c9f3-7e24-40b8-9c1a-5b8e2d4f7a60",
		)
	}
	return entity.EtoD(), nil
}

func (repo *PersonaGormRepository) Update(ctx context.Context, p *persona.Persona) error {
	entity := dbschema.NewSchemaPersona(p)
	err := repo.db.GetTx(ctx).WithContext(ctx).
		Model(&dbschema.Persona{}).
		Where("id = ?", entity.ID).
		Updates(map[string]any{
			"name":          entity.Name,
			"system_prompt": entity.SystemPrompt,
			"updated_at":    entity.UpdatedAt,
		}).Error
	if err != nil {
		return platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to update persona",
			err,
			"6b0f4d8c-3a57-4e92-b8d6-1c7a9e2f5b34",
		)
	}
	return nil
}

func (repo *PersonaGormRepository) Delete(ctx context.Context, id uint) error {
	err := repo.db.GetTx(ctx).WithContext(ctx).
		Where("id = ?", id).
		Delete(&dbschema.Persona{}).
		Error
	if err != nil {
		return platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to delete persona",
			err,
			"e9c2a5f8-0d61-4738-a2e9-7f4b8c1d6a03",
		)
	}
	return nil
}
