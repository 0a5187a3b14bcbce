package imagerepo

import (
	"context"

	"glow-server/internal/domain/image"
	"glow-server/internal/infrastructure/database/dbschema"
	"glow-server/internal/infrastructure/database/transaction"
	"glow-server/internal/utils/functional"
	"glow-server/internal/utils/platformerrors"
)

type ImageGormRepository struct {
	db *transaction.Database
}

var _ image.Repository = (*ImageGormRepository)(nil)

func NewImageGormRepository(db *transaction.Database) image.Repository {
	return &ImageGormRepository{db: db}
}

func (repo *ImageGormRepository) Create(ctx context.Context, img *image.GeneratedImage) error {
	entity := dbschema.NewSchemaGeneratedImage(img)
	if err := repo.db.GetTx(ctx).WithContext(ctx).Create(entity).Error; err != nil {
		return platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to create generated image",
			err,
			"b8e1f4a7-6c30-4d95-8a2b-0e7d3c9f5a48",
		)
	}
	*img = *entity.EtoD()
	return nil
}

func (repo *ImageGormRepository) FindByFilter(ctx context.Context, filter image.ImageFilter) ([]*image.GeneratedImage, error) {
	query := repo.db.GetTx(ctx).WithContext(ctx).Model(&dbschema.GeneratedImage{})
	if filter.ID != nil {
		query = query.Where("id = ?", *filter.ID)
	}
	if filter.PublicID != nil {
		query = query.Where("public_id = ?", *filter.PublicID)
	}
	if filter.UserID != nil {
		query = query.Where("user_id = ?", *filter.UserID)
	}

	var entities []*dbschema.GeneratedImage
	if err := query.Order("created_at DESC").Find(&entities).Error; err != nil {
		return nil, platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to find generated images",
			err,
			"5d9a2c6e-1f83-4b07-9e5d-3a8f0b4c7e12",
		)
	}

	return functional.Map(entities, func(entity *dbschema.GeneratedImage) *image.GeneratedImage {
		return entity.EtoD()
	}), nil
}

func (repo *ImageGormRepository) FindByPublicID(ctx context.Context, publicID string) (*image.GeneratedImage, error) {
	var entity dbschema.GeneratedImage
	err := repo.db.GetTx(ctx).WithContext(ctx).
		Where("public_id = ?", publicID).
		First(&entity).
		Error
	if err != nil {
		return nil, platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeNotFound,
			"generated image not found",
			err,
			"f3b6e0d9-4a27-4c81-b5f3-8d1c6e9a2b75",
		)
	}
	return entity.EtoD(), nil
}
