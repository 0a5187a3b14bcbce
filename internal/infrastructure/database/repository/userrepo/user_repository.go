package userrepo

import (
	"context"

	"gorm.io/gorm"

	"glow-server/internal/domain/user"
	"glow-server/internal/infrastructure/database/dbschema"
	"glow-server/internal/infrastructure/database/transaction"
	"glow-server/internal/utils/platformerrors"
)

type UserGormRepository struct {
	db *transaction.Database
}

var _ user.Repository = (*UserGormRepository)(nil)

func NewUserGormRepository(db *transaction.Database) user.Repository {
	return &UserGormRepository{db: db}
}

func (repo *UserGormRepository) FindByIssuerAndSubject(ctx context.Context, issuer, subject string) (*user.User, error) {
	var entity dbschema.User
	err := repo.db.GetTx(ctx).WithContext(ctx).
		Where("issuer = ? AND subject = ?", issuer, subject).
		First(&entity).
		Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to find user by issuer and subject",
			err,
			"4f2f7f0e-1c3d-4f0a-9a7e-8b7d2c1f5e63",
		)
	}
	return entity.EtoD(), nil
}

func (repo *UserGormRepository) FindByID(ctx context.Context, id uint) (*user.User, error) {
	var entity dbschema.User
	err := repo.db.GetTx(ctx).WithContext(ctx).
		Where("id = ?", id).
		First(&entity).
		Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to find user by ID",
			err,
			"c1a9e3b7-5d42-4a8e-b6f0-3d2e9f7a1c84",
		)
	}
	return entity.EtoD(), nil
}

func (repo *UserGormRepository) Create(ctx context.Context, usr *user.User) error {
	entity := dbschema.NewSchemaUser(usr)
	if err := repo.db.GetTx(ctx).WithContext(ctx).Create(entity).Error; err != nil {
		return platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to create user",
			err,
			"7e5b2d90-8f13-4c6a-a1d4-6e0c9b3f8a27",
		)
	}
	*usr = *entity.EtoD()
	return nil
}

func (repo *UserGormRepository) Update(ctx context.Context, usr *user.User) error {
	entity := dbschema.NewSchemaUser(usr)
	if err := repo.db.GetTx(ctx).WithContext(ctx).
		Model(&dbschema.User{}).
		Where("id = ?", entity.ID).
		Updates(map[string]any{
			"email":      entity.Email,
			"name":       entity.Name,
			"updated_at": gorm.Expr("NOW()"),
		}).Error; err != nil {
		return platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to update user",
			err,
			"2d8c4e6f-9a01-47b5-8e3d-5f1a7c2b9e40",
		)
	}
	return nil
}
