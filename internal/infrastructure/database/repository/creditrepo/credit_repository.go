package creditrepo

import (
	"context"

	"gorm.io/gorm"

	"glow-server/internal/domain/credit"
	"glow-server/internal/infrastructure/database/dbschema"
	"glow-server/internal/infrastructure/database/transaction"
	"glow-server/internal/utils/functional"
	"glow-server/internal/utils/platformerrors"
)

type CreditGormRepository struct {
	db *transaction.Database
}

var _ credit.Repository = (*CreditGormRepository)(nil)

func NewCreditGormRepository(db *transaction.Database) credit.Repository {
	return &CreditGormRepository{db: db}
}

func (repo *CreditGormRepository) GetBalance(ctx context.Context, userID uint) (int, error) {
	var balance int
	err := repo.db.GetTx(ctx).WithContext(ctx).
		Model(&dbschema.User{}).
		Where("id = ?", userID).
		Pluck("credit_balance", &balance).
		Error
	if err != nil {
		return 0, platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to read credit balance",
			err,
			"a3f1c8d2-6b94-4e07-9c5a-1d8e2f7b4a06",
		)
	}
	return balance, nil
}

// DebitIfSufficient performs the check and the deduction in one guarded
// UPDATE so concurrent spenders cannot both pass the balance check.
func (repo *CreditGormRepository) DebitIfSufficient(ctx context.Context, userID uint, amount int) (int, bool, error) {
	tx := repo.db.GetTx(ctx).WithContext(ctx).
		Model(&dbschema.User{}).
		Where("id = ? AND credit_balance >= ?", userID, amount).
		Update("credit_balance", gorm.Expr("credit_balance - ?", amount))
	if tx.Error != nil {
		return 0, false, platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to debit credits",
			tx.Error,
			"e7b2a4c9-0f53-4d18-b6e2-9a4c7d1f3e85",
		)
	}

	balance, err := repo.GetBalance(ctx, userID)
	if err != nil {
		return 0, false, err
	}
	return balance, tx.RowsAffected == 1, nil
}

func (repo *CreditGormRepository) Credit(ctx context.Context, userID uint, amount int) (int, error) {
	err := repo.db.GetTx(ctx).WithContext(ctx).
		Model(&dbschema.User{}).
		Where("id = ?", userID).
		Update("credit_balance", gorm.Expr("credit_balance + ?", amount)).
		Error
	if err != nil {
		return 0, platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to credit balance",
			err,
			"9c6e1f3a-7d28-4b50-8a9e-2f4b6c8d0e17",
		)
	}
	return repo.GetBalance(ctx, userID)
}

func (repo *CreditGormRepository) RecordEntry(ctx context.Context, entry *credit.Entry) error {
	entity := dbschema.NewSchemaCreditEntry(entry)
	if err := repo.db.GetTx(ctx).WithContext(ctx).Create(entity).Error; err != nil {
		return platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to record credit entry",
			err,
			"5a8d2c7e-1b64-4f39-9d0a-8e3f5b7c2a91",
		)
	}
	*entry = *entity.EtoD()
	return nil
}

func (repo *CreditGormRepository) ListEntries(ctx context.Context, userID uint, limit int) ([]*credit.Entry, error) {
	var entities []*dbschema.CreditEntry
	err := repo.db.GetTx(ctx).WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&entities).
		Error
	if err != nil {
		return nil, platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to list credit entries",
			err,
			"1f4b7e2d-9c05-483a-b7d1-6a2e8f4c9b30",
		)
	}

	return functional.Map(entities, func(entity *dbschema.CreditEntry) *credit.Entry {
		return entity.EtoD()
	}), nil
}
