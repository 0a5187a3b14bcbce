package threadrepo

import (
	"context"

	"glow-server/internal/domain/thread"
	"glow-server/internal/infrastructure/database/dbschema"
	"glow-server/internal/infrastructure/database/transaction"
	"glow-server/internal/utils/functional"
	"glow-server/internal/utils/platformerrors"
)

type ThreadGormRepository struct {
	db *transaction.Database
}

var _ thread.Repository = (*ThreadGormRepository)(nil)

func NewThreadGormRepository(db *transaction.Database) thread.Repository {
	return &ThreadGormRepository{db: db}
}

func (repo *ThreadGormRepository) Create(ctx context.Context, t *thread.Thread) error {
	entity := dbschema.NewSchemaThread(t)
	if err := repo.db.GetTx(ctx).WithContext(ctx).Create(entity).Error; err != nil {
		return platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to create thread",
			err,
			"b5e8f1a3-2c97-4d60-8b4e-7f0a9c2d5e18",
		)
	}
	*t = *entity.EtoD()
	return nil
}

func (repo *ThreadGormRepository) FindByFilter(ctx context.Context, filter thread.ThreadFilter) ([]*thread.Thread, error) {
	query := repo.db.GetTx(ctx).WithContext(ctx).Model(&dbschema.Thread{})
	if filter.ID != nil {
		query = query.Where("id = ?", *filter.ID)
	}
	if filter.PublicID != nil {
		query = query.Where("public_id = ?", *filter.PublicID)
	}
	if filter.UserID != nil {
		query = query.Where("user_id = ?", *filter.UserID)
	}

	var entities []*dbschema.Thread
	if err := query.Order("updated_at DESC").Find(&entities).Error; err != nil {
		return nil, platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to find threads",
			err,
			"8d2a6f4c-0e71-49b3-a5d8-3c9e1b7f2a64",
		)
	}

	return functional.Map(entities, func(entity *dbschema.Thread) *thread.Thread {
		return entity.EtoD()
	}), nil
}

func (repo *ThreadGormRepository) FindByPublicID(ctx context.Context, publicID string) (*thread.Thread, error) {
	var entity dbschema.Thread
	err := repo.db.GetTx(ctx).WithContext(ctx).
		Where("public_id = ?", publicID).
		First(&entity).
		Error
	if err != nil {
		return nil, platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeNotFound,
			"thread not found",
			err,
			"3c7f0b2e-8a54-4d96-b1c3-5e8d2f6a9c07",
		)
	}
	return entity.EtoD(), nil
}

func (repo *ThreadGormRepository) Update(ctx context.Context, t *thread.Thread) error {
	entity := dbschema.NewSchemaThread(t)
	err := repo.db.GetTx(ctx).WithContext(ctx).
		Model(&dbschema.Thread{}).
		Where("id = ?", entity.ID).
		Updates(map[string]any{
			"title":      entity.Title,
			"updated_at": entity.UpdatedAt,
		}).Error
	if err != nil {
		return platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to update thread",
			err,
			"6e1c9d4a-5b28-47f0-9e6b-0a3d8c5f1b72",
		)
	}
	return nil
}

// Delete removes the thread row only. Message rows stay behind.
func (repo *ThreadGormRepository) Delete(ctx context.Context, id uint) error {
	err := repo.db.GetTx(ctx).WithContext(ctx).
		Where("id = ?", id).
		Delete(&dbschema.Thread{}).
		Error
	if err != nil {
		return platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to delete thread",
			err,
			"f0a4d7c2-3e89-4b15-8c0f-9d6e2a4b7c53",
		)
	}
	return nil
}

func (repo *ThreadGormRepository) AppendMessage(ctx context.Context, m *thread.Message) error {
	entity := dbschema.NewSchemaMessage(m)
	if err := repo.db.GetTx(ctx).WithContext(ctx).Create(entity).Error; err != nil {
		return platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to append message",
			err,
			"7b3e5a9d-1f42-4c80-b2e7-4d0c8f6a3e91",
		)
	}
	*m = *entity.EtoD()
	return nil
}

func (repo *ThreadGormRepository) ListMessages(ctx context.Context, threadID uint) ([]*thread.Message, error) {
	var entities []*dbschema.Message
	err := repo.db.GetTx(ctx).WithContext(ctx).
		Where("thread_id = ?", threadID).
		Order("created_at ASC, id ASC").
		Find(&entities).
		Error
	if err != nil {
		return nil, platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to list messages",
			err,
			"2a6d8f1b-9e37-405c-a4d2-7c5e0b3f8a16",
		)
	}

	return functional.Map(entities, func(entity *dbschema.Message) *thread.Message {
		return entity.EtoD()
	}), nil
}

// LastMessages reads the newest n rows and reverses them so the caller gets
// chronological order.
func (repo *ThreadGormRepository) LastMessages(ctx context.Context, threadID uint, n int) ([]*thread.Message, error) {
	var entities []dbschema.Message
	err := repo.db.GetTx(ctx).WithContext(ctx).
		Where("thread_id = ?", threadID).
		Order("created_at DESC, id DESC").
		Limit(n).
		Find(&entities).
		Error
	if err != nil {
		return nil, platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to read recent messages",
			err,
			"9f2c4e7a-6d10-4b83-9a5f-1e8b3d6c0f49",
		)
	}

	messages := make([]*thread.Message, len(entities))
	for i := range entities {
		messages[len(entities)-1-i] = entities[i].EtoD()
	}
	return messages, nil
}

func (repo *ThreadGormRepository) CountMessages(ctx context.Context, threadID uint) (int64, error) {
	var count int64
	err := repo.db.GetTx(ctx).WithContext(ctx).
		Model(&dbschema.Message{}).
		Where("thread_id = ?", threadID).
		Count(&count).
		Error
	if err != nil {
		return 0, platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to count messages",
			err,
			"4e9b1d6f-8c25-4a07-b3e9-6f2d5a8c1b70",
		)
	}
	return count, nil
}
