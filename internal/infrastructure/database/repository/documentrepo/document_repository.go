package documentrepo

import (
	"context"

	"glow-server/internal/domain/document"
	"glow-server/internal/infrastructure/database/dbschema"
	"glow-server/internal/infrastructure/database/transaction"
	"glow-server/internal/utils/functional"
	"glow-server/internal/utils/platformerrors"
)

type DocumentGormRepository struct {
	db *transaction.Database
}

var _ document.Repository = (*DocumentGormRepository)(nil)

func NewDocumentGormRepository(db *transaction.Database) document.Repository {
	return &DocumentGormRepository{db: db}
}

// Create writes the document and its chunks in one transaction so a partial
// ingest never becomes visible.
func (repo *DocumentGormRepository) Create(ctx context.Context, doc *document.Document, chunks []*document.DocumentChunk) error {
	err := repo.db.RunInTx(ctx, func(ctx context.Context) error {
		entity := dbschema.NewSchemaDocument(doc)
		if err := repo.db.GetTx(ctx).Create(entity).Error; err != nil {
			return err
		}
		for _, chunk := range chunks {
			chunkEntity := dbschema.NewSchemaDocumentChunk(chunk)
			chunkEntity.DocumentID = entity.ID
			if err := repo.db.GetTx(ctx).Create(chunkEntity).Error; err != nil {
				return err
			}
			chunk.ID = chunkEntity.ID
			chunk.DocumentID = chunkEntity.DocumentID
		}
		*doc = *entity.EtoD()
		return nil
	})
	if err != nil {
		return platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to create document",
			err,
			"c7d0a3f6-9b58-4e21-a7c4-2f8b5d1e9a36",
		)
	}
	return nil
}

func (repo *DocumentGormRepository) FindByFilter(ctx context.Context, filter document.DocumentFilter) ([]*document.Document, error) {
	query := repo.db.GetTx(ctx).WithContext(ctx).Model(&dbschema.Document{})
	if filter.ID != nil {
		query = query.Where("id = ?", *filter.ID)
	}
	if filter.PublicID != nil {
		query = query.Where("public_id = ?", *filter.PublicID)
	}
	if filter.UserID != nil {
		query = query.Where("user_id = ?", *filter.UserID)
	}

	var entities []*dbschema.Document
	if err := query.Order("created_at DESC").Find(&entities).Error; err != nil {
		return nil, platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to find documents",
			err,
			"8a5c1e7b-2d94-4f60-b3a8-6e0f9d2c4b71",
		)
	}

	return functional.Map(entities, func(entity *dbschema.Document) *document.Document {
		return entity.EtoD()
	}), nil
}

func (repo *DocumentGormRepository) FindByPublicID(ctx context.Context, publicID string) (*document.Document, error) {
	var entity dbschema.Document
	err := repo.db.GetTx(ctx).WithContext(ctx).
		Where("public_id = ?", publicID).
		First(&entity).
		Error
	if err != nil {
		return nil, platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeNotFound,
			"document not found",
			err,
			"3e8b5d0c-7a16-4952-8e3b-1c6f4a9d7e20",
		)
	}
	return entity.EtoD(), nil
}

func (repo *DocumentGormRepository) ListChunks(ctx context.Context, documentID uint) ([]*document.DocumentChunk, error) {
	var entities []*dbschema.DocumentChunk
	err := repo.db.GetTx(ctx).WithContext(ctx).
		Where("document_id = ?", documentID).
		Order("chunk_index ASC").
		Find(&entities).
		Error
	if err != nil {
		return nil, platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to list document chunks",
			err,
			"0f7d2b9e-4c63-4a18-9f0d-5b3e8c1a6d42",
		)
	}

	return functional.Map(entities, func(entity *dbschema.DocumentChunk) *document.DocumentChunk {
		return entity.EtoD()
	}), nil
}
