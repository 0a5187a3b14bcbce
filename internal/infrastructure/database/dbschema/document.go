package dbschema

import (
	"glow-server/internal/domain/document"
	"glow-server/internal/infrastructure/database"
)

func init() {
	database.RegisterSchemaForAutoMigrate(Document{})
	database.RegisterSchemaForAutoMigrate(DocumentChunk{})
}

// Document represents the database schema for uploaded files.
type Document struct {
	BaseModel
	PublicID   string `gorm:"type:varchar(50);uniqueIndex;not null"`
	UserID     uint   `gorm:"index:idx_documents_user_created;not null"`
	User       User   `gorm:"foreignKey:UserID"`
	Filename   string `gorm:"type:varchar(512);not null"`
	MimeType   string `gorm:"type:varchar(255);not null"`
	SizeBytes  int64  `gorm:"not null"`
	ChunkCount int    `gorm:"not null;default:0"`

	Chunks []DocumentChunk `gorm:"foreignKey:DocumentID"`
}

// DocumentChunk represents one stored slice of a text document.
type DocumentChunk struct {
	BaseModel
	DocumentID uint   `gorm:"uniqueIndex:ux_document_chunks_doc_index;not null"`
	Index      int    `gorm:"column:chunk_index;uniqueIndex:ux_document_chunks_doc_index;not null"`
	Content    string `gorm:"type:text;not null"`
}

// NewSchemaDocument converts a domain document into a schema instance.
func NewSchemaDocument(d *document.Document) *Document {
	if d == nil {
		return nil
	}

	return &Document{
		BaseModel: BaseModel{
			ID:        d.ID,
			CreatedAt: d.CreatedAt,
		},
		PublicID:   d.PublicID,
		UserID:     d.UserID,
		Filename:   d.Filename,
		MimeType:   d.MimeType,
		SizeBytes:  d.SizeBytes,
		ChunkCount: d.ChunkCount,
	}
}

// EtoD converts a schema document back to the domain representation.
func (d *Document) EtoD() *document.Document {
	if d == nil {
		return nil
	}

	return &document.Document{
		ID:         d.ID,
		PublicID:   d.PublicID,
		UserID:     d.UserID,
		Filename:   d.Filename,
		MimeType:   d.MimeType,
		SizeBytes:  d.SizeBytes,
		ChunkCount: d.ChunkCount,
		CreatedAt:  d.CreatedAt,
	}
}

// NewSchemaDocumentChunk converts a domain chunk into a schema instance.
func NewSchemaDocumentChunk(c *document.DocumentChunk) *DocumentChunk {
	if c == nil {
		return nil
	}

	return &DocumentChunk{
		BaseModel: BaseModel{
			ID:        c.ID,
			CreatedAt: c.CreatedAt,
		},
		DocumentID: c.DocumentID,
		Index:      c.Index,
		Content:    c.Content,
	}
}

// EtoD converts a schema chunk back to the domain representation.
func (c *DocumentChunk) EtoD() *document.DocumentChunk {
	if c == nil {
		return nil
	}

	return &document.DocumentChunk{
		ID:         c.ID,
		DocumentID: c.DocumentID,
		Index:      c.Index,
		Content:    c.Content,
		CreatedAt:  c.CreatedAt,
	}
}
