// Package document owns uploaded reference files and their derived text
// chunks used for prompt grounding.
package document

import (
	"context"
	"time"
)

// Document is an uploaded file's metadata record.
type Document struct {
	ID        uint
	PublicID  string
	UserID    uint
	Filename  string
	MimeType  string
	SizeBytes int64
	// ChunkCount is zero for non-text uploads.
	ChunkCount int
	CreatedAt  time.Time
}

// DocumentChunk is one slice of an uploaded text document.
type DocumentChunk struct {
	ID         uint
	DocumentID uint
	Index      int
	Content    string
	CreatedAt  time.Time
}

// DocumentFilter narrows document lookups.
type DocumentFilter struct {
	ID       *uint
	PublicID *string
	UserID   *uint
}

// Repository defines storage operations for documents and chunks.
type Repository interface {
	Create(ctx context.Context, doc *Document, chunks []*DocumentChunk) error
	FindByFilter(ctx context.Context, filter DocumentFilter) ([]*Document, error)
	FindByPublicID(ctx context.Context, publicID string) (*Document, error)
	ListChunks(ctx context.Context, documentID uint) ([]*DocumentChunk, error)
}
