package documentresponses

import (
	"time"

	"glow-server/internal/domain/document"
)

// DocumentResponse is one uploaded file's metadata.
type DocumentResponse struct {
	ID         string    `json:"id"`
	Filename   string    `json:"filename"`
	MimeType   string    `json:"mime_type"`
	SizeBytes  int64     `json:"size_bytes"`
	ChunkCount int       `json:"chunk_count"`
	CreatedAt  time.Time `json:"created_at"`
}

// DocumentListResponse wraps a document listing.
type DocumentListResponse struct {
	Documents []DocumentResponse `json:"documents"`
}

// NewDocumentResponse converts a domain document.
func NewDocumentResponse(d *document.Document) DocumentResponse {
	return DocumentResponse{
		ID:         d.PublicID,
		Filename:   d.Filename,
		MimeType:   d.MimeType,
		SizeBytes:  d.SizeBytes,
		ChunkCount: d.ChunkCount,
		CreatedAt:  d.CreatedAt,
	}
}

// NewDocumentListResponse converts a slice of domain documents.
func NewDocumentListResponse(docs []*document.Document) *DocumentListResponse {
	out := make([]DocumentResponse, 0, len(docs))
	for _, d := range docs {
		out = append(out, NewDocumentResponse(d))
	}
	return &DocumentListResponse{Documents: out}
}
