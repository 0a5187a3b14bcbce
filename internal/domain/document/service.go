package document

import (
	"context"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"glow-server/internal/utils/idgen"
	"glow-server/internal/utils/platformerrors"
	"glow-server/internal/utils/textchunk"
)

// Service provides upload business logic: type detection, size enforcement
// and chunking of text content.
type Service struct {
	repo         Repository
	maxBytes     int64
	chunkSize    int
	chunkOverlap int
}

// NewService constructs a Service with required dependencies.
func NewService(repo Repository, maxBytes int64, chunkSize, chunkOverlap int) *Service {
	return &Service{
		repo:         repo,
		maxBytes:     maxBytes,
		chunkSize:    chunkSize,
		chunkOverlap: chunkOverlap,
	}
}

// Ingest stores an upload. Text content is split into overlapping chunks in
// the same write; other content types keep metadata only.
func (s *Service) Ingest(ctx context.Context, userID uint, filename string, content []byte) (*Document, error) {
	if len(content) == 0 {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation, "uploaded file is empty", nil, "")
	}
	if int64(len(content)) > s.maxBytes {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation, "uploaded file exceeds the size limit", nil, "")
	}

	detected := mimetype.Detect(content)

	publicID, err := idgen.GenerateSecureID("doc", 16)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to generate document id")
	}
	doc := &Document{
		PublicID:  publicID,
		UserID:    userID,
		Filename:  strings.TrimSpace(filename),
		MimeType:  detected.String(),
		SizeBytes: int64(len(content)),
	}

	var chunks []*DocumentChunk
	if isTextual(detected) {
		pieces := textchunk.Split(string(content), s.chunkSize, s.chunkOverlap)
		chunks = make([]*DocumentChunk, 0, len(pieces))
		for i, piece := range pieces {
			chunks = append(chunks, &DocumentChunk{Index: i, Content: piece})
		}
		doc.ChunkCount = len(chunks)
	}

	if err := s.repo.Create(ctx, doc, chunks); err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to store document")
	}
	return doc, nil
}

// List returns the caller's documents, newest first.
func (s *Service) List(ctx context.Context, userID uint) ([]*Document, error) {
	docs, err := s.repo.FindByFilter(ctx, DocumentFilter{UserID: &userID})
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to list documents")
	}
	return docs, nil
}

// GetOwned fetches a document and enforces ownership.
func (s *Service) GetOwned(ctx context.Context, userID uint, publicID string) (*Document, error) {
	doc, err := s.repo.FindByPublicID(ctx, publicID)
	if err != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeNotFound, "document not found", err, "")
	}
	if doc.UserID != userID {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeForbidden, "document belongs to another user", nil, "")
	}
	return doc, nil
}

// Chunks returns a document's chunks in order after an ownership check.
func (s *Service) Chunks(ctx context.Context, userID uint, publicID string) ([]*DocumentChunk, error) {
	doc, err := s.GetOwned(ctx, userID, publicID)
	if err != nil {
		return nil, err
	}
	chunks, err := s.repo.ListChunks(ctx, doc.ID)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to list document chunks")
	}
	return chunks, nil
}

func isTextual(detected *mimetype.MIME) bool {
	for m := detected; m != nil; m = m.Parent() {
		if m.Is("text/plain") {
			return true
		}
	}
	return strings.HasPrefix(detected.String(), "text/") ||
		detected.Is("application/json") ||
		detected.Is("application/xml")
}
