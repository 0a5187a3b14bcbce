package documenthandler

import (
	"context"
	"io"
	"mime/multipart"

	"glow-server/internal/config"
	"glow-server/internal/domain/document"
	"glow-server/internal/infrastructure/metrics"
	documentresponses "glow-server/internal/interfaces/httpserver/responses/document"
	"glow-server/internal/utils/platformerrors"
)

// DocumentHandler exposes file upload ingestion and listings.
type DocumentHandler struct {
	documents *document.Service
	cfg       *config.Config
}

// NewDocumentHandler creates a new document handler
func NewDocumentHandler(documents *document.Service, cfg *config.Config) *DocumentHandler {
	return &DocumentHandler{documents: documents, cfg: cfg}
}

// UploadDocument reads and ingests one multipart file.
func (h *DocumentHandler) UploadDocument(ctx context.Context, userID uint, fileHeader *multipart.FileHeader) (*documentresponses.DocumentResponse, error) {
	if fileHeader.Size > h.cfg.MaxUploadBytes {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerHandler, platformerrors.ErrorTypeValidation, "uploaded file exceeds the size limit", nil, "")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerHandler, err, "failed to open uploaded file")
	}
	defer file.Close()

	// LimitReader guards against a lying Content-Length.
	content, err := io.ReadAll(io.LimitReader(file, h.cfg.MaxUploadBytes+1))
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerHandler, err, "failed to read uploaded file")
	}
	if int64(len(content)) > h.cfg.MaxUploadBytes {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerHandler, platformerrors.ErrorTypeValidation, "uploaded file exceeds the size limit", nil, "")
	}

	doc, err := h.documents.Ingest(ctx, userID, fileHeader.Filename, content)
	if err != nil {
		return nil, err
	}

	metrics.RecordDocumentIngested(doc.MimeType)
	resp := documentresponses.NewDocumentResponse(doc)
	return &resp, nil
}

// ListDocuments returns the caller's uploads.
func (h *DocumentHandler) ListDocuments(ctx context.Context, userID uint) (*documentresponses.DocumentListResponse, error) {
	docs, err := h.documents.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	return documentresponses.NewDocumentListResponse(docs), nil
}
