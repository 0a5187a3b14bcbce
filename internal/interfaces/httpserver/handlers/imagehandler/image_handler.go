package imagehandler

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"glow-server/internal/config"
	"glow-server/internal/domain/credit"
	"glow-server/internal/domain/image"
	"glow-server/internal/infrastructure/inference"
	"glow-server/internal/infrastructure/metrics"
	"glow-server/internal/infrastructure/observability"
	imagerequests "glow-server/internal/interfaces/httpserver/requests/image"
	imageresponses "glow-server/internal/interfaces/httpserver/responses/image"
	imageclient "glow-server/internal/utils/httpclients/image"
	"glow-server/internal/utils/platformerrors"
)

// ImageHandler orchestrates paid image generations and gallery reads.
type ImageHandler struct {
	images    *image.Service
	credits   *credit.Service
	inference *inference.InferenceProvider
	cfg       *config.Config
}

// NewImageHandler creates a new image handler
func NewImageHandler(
	images *image.Service,
	credits *credit.Service,
	inferenceProvider *inference.InferenceProvider,
	cfg *config.Config,
) *ImageHandler {
	return &ImageHandler{
		images:    images,
		credits:   credits,
		inference: inferenceProvider,
		cfg:       cfg,
	}
}

// GenerateImage runs one paid generation.
//
// The deduction is a single atomic check-and-spend. Unlike the chat flow
// there is no refund when the remote call fails: the operator accepts that
// cost rather than handing out free retries against an expensive backend.
func (h *ImageHandler) GenerateImage(
	ctx context.Context,
	userID uint,
	request imagerequests.GenerateImageRequest,
) (*imageresponses.GenerateImageResponse, error) {
	ctx, span := observability.StartSpan(ctx, h.cfg.ServiceName, "ImageHandler.GenerateImage")
	defer span.End()

	startTime := time.Now()
	size := h.cfg.ImageSize
	if request.Size != nil && *request.Size != "" {
		size = *request.Size
	}

	observability.AddSpanAttributes(ctx,
		attribute.String("image.model", h.cfg.ImageModel),
		attribute.String("image.size", size),
		attribute.Int("user.id", int(userID)),
	)

	balance, err := h.credits.Deduct(ctx, userID, h.cfg.ImageCreditCost, credit.ReasonImage)
	if err != nil {
		if credit.IsInsufficientCredits(err) {
			metrics.RecordInsufficientCredits("image")
		}
		return nil, err
	}
	metrics.RecordCreditsSpent(string(credit.ReasonImage), h.cfg.ImageCreditCost)

	result, err := h.inference.ImageClient().Generate(ctx, h.inference.ImageAPIKey(), imageclient.GenerateRequest{
		Prompt: request.Prompt,
		Model:  h.cfg.ImageModel,
		Size:   size,
		N:      1,
	})
	if err != nil {
		metrics.RecordImageGeneration(h.cfg.ImageModel, "provider_error", time.Since(startTime).Seconds())
		observability.SetSpanStatus(ctx, codes.Error, "image provider call failed")
		return nil, platformerrors.NewErrorWithContext(
			ctx,
			platformerrors.LayerHandler,
			platformerrors.ErrorTypeExternal,
			"image generation failed",
			err,
			"",
			map[string]any{"credit_balance": balance},
		)
	}

	stored, err := h.images.Record(ctx, userID, request.Prompt, h.cfg.ImageModel, size, result.Data[0].URL)
	if err != nil {
		return nil, err
	}

	metrics.RecordImageGeneration(h.cfg.ImageModel, "ok", time.Since(startTime).Seconds())
	observability.SetSpanStatus(ctx, codes.Ok, "")

	return &imageresponses.GenerateImageResponse{
		Image:         imageresponses.NewGeneratedImageResponse(stored),
		CreditBalance: balance,
	}, nil
}

// ListImages returns the caller's gallery.
func (h *ImageHandler) ListImages(ctx context.Context, userID uint) (*imageresponses.ImageListResponse, error) {
	images, err := h.images.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	return imageresponses.NewImageListResponse(images), nil
}
