package image

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"glow-server/internal/infrastructure/logger"
	"glow-server/internal/interfaces/httpserver/handlers/imagehandler"
	"glow-server/internal/interfaces/httpserver/middlewares"
	imagerequests "glow-server/internal/interfaces/httpserver/requests/image"
	"glow-server/internal/utils/platformerrors"
)

// ImageRoute handles paid image generations and gallery reads.
type ImageRoute struct {
	imageHandler *imagehandler.ImageHandler
}

func NewImageRoute(imageHandler *imagehandler.ImageHandler) *ImageRoute {
	return &ImageRoute{imageHandler: imageHandler}
}

func (route *ImageRoute) RegisterRouter(router *gin.RouterGroup) {
	group := router.Group("/images")
	group.POST("/generations", route.PostGeneration)
	group.GET("", route.ListImages)
}

// PostGeneration
// @Summary Generate an image
// @Description Atomically deducts the image cost and calls the remote generation provider. A provider failure does not refund the deduction. Successful results are stored in the caller's gallery.
// @Tags Images
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body imagerequests.GenerateImageRequest true "Image generation prompt"
// @Success 200 {object} imageresponses.GenerateImageResponse
// @Failure 400 {object} platformerrors.HTTPErrorResponse "Invalid request payload"
// @Failure 402 {object} platformerrors.HTTPErrorResponse "Insufficient credits"
// @Failure 502 {object} platformerrors.HTTPErrorResponse "Image provider failure"
// @Router /v1/images/generations [post]
func (route *ImageRoute) PostGeneration(reqCtx *gin.Context) {
	usr, ok := middlewares.CurrentUser(reqCtx)
	if !ok {
		platformerrors.WriteUnauthorized(reqCtx, "authentication required")
		return
	}

	var request imagerequests.GenerateImageRequest
	if err := reqCtx.ShouldBindJSON(&request); err != nil {
		platformerrors.WriteValidationError(reqCtx, "invalid request body")
		return
	}

	log.Info().
		Str("route", "/v1/images/generations").
		Uint("user_id", usr.ID).
		Int("prompt_length", len(request.Prompt)).
		Msg("image generation requested")

	result, err := route.imageHandler.GenerateImage(reqCtx.Request.Context(), usr.ID, request)
	if err != nil {
		platformerrors.WriteError(reqCtx, err, logger.GetLogger())
		return
	}

	reqCtx.JSON(http.StatusOK, result)
}

// ListImages
// @Summary List generated images
// @Description Returns the caller's gallery, newest first.
// @Tags Images
// @Security BearerAuth
// @Produce json
// @Success 200 {object} imageresponses.ImageListResponse
// @Router /v1/images [get]
func (route *ImageRoute) ListImages(reqCtx *gin.Context) {
	usr, ok := middlewares.CurrentUser(reqCtx)
	if !ok {
		platformerrors.WriteUnauthorized(reqCtx, "authentication required")
		return
	}

	result, err := route.imageHandler.ListImages(reqCtx.Request.Context(), usr.ID)
	if err != nil {
		platformerrors.WriteError(reqCtx, err, logger.GetLogger())
		return
	}

	reqCtx.JSON(http.StatusOK, result)
}
