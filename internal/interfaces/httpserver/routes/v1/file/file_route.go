package file

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"glow-server/internal/infrastructure/logger"
	"glow-server/internal/interfaces/httpserver/handlers/documenthandler"
	"glow-server/internal/interfaces/httpserver/middlewares"
	"glow-server/internal/utils/platformerrors"
)

// FileRoute handles reference file uploads and listings.
type FileRoute struct {
	documentHandler *documenthandler.DocumentHandler
}

func NewFileRoute(documentHandler *documenthandler.DocumentHandler) *FileRoute {
	return &FileRoute{documentHandler: documentHandler}
}

func (route *FileRoute) RegisterRouter(router *gin.RouterGroup) {
	group := router.Group("/files")
	group.POST("", route.UploadFile)
	group.GET("", route.ListFiles)
}

// UploadFile
// @Summary Upload a reference file
// @Description Stores an uploaded file's metadata. Text files are additionally split into overlapping chunks for prompt grounding.
// @Tags Files
// @Security BearerAuth
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "File to upload"
// @Success 201 {object} documentresponses.DocumentResponse
// @Failure 400 {object} platformerrors.HTTPErrorResponse "Missing file or size limit exceeded"
// @Router /v1/files [post]
func (route *FileRoute) UploadFile(reqCtx *gin.Context) {
	usr, ok := middlewares.CurrentUser(reqCtx)
	if !ok {
		platformerrors.WriteUnauthorized(reqCtx, "authentication required")
		return
	}

	fileHeader, err := reqCtx.FormFile("file")
	if err != nil {
		platformerrors.WriteValidationError(reqCtx, "missing file field")
		return
	}

	log.Info().
		Str("route", "/v1/files").
		Uint("user_id", usr.ID).
		Str("filename", fileHeader.Filename).
		Int64("size_bytes", fileHeader.Size).
		Msg("file upload received")

	result, err := route.documentHandler.UploadDocument(reqCtx.Request.Context(), usr.ID, fileHeader)
	if err != nil {
		platformerrors.WriteError(reqCtx, err, logger.GetLogger())
		return
	}

	reqCtx.JSON(http.StatusCreated, result)
}

// ListFiles
// @Summary List uploaded files
// @Tags Files
// @Security BearerAuth
// @Produce json
// @Success 200 {object} documentresponses.DocumentListResponse
// @Router /v1/files [get]
func (route *FileRoute) ListFiles(reqCtx *gin.Context) {
	usr, ok := middlewares.CurrentUser(reqCtx)
	if !ok {
		platformerrors.WriteUnauthorized(reqCtx, "authentication required")
		return
	}

	result, err := route.documentHandler.ListDocuments(reqCtx.Request.Context(), usr.ID)
	if err != nil {
		platformerrors.WriteError(reqCtx, err, logger.GetLogger())
		return
	}

	reqCtx.JSON(http.StatusOK, result)
}
