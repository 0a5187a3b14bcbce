package thread

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"glow-server/internal/infrastructure/logger"
	"glow-server/internal/interfaces/httpserver/handlers/threadhandler"
	"glow-server/internal/interfaces/httpserver/middlewares"
	threadrequests "glow-server/internal/interfaces/httpserver/requests/thread"
	"glow-server/internal/utils/platformerrors"
)

// ThreadRoute handles thread CRUD.
type ThreadRoute struct {
	threadHandler *threadhandler.ThreadHandler
}

func NewThreadRoute(threadHandler *threadhandler.ThreadHandler) *ThreadRoute {
	return &ThreadRoute{threadHandler: threadHandler}
}

func (route *ThreadRoute) RegisterRouter(router *gin.RouterGroup) {
	group := router.Group("/threads")
	group.POST("", route.CreateThread)
	group.GET("", route.ListThreads)
	group.GET("/:thread_id", route.GetThread)
	group.PATCH("/:thread_id", route.RenameThread)
	group.DELETE("/:thread_id", route.DeleteThread)
}

// CreateThread
// @Summary Create an empty thread
// @Tags Threads
// @Security BearerAuth
// @Produce json
// @Success 201 {object} threadresponses.ThreadResponse
// @Router /v1/threads [post]
func (route *ThreadRoute) CreateThread(reqCtx *gin.Context) {
	usr, ok := middlewares.CurrentUser(reqCtx)
	if !ok {
		platformerrors.WriteUnauthorized(reqCtx, "authentication required")
		return
	}

	result, err := route.threadHandler.CreateThread(reqCtx.Request.Context(), usr.ID)
	if err != nil {
		platformerrors.WriteError(reqCtx, err, logger.GetLogger())
		return
	}

	reqCtx.JSON(http.StatusCreated, result)
}

// ListThreads
// @Summary List threads
// @Description Returns the caller's threads ordered by most recent activity.
// @Tags Threads
// @Security BearerAuth
// @Produce json
// @Success 200 {object} threadresponses.ThreadListResponse
// @Router /v1/threads [get]
func (route *ThreadRoute) ListThreads(reqCtx *gin.Context) {
	usr, ok := middlewares.CurrentUser(reqCtx)
	if !ok {
		platformerrors.WriteUnauthorized(reqCtx, "authentication required")
		return
	}

	result, err := route.threadHandler.ListThreads(reqCtx.Request.Context(), usr.ID)
	if err != nil {
		platformerrors.WriteError(reqCtx, err, logger.GetLogger())
		return
	}

	reqCtx.JSON(http.StatusOK, result)
}

// GetThread
// @Summary Get a thread with its messages
// @Tags Threads
// @Security BearerAuth
// @Produce json
// @Param thread_id path string true "Thread public ID"
// @Success 200 {object} threadresponses.ThreadDetailResponse
// @Failure 404 {object} platformerrors.HTTPErrorResponse "Unknown thread"
// @Router /v1/threads/{thread_id} [get]
func (route *ThreadRoute) GetThread(reqCtx *gin.Context) {
	usr, ok := middlewares.CurrentUser(reqCtx)
	if !ok {
		platformerrors.WriteUnauthorized(reqCtx, "authentication required")
		return
	}

	result, err := route.threadHandler.GetThread(reqCtx.Request.Context(), usr.ID, reqCtx.Param("thread_id"))
	if err != nil {
		platformerrors.WriteError(reqCtx, err, logger.GetLogger())
		return
	}

	reqCtx.JSON(http.StatusOK, result)
}

// RenameThread
// @Summary Rename a thread
// @Description Sets a user-chosen title. A blank title is ignored and the stored title is returned unchanged. A successful rename permanently disables automatic titling for the thread.
// @Tags Threads
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param thread_id path string true "Thread public ID"
// @Param request body threadrequests.RenameThreadRequest true "New title"
// @Success 200 {object} threadresponses.ThreadResponse
// @Failure 404 {object} platformerrors.HTTPErrorResponse "Unknown thread"
// @Router /v1/threads/{thread_id} [patch]
func (route *ThreadRoute) RenameThread(reqCtx *gin.Context) {
	usr, ok := middlewares.CurrentUser(reqCtx)
	if !ok {
		platformerrors.WriteUnauthorized(reqCtx, "authentication required")
		return
	}

	var request threadrequests.RenameThreadRequest
	if err := reqCtx.ShouldBindJSON(&request); err != nil {
		platformerrors.WriteValidationError(reqCtx, "invalid request body")
		return
	}

	result, err := route.threadHandler.RenameThread(reqCtx.Request.Context(), usr.ID, reqCtx.Param("thread_id"), request)
	if err != nil {
		platformerrors.WriteError(reqCtx, err, logger.GetLogger())
		return
	}

	reqCtx.JSON(http.StatusOK, result)
}

// DeleteThread
// @Summary Delete a thread
// @Description Removes the thread record. Messages are not cascaded.
// @Tags Threads
// @Security BearerAuth
// @Param thread_id path string true "Thread public ID"
// @Success 204 "Deleted"
// @Failure 404 {object} platformerrors.HTTPErrorResponse "Unknown thread"
// @Router /v1/threads/{thread_id} [delete]
func (route *ThreadRoute) DeleteThread(reqCtx *gin.Context) {
	usr, ok := middlewares.CurrentUser(reqCtx)
	if !ok {
		platformerrors.WriteUnauthorized(reqCtx, "authentication required")
		return
	}

	if err := route.threadHandler.DeleteThread(reqCtx.Request.Context(), usr.ID, reqCtx.Param("thread_id")); err != nil {
		platformerrors.WriteError(reqCtx, err, logger.GetLogger())
		return
	}

	reqCtx.Status(http.StatusNoContent)
}
