package persona

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"glow-server/internal/infrastructure/logger"
	"glow-server/internal/interfaces/httpserver/handlers/personahandler"
	"glow-server/internal/interfaces/httpserver/middlewares"
	personarequests "glow-server/internal/interfaces/httpserver/requests/persona"
	"glow-server/internal/utils/platformerrors"
)

// PersonaRoute handles persona CRUD.
type PersonaRoute struct {
	personaHandler *personahandler.PersonaHandler
}

func NewPersonaRoute(personaHandler *personahandler.PersonaHandler) *PersonaRoute {
	return &PersonaRoute{personaHandler: personaHandler}
}

func (route *PersonaRoute) RegisterRouter(router *gin.RouterGroup) {
	group := router.Group("/personas")
	group.POST("", route.CreatePersona)
	group.GET("", route.ListPersonas)
	group.PATCH("/:persona_id", route.UpdatePersona)
	group.DELETE("/:persona_id", route.DeletePersona)
}

// CreatePersona
// @Summary Create a persona
// @Tags Personas
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body personarequests.CreatePersonaRequest true "Persona name and system prompt"
// @Success 201 {object} personaresponses.PersonaResponse
// @Failure 400 {object} platformerrors.HTTPErrorResponse "Missing name or system prompt"
// @Router /v1/personas [post]
func (route *PersonaRoute) CreatePersona(reqCtx *gin.Context) {
	usr, ok := middlewares.CurrentUser(reqCtx)
	if !ok {
		platformerrors.WriteUnauthorized(reqCtx, "authentication required")
		return
	}

	var request personarequests.CreatePersonaRequest
	if err := reqCtx.ShouldBindJSON(&request); err != nil {
		platformerrors.WriteValidationError(reqCtx, "invalid request body")
		return
	}

	result, err := route.personaHandler.CreatePersona(reqCtx.Request.Context(), usr.ID, request)
	if err != nil {
		platformerrors.WriteError(reqCtx, err, logger.GetLogger())
		return
	}

	reqCtx.JSON(http.StatusCreated, result)
}

// ListPersonas
// @Summary List personas
// @Tags Personas
// @Security BearerAuth
// @Produce json
// @Success 200 {object} personaresponses.PersonaListResponse
// @Router /v1/personas [get]
func (route *PersonaRoute) ListPersonas(reqCtx *gin.Context) {
	usr, ok := middlewares.CurrentUser(reqCtx)
	if !ok {
		platformerrors.WriteUnauthorized(reqCtx, "authentication required")
		return
	}

	result, err := route.personaHandler.ListPersonas(reqCtx.Request.Context(), usr.ID)
	if err != nil {
		platformerrors.WriteError(reqCtx, err, logger.GetLogger())
		return
	}

	reqCtx.JSON(http.StatusOK, result)
}

// UpdatePersona
// @Summary Update a persona
// @Tags Personas
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param persona_id path string true "Persona public ID"
// @Param request body personarequests.UpdatePersonaRequest true "Fields to change"
// @Success 200 {object} personaresponses.PersonaResponse
// @Failure 404 {object} platformerrors.HTTPErrorResponse "Unknown persona"
// @Router /v1/personas/{persona_id} [patch]
func (route *PersonaRoute) UpdatePersona(reqCtx *gin.Context) {
	usr, ok := middlewares.CurrentUser(reqCtx)
	if !ok {
		platformerrors.WriteUnauthorized(reqCtx, "authentication required")
		return
	}

	var request personarequests.UpdatePersonaRequest
	if err := reqCtx.ShouldBindJSON(&request); err != nil {
		platformerrors.WriteValidationError(reqCtx, "invalid request body")
		return
	}

	result, err := route.personaHandler.UpdatePersona(reqCtx.Request.Context(), usr.ID, reqCtx.Param("persona_id"), request)
	if err != nil {
		platformerrors.WriteError(reqCtx, err, logger.GetLogger())
		return
	}

	reqCtx.JSON(http.StatusOK, result)
}

// DeletePersona
// @Summary Delete a persona
// @Tags Personas
// @Security BearerAuth
// @Param persona_id path string true "Persona public ID"
// @Success 204 "Deleted"
// @Failure 404 {object} platformerrors.HTTPErrorResponse "Unknown persona"
// @Router /v1/personas/{persona_id} [delete]
func (route *PersonaRoute) DeletePersona(reqCtx *gin.Context) {
	usr, ok := middlewares.CurrentUser(reqCtx)
	if !ok {
		platformerrors.WriteUnauthorized(reqCtx, "authentication required")
		return
	}

	if err := route.personaHandler.DeletePersona(reqCtx.Request.Context(), usr.ID, reqCtx.Param("persona_id")); err != nil {
		platformerrors.WriteError(reqCtx, err, logger.GetLogger())
		return
	}

	reqCtx.Status(http.StatusNoContent)
}
