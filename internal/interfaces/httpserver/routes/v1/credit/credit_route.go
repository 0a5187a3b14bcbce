package credit

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"glow-server/internal/infrastructure/logger"
	"glow-server/internal/interfaces/httpserver/handlers/credithandler"
	"glow-server/internal/interfaces/httpserver/middlewares"
	"glow-server/internal/utils/platformerrors"
)

// CreditRoute handles balance and ledger reads.
type CreditRoute struct {
	creditHandler *credithandler.CreditHandler
}

func NewCreditRoute(creditHandler *credithandler.CreditHandler) *CreditRoute {
	return &CreditRoute{creditHandler: creditHandler}
}

func (route *CreditRoute) RegisterRouter(router *gin.RouterGroup) {
	group := router.Group("/credits")
	group.GET("", route.GetBalance)
}

// GetBalance
// @Summary Get credit balance
// @Description Returns the authoritative stored balance plus the most recent ledger entries.
// @Tags Credits
// @Security BearerAuth
// @Produce json
// @Success 200 {object} creditresponses.CreditBalanceResponse
// @Router /v1/credits [get]
func (route *CreditRoute) GetBalance(reqCtx *gin.Context) {
	usr, ok := middlewares.CurrentUser(reqCtx)
	if !ok {
		platformerrors.WriteUnauthorized(reqCtx, "authentication required")
		return
	}

	result, err := route.creditHandler.GetBalance(reqCtx.Request.Context(), usr.ID)
	if err != nil {
		platformerrors.WriteError(reqCtx, err, logger.GetLogger())
		return
	}

	reqCtx.JSON(http.StatusOK, result)
}
