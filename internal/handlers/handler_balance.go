package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rodmarapp/rodmar_backend/internal/apperrors"
	"github.com/rodmarapp/rodmar_backend/internal/core/domain"
	portssvc "github.com/rodmarapp/rodmar_backend/internal/core/ports/services"
	"github.com/rodmarapp/rodmar_backend/internal/dto"
)

type balanceHandler struct {
	balanceService portssvc.BalanceSvcFacade
}

// balanceRoutes maps route segments to the partner type they aggregate.
// Regular types use the same plural names as their list routes; fixed
// pseudo-partners go by their own names.
var balanceRoutes = map[string]domain.PartnerType{
	"minas":       domain.PartnerMina,
	"compradores": domain.PartnerComprador,
	"volqueteros": domain.PartnerVolquetero,
	"terceros":    domain.PartnerTercero,
	"rodmar":      domain.PartnerRodMar,
	"banco":       domain.PartnerBanco,
	"lcdm":        domain.PartnerLCDM,
	"postobon":    domain.PartnerPostobon,
}

func registerBalanceRoutes(rg *gin.RouterGroup, balanceService portssvc.BalanceSvcFacade) {
	h := &balanceHandler{balanceService: balanceService}
	rg.GET("/balances/:tipo", h.getBalances)
}

// getBalances godoc
// @Summary Aggregated balance map for one partner type
// @Description Returns per-partner balance, trip count and trips in the last 30 days. Served from cache when fresh; the last known map is served when aggregation fails.
// @Tags balances
// @Produce json
// @Param tipo path string true "Route segment (minas, compradores, volqueteros, terceros, or a fixed ledger name)"
// @Success 200 {object} dto.BalancesResponse
// @Failure 400 {object} map[string]string "Unknown partner type"
// @Security BearerAuth
// @Router /balances/{tipo} [get]
func (h *balanceHandler) getBalances(c *gin.Context) {
	tipo, ok := balanceRoutes[c.Param("tipo")]
	if !ok {
		respondError(c, fmt.Errorf("%w: unknown balance segment %q", apperrors.ErrValidation, c.Param("tipo")))
		return
	}
	balances, summary, err := h.balanceService.BalancesForTipo(c.Request.Context(), tipo)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToBalancesResponse(balances, summary))
}
