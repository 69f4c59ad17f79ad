package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/rodmarapp/rodmar_backend/internal/core/domain"
	portsrepo "github.com/rodmarapp/rodmar_backend/internal/core/ports/repositories"
	portssvc "github.com/rodmarapp/rodmar_backend/internal/core/ports/services"
	"github.com/rodmarapp/rodmar_backend/internal/dto"
)

type transaccionHandler struct {
	transaccionService portssvc.TransaccionSvcFacade
}

func registerTransaccionRoutes(rg *gin.RouterGroup, transaccionService portssvc.TransaccionSvcFacade) {
	h := &transaccionHandler{transaccionService: transaccionService}

	transacciones := rg.Group("/transacciones")
	{
		transacciones.GET("", h.listTransacciones)
		transacciones.POST("", h.createTransaccion)
		transacciones.POST("/solicitar", h.solicitarTransaccion)
		transacciones.GET("/:id", h.getTransaccion)
		transacciones.PATCH("/:id", h.updateTransaccion)
		transacciones.DELETE("/:id", h.deleteTransaccion)
		transacciones.PUT("/:id/completar", h.completarTransaccion)
	}
}

// listTransacciones godoc
// @Summary List transactions
// @Description Token-paginated list, newest first. Optional partner scope (tipo + partnerId) and estado filter.
// @Tags transacciones
// @Produce json
// @Param tipo query string false "Partner type of the scope"
// @Param partnerId query string false "Partner ID of the scope"
// @Param estado query string false "Lifecycle state filter"
// @Param limit query int false "Page size (default 50, max 100)"
// @Param nextToken query string false "Cursor from the previous page"
// @Success 200 {object} dto.ListTransaccionesResponse
// @Security BearerAuth
// @Router /transacciones [get]
func (h *transaccionHandler) listTransacciones(c *gin.Context) {
	params := portsrepo.ListTransaccionesParams{
		Estado: domain.TransaccionEstado(c.Query("estado")),
	}
	if tipo, partnerID := c.Query("tipo"), c.Query("partnerId"); tipo != "" && partnerID != "" {
		params.Partner = &domain.PartnerRef{Tipo: domain.PartnerType(tipo), ID: partnerID}
	}
	if limitStr := c.Query("limit"); limitStr != "" {
		if limit, err := strconv.Atoi(limitStr); err == nil {
			params.Limit = limit
		}
	}
	if token := c.Query("nextToken"); token != "" {
		params.NextToken = &token
	}

	resp, err := h.transaccionService.ListTransacciones(c.Request.Context(), params)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// createTransaccion godoc
// @Summary Create a completed transaction
// @Tags transacciones
// @Accept json
// @Produce json
// @Param transaccion body dto.CreateTransaccionRequest true "Transaction details"
// @Success 201 {object} dto.TransaccionResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Security BearerAuth
// @Router /transacciones [post]
func (h *transaccionHandler) createTransaccion(c *gin.Context) {
	var req dto.CreateTransaccionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	txn, err := h.transaccionService.CreateTransaccion(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToTransaccionResponse(txn))
}

// solicitarTransaccion godoc
// @Summary Request a pending transaction
// @Description Creates a pending transaction carrying the requested bank-account text until completion supplies the paying account.
// @Tags transacciones
// @Accept json
// @Produce json
// @Param solicitud body dto.SolicitarTransaccionRequest true "Request details"
// @Success 201 {object} dto.TransaccionResponse
// @Security BearerAuth
// @Router /transacciones/solicitar [post]
func (h *transaccionHandler) solicitarTransaccion(c *gin.Context) {
	var req dto.SolicitarTransaccionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	txn, err := h.transaccionService.SolicitarTransaccion(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToTransaccionResponse(txn))
}

// getTransaccion godoc
// @Summary Get a transaction by ID
// @Tags transacciones
// @Produce json
// @Param id path string true "Transaction ID"
// @Success 200 {object} dto.TransaccionResponse
// @Failure 404 {object} map[string]string "Transaction not found"
// @Security BearerAuth
// @Router /transacciones/{id} [get]
func (h *transaccionHandler) getTransaccion(c *gin.Context) {
	txn, err := h.transaccionService.GetTransaccionByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToTransaccionResponse(txn))
}

// updateTransaccion godoc
// @Summary Update a transaction
// @Tags transacciones
// @Accept json
// @Produce json
// @Param id path string true "Transaction ID"
// @Param transaccion body dto.UpdateTransaccionRequest true "Fields to update"
// @Success 200 {object} dto.TransaccionResponse
// @Security BearerAuth
// @Router /transacciones/{id} [patch]
func (h *transaccionHandler) updateTransaccion(c *gin.Context) {
	var req dto.UpdateTransaccionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	txn, err := h.transaccionService.UpdateTransaccion(c.Request.Context(), c.Param("id"), req, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToTransaccionResponse(txn))
}

// deleteTransaccion godoc
// @Summary Delete a transaction
// @Description Trip-linked settlements cannot be deleted directly.
// @Tags transacciones
// @Param id path string true "Transaction ID"
// @Success 204 "Deleted"
// @Failure 409 {object} map[string]string "Transaction belongs to a trip"
// @Security BearerAuth
// @Router /transacciones/{id} [delete]
func (h *transaccionHandler) deleteTransaccion(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	if err := h.transaccionService.DeleteTransaccion(c.Request.Context(), c.Param("id"), userID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// completarTransaccion godoc
// @Summary Complete a pending transaction
// @Description Supplies the actual origin account; the state flips to completado and the request text is cleared.
// @Tags transacciones
// @Accept json
// @Produce json
// @Param id path string true "Transaction ID"
// @Param completion body dto.CompletarTransaccionRequest true "Completion details"
// @Success 200 {object} dto.TransaccionResponse
// @Failure 409 {object} map[string]string "Transaction is not pending"
// @Security BearerAuth
// @Router /transacciones/{id}/completar [put]
func (h *transaccionHandler) completarTransaccion(c *gin.Context) {
	var req dto.CompletarTransaccionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	txn, err := h.transaccionService.CompletarTransaccion(c.Request.Context(), c.Param("id"), req, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToTransaccionResponse(txn))
}
