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

type viajeHandler struct {
	viajeService  portssvc.ViajeSvcFacade
	importService portssvc.ImportSvcFacade
}

func registerViajeRoutes(rg *gin.RouterGroup, viajeService portssvc.ViajeSvcFacade, importService portssvc.ImportSvcFacade) {
	h := &viajeHandler{viajeService: viajeService, importService: importService}

	viajes := rg.Group("/viajes")
	{
		viajes.GET("", h.listViajes)
		viajes.POST("", h.createViaje)
		viajes.POST("/bulk-import", h.bulkImport)
		viajes.POST("/bulk-import/csv", h.bulkImportCSV)
		viajes.GET("/:id", h.getViaje)
		viajes.PATCH("/:id", h.updateViaje)
	}
	rg.POST("/check-conflicts", h.checkConflicts)
}

// listViajes godoc
// @Summary List trips
// @Description Token-paginated list, newest load date first, with optional estado and partner filters.
// @Tags viajes
// @Produce json
// @Param estado query string false "Lifecycle state filter"
// @Param minaId query string false "Mine filter"
// @Param compradorId query string false "Buyer filter"
// @Param volqueteroId query string false "Trucker filter"
// @Param limit query int false "Page size (default 50, max 100)"
// @Param nextToken query string false "Cursor from the previous page"
// @Success 200 {object} dto.ListViajesResponse
// @Security BearerAuth
// @Router /viajes [get]
func (h *viajeHandler) listViajes(c *gin.Context) {
	params := portsrepo.ListViajesParams{
		Estado:       domain.ViajeEstado(c.Query("estado")),
		MinaID:       c.Query("minaId"),
		CompradorID:  c.Query("compradorId"),
		VolqueteroID: c.Query("volqueteroId"),
	}
	if limitStr := c.Query("limit"); limitStr != "" {
		if limit, err := strconv.Atoi(limitStr); err == nil {
			params.Limit = limit
		}
	}
	if token := c.Query("nextToken"); token != "" {
		params.NextToken = &token
	}

	resp, err := h.viajeService.ListViajes(c.Request.Context(), params)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// createViaje godoc
// @Summary Register the load leg of a trip
// @Tags viajes
// @Accept json
// @Produce json
// @Param viaje body dto.CreateViajeRequest true "Trip details"
// @Success 201 {object} dto.ViajeResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Security BearerAuth
// @Router /viajes [post]
func (h *viajeHandler) createViaje(c *gin.Context) {
	var req dto.CreateViajeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	viaje, err := h.viajeService.CreateViaje(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToViajeResponse(viaje))
}

// getViaje godoc
// @Summary Get a trip by ID
// @Tags viajes
// @Produce json
// @Param id path string true "Trip ID"
// @Success 200 {object} dto.ViajeResponse
// @Failure 404 {object} map[string]string "Trip not found"
// @Security BearerAuth
// @Router /viajes/{id} [get]
func (h *viajeHandler) getViaje(c *gin.Context) {
	viaje, err := h.viajeService.GetViajeByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToViajeResponse(viaje))
}

// updateViaje godoc
// @Summary Update a trip
// @Description Supplying the unload weight and the three unit prices completes the trip; completion is irreversible.
// @Tags viajes
// @Accept json
// @Produce json
// @Param id path string true "Trip ID"
// @Param viaje body dto.UpdateViajeRequest true "Fields to update"
// @Success 200 {object} dto.ViajeResponse
// @Failure 409 {object} map[string]string "Trip is completed; weights and prices are final"
// @Security BearerAuth
// @Router /viajes/{id} [patch]
func (h *viajeHandler) updateViaje(c *gin.Context) {
	var req dto.UpdateViajeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	viaje, err := h.viajeService.UpdateViaje(c.Request.Context(), c.Param("id"), req, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToViajeResponse(viaje))
}

// bulkImport godoc
// @Summary Commit a bulk trip import
// @Description Rows are de-duplicated first (first occurrence wins); blank IDs are generated; conflicting IDs are replaced or skipped per the replace flag. Partial failure is a normal result.
// @Tags viajes
// @Accept json
// @Produce json
// @Param import body dto.BulkImportRequest true "Parsed rows and conflict strategy"
// @Success 200 {object} dto.BulkImportResult
// @Failure 400 {object} map[string]string "No rows to import"
// @Security BearerAuth
// @Router /viajes/bulk-import [post]
func (h *viajeHandler) bulkImport(c *gin.Context) {
	var req dto.BulkImportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	result, err := h.importService.BulkImport(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// bulkImportCSV godoc
// @Summary Commit a bulk trip import from a CSV file
// @Description Accepts the office spreadsheet export as multipart CSV under "file", parses it, and runs the same import pipeline as the JSON endpoint. The "replace" form field controls conflict handling.
// @Tags viajes
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "CSV export"
// @Param replace formData boolean false "Overwrite conflicting trips"
// @Success 200 {object} dto.BulkImportResult
// @Failure 400 {object} map[string]string "Missing file or malformed row"
// @Security BearerAuth
// @Router /viajes/bulk-import/csv [post]
func (h *viajeHandler) bulkImportCSV(c *gin.Context) {
	file, _, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "a CSV file is required in the \"file\" field"})
		return
	}
	defer file.Close()

	rows, err := h.importService.ParseCSV(file)
	if err != nil {
		respondError(c, err)
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	result, err := h.importService.BulkImport(c.Request.Context(), dto.BulkImportRequest{
		Viajes:  rows,
		Replace: c.PostForm("replace") == "true",
	}, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// checkConflicts godoc
// @Summary Probe trip IDs for conflicts
// @Description Reports which of the given IDs already exist, so the client can offer replace or skip before committing an import.
// @Tags viajes
// @Accept json
// @Produce json
// @Param ids body dto.CheckConflictsRequest true "Trip IDs to probe"
// @Success 200 {object} dto.CheckConflictsResponse
// @Security BearerAuth
// @Router /check-conflicts [post]
func (h *viajeHandler) checkConflicts(c *gin.Context) {
	var req dto.CheckConflictsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	conflicts, err := h.importService.CheckConflicts(c.Request.Context(), req.IDs)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.CheckConflictsResponse{Conflicts: conflicts})
}
