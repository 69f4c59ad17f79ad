package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rodmarapp/rodmar_backend/internal/core/domain"
	portssvc "github.com/rodmarapp/rodmar_backend/internal/core/ports/services"
	"github.com/rodmarapp/rodmar_backend/internal/dto"
)

// partnerHandler serves one partner type's CRUD surface. The same handler is
// mounted once per type under its Spanish route name.
type partnerHandler struct {
	tipo           domain.PartnerType
	partnerService portssvc.PartnerSvcFacade
}

// partnerRoutes maps route segments to the partner type they serve.
var partnerRoutes = map[string]domain.PartnerType{
	"minas":       domain.PartnerMina,
	"compradores": domain.PartnerComprador,
	"volqueteros": domain.PartnerVolquetero,
	"terceros":    domain.PartnerTercero,
}

// registerPartnerRoutes mounts the per-type partner groups.
func registerPartnerRoutes(rg *gin.RouterGroup, partnerService portssvc.PartnerSvcFacade) {
	for segment, tipo := range partnerRoutes {
		h := &partnerHandler{tipo: tipo, partnerService: partnerService}
		group := rg.Group("/" + segment)
		{
			group.GET("", h.listPartners)
			group.POST("", h.createPartner)
			group.GET("/:id", h.getPartner)
			group.PATCH("/:id", h.updatePartner)
			group.DELETE("/:id", h.deactivatePartner)
		}
	}
}

// listPartners godoc
// @Summary List partners of one type
// @Description Returns all active partners of the type implied by the route, name-ordered
// @Tags partners
// @Produce json
// @Success 200 {object} dto.ListPartnersResponse
// @Security BearerAuth
// @Router /minas [get]
func (h *partnerHandler) listPartners(c *gin.Context) {
	partners, err := h.partnerService.ListPartners(c.Request.Context(), h.tipo)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ListPartnersResponse{Partners: dto.ToPartnerResponses(partners)})
}

// createPartner godoc
// @Summary Create a partner
// @Tags partners
// @Accept json
// @Produce json
// @Param partner body dto.CreatePartnerRequest true "Partner details"
// @Success 201 {object} dto.PartnerResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Security BearerAuth
// @Router /minas [post]
func (h *partnerHandler) createPartner(c *gin.Context) {
	var req dto.CreatePartnerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	partner, err := h.partnerService.CreatePartner(c.Request.Context(), h.tipo, req, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToPartnerResponse(partner))
}

// getPartner godoc
// @Summary Get a partner by ID
// @Tags partners
// @Produce json
// @Param id path string true "Partner ID"
// @Success 200 {object} dto.PartnerResponse
// @Failure 404 {object} map[string]string "Partner not found"
// @Security BearerAuth
// @Router /minas/{id} [get]
func (h *partnerHandler) getPartner(c *gin.Context) {
	partner, err := h.partnerService.GetPartnerByID(c.Request.Context(), h.tipo, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToPartnerResponse(partner))
}

// updatePartner godoc
// @Summary Update a partner
// @Tags partners
// @Accept json
// @Produce json
// @Param id path string true "Partner ID"
// @Param partner body dto.UpdatePartnerRequest true "Fields to update"
// @Success 200 {object} dto.PartnerResponse
// @Security BearerAuth
// @Router /minas/{id} [patch]
func (h *partnerHandler) updatePartner(c *gin.Context) {
	var req dto.UpdatePartnerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	partner, err := h.partnerService.UpdatePartner(c.Request.Context(), h.tipo, c.Param("id"), req, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToPartnerResponse(partner))
}

// deactivatePartner godoc
// @Summary Deactivate a partner
// @Description Marks the partner inactive; history is kept
// @Tags partners
// @Param id path string true "Partner ID"
// @Success 204 "Deactivated"
// @Security BearerAuth
// @Router /minas/{id} [delete]
func (h *partnerHandler) deactivatePartner(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	if err := h.partnerService.DeactivatePartner(c.Request.Context(), h.tipo, c.Param("id"), userID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
