package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/college-order-service/internal/domain/dto"
	"github.com/guttosm/college-order-service/internal/domain/model"
	"github.com/guttosm/college-order-service/internal/i18n"
	"github.com/guttosm/college-order-service/internal/middleware"
	"github.com/guttosm/college-order-service/internal/service"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PackSizesHandler provides HTTP handlers for the admin pack size rules.
type PackSizesHandler struct {
	packSizesService service.PackSizesService
}

// NewPackSizesHandler creates a new PackSizesHandler instance.
func NewPackSizesHandler(packSizesService service.PackSizesService) *PackSizesHandler {
	return &PackSizesHandler{
		packSizesService: packSizesService,
	}
}

// GetActivePackSizes handles GET /api/v1/admin/pack-sizes/active requests.
//
// @Summary      Get active pack size rules
// @Description  Returns the active rule set. Version 0 means no rule set is stored and the built-in rules apply.
// @Tags         Pack Sizes
// @Produce      json
// @Success      200 {object} dto.SuccessResponse{data=model.PackSizeRuleSet} "Active rules"
// @Failure      401 {object} dto.ErrorResponse "Missing or invalid token"
// @Failure      500 {object} dto.ErrorResponse "Internal server error"
// @Security     BearerAuth
// @Router       /api/v1/admin/pack-sizes/active [get]
func (h *PackSizesHandler) GetActivePackSizes(c *gin.Context) {
	set, err := h.packSizesService.GetActive(c.Request.Context())
	if err != nil && !errors.Is(err, service.ErrRepositoryNotConfigured) {
		respondError(c, err)
		return
	}
	if set == nil {
		set = &model.PackSizeRuleSet{Rules: service.DefaultPackSizeRules(), Active: true}
	}
	NewResponseBuilder(c).SuccessOK(set)
}

// CreatePackSizes handles POST /api/v1/admin/pack-sizes requests.
//
// @Summary      Store pack size rules
// @Description  Stores a new rule set version and makes it active. Every pack size must be at least one.
// @Tags         Pack Sizes
// @Accept       json
// @Produce      json
// @Param        request body dto.PackSizeRulesRequest true "Pack size rules"
// @Success      201 {object} dto.SuccessResponse{data=model.PackSizeRuleSet} "Stored rules"
// @Failure      400 {object} dto.ErrorResponse "Invalid rules"
// @Failure      401 {object} dto.ErrorResponse "Missing or invalid token"
// @Failure      503 {object} dto.ErrorResponse "Rule storage disabled"
// @Security     BearerAuth
// @Router       /api/v1/admin/pack-sizes [post]
func (h *PackSizesHandler) CreatePackSizes(c *gin.Context) {
	var req dto.PackSizeRulesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		NewResponseBuilder(c).Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequestBody, err)
		return
	}

	set, err := h.packSizesService.Create(c.Request.Context(), req.Rules, middleware.GetAdminSubject(c))
	if err != nil {
		respondError(c, err)
		return
	}

	if ls := loggingService(c); ls != nil {
		middleware.AuditLog(ls, c, "pack_sizes_created", "Pack size rules stored", map[string]interface{}{
			"version": set.Version,
		})
	}
	NewResponseBuilder(c).SuccessCreated(set)
}

// UpdatePackSizes handles PUT /api/v1/admin/pack-sizes/:id requests.
//
// @Summary      Update pack size rules
// @Description  Replaces the rules of a stored rule set.
// @Tags         Pack Sizes
// @Accept       json
// @Produce      json
// @Param        id path string true "Rule set id"
// @Param        request body dto.PackSizeRulesRequest true "Pack size rules"
// @Success      200 {object} dto.SuccessResponse{data=model.PackSizeRuleSet} "Updated rules"
// @Failure      400 {object} dto.ErrorResponse "Invalid id or rules"
// @Failure      401 {object} dto.ErrorResponse "Missing or invalid token"
// @Failure      404 {object} dto.ErrorResponse "Unknown rule set"
// @Security     BearerAuth
// @Router       /api/v1/admin/pack-sizes/{id} [put]
func (h *PackSizesHandler) UpdatePackSizes(c *gin.Context) {
	builder := NewResponseBuilder(c)

	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		builder.Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequest, err)
		return
	}
	var req dto.PackSizeRulesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		builder.Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequestBody, err)
		return
	}

	set, err := h.packSizesService.Update(c.Request.Context(), id, req.Rules, middleware.GetAdminSubject(c))
	if err != nil {
		respondError(c, err)
		return
	}

	if ls := loggingService(c); ls != nil {
		middleware.AuditLog(ls, c, "pack_sizes_updated", "Pack size rules updated", map[string]interface{}{
			"rule_set": id.Hex(),
			"version":  set.Version,
		})
	}
	builder.SuccessOK(set)
}

// ListPackSizes handles GET /api/v1/admin/pack-sizes requests.
//
// @Summary      List pack size rule sets
// @Description  Returns stored rule sets, newest version first.
// @Tags         Pack Sizes
// @Produce      json
// @Param        limit query int false "Limit number of results"
// @Success      200 {object} dto.SuccessResponse{data=[]model.PackSizeRuleSet} "Rule set history"
// @Failure      401 {object} dto.ErrorResponse "Missing or invalid token"
// @Failure      500 {object} dto.ErrorResponse "Internal server error"
// @Security     BearerAuth
// @Router       /api/v1/admin/pack-sizes [get]
func (h *PackSizesHandler) ListPackSizes(c *gin.Context) {
	sets, err := h.packSizesService.List(c.Request.Context(), queryInt(c, "limit"))
	if err != nil {
		respondError(c, err)
		return
	}
	NewResponseBuilder(c).SuccessOK(sets)
}

// queryInt reads a positive integer query parameter, or 0.
func queryInt(c *gin.Context, name string) int {
	n, err := strconv.Atoi(c.Query(name))
	if err != nil || n < 0 {
		return 0
	}
	return n
}
