package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/college-order-service/internal/domain/dto"
	"github.com/guttosm/college-order-service/internal/domain/model"
	"github.com/guttosm/college-order-service/internal/i18n"
	"github.com/guttosm/college-order-service/internal/service"
)

// Catalog is the read side of the tenant catalog.
type Catalog interface {
	Colleges() []model.College
	College(id string) (model.College, bool)
}

// Handler provides HTTP handlers for the storefront catalog and the pack
// size policy.
type Handler struct {
	catalog   Catalog
	packSizes service.PackSizesService
}

// NewHandler creates a new Handler instance.
func NewHandler(catalog Catalog, packSizes service.PackSizesService) *Handler {
	return &Handler{
		catalog:   catalog,
		packSizes: packSizes,
	}
}

// ListColleges handles GET /api/v1/colleges requests.
//
// @Summary      List colleges
// @Description  Lists every college storefront with its branding.
// @Tags         Catalog
// @Produce      json
// @Success      200 {object} dto.SuccessResponse{data=[]dto.CollegeSummary} "Colleges"
// @Router       /api/v1/colleges [get]
func (h *Handler) ListColleges(c *gin.Context) {
	colleges := h.catalog.Colleges()
	out := make([]dto.CollegeSummary, 0, len(colleges))
	for _, college := range colleges {
		out = append(out, dto.NewCollegeSummary(college))
	}
	NewResponseBuilder(c).SuccessOK(out)
}

// GetCollege handles GET /api/v1/colleges/:college requests.
//
// @Summary      Get college catalog
// @Description  Returns the catalog and theme of one college storefront.
// @Tags         Catalog
// @Produce      json
// @Param        college path string true "College id"
// @Success      200 {object} dto.SuccessResponse{data=model.College} "College catalog"
// @Failure      404 {object} dto.ErrorResponse "Unknown college"
// @Router       /api/v1/colleges/{college} [get]
func (h *Handler) GetCollege(c *gin.Context) {
	college, ok := h.catalog.College(c.Param("college"))
	if !ok {
		NewResponseBuilder(c).Error(http.StatusNotFound, i18n.ErrKeyCollegeNotFound, nil)
		return
	}
	NewResponseBuilder(c).SuccessOK(college)
}

// GetProduct handles GET /api/v1/colleges/:college/products requests.
//
// @Summary      Get product detail
// @Description  Returns a catalog product with the pack size it must be ordered in, whether any quantity is allowed and the suggested quantities.
// @Tags         Catalog
// @Produce      json
// @Param        college path string true "College id"
// @Param        path query string true "Product image path, category/image"
// @Success      200 {object} dto.SuccessResponse{data=dto.ProductResponse} "Product"
// @Failure      400 {object} dto.ErrorResponse "Missing path"
// @Failure      404 {object} dto.ErrorResponse "Unknown college or product"
// @Router       /api/v1/colleges/{college}/products [get]
func (h *Handler) GetProduct(c *gin.Context) {
	builder := NewResponseBuilder(c)

	college, ok := h.catalog.College(c.Param("college"))
	if !ok {
		builder.Error(http.StatusNotFound, i18n.ErrKeyCollegeNotFound, nil)
		return
	}
	path := c.Query("path")
	if path == "" {
		builder.Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequest, nil)
		return
	}
	product, ok := college.Product(path)
	if !ok {
		builder.Error(http.StatusNotFound, i18n.ErrKeyProductNotFound, nil)
		return
	}

	policy := h.packSizes.Policy(c.Request.Context())
	packSize := policy.PackSize(product.CategoryPath, "", product.Name)
	resp := dto.ProductResponse{
		Product:           product,
		PackSize:          packSize,
		AllowsAnyQuantity: policy.AllowsAnyQuantity(product.CategoryPath, "", product.Name),
		PackMessage:       service.PackSizeMessage(packSize),
		QuantityMultiples: service.QuantityMultiples(product.Image, product.CategoryPath),
	}
	if len(product.Versions) > 0 {
		resp.VersionPackSizes = make(map[model.Version]int, len(product.Versions))
		for _, v := range product.Versions {
			resp.VersionPackSizes[v] = policy.PackSize(product.CategoryPath, v, product.Name)
		}
	}
	builder.SuccessOK(resp)
}

// ResolvePackSize handles GET /api/v1/pack-sizes/resolve requests.
//
// @Summary      Resolve pack size
// @Description  Returns the multiple a product must be ordered in under the active pack size rules.
// @Tags         Pack Sizes
// @Produce      json
// @Param        category_path query string true "Category path" example(tshirt/men)
// @Param        version query string false "Shirt version" example(hoodie)
// @Param        product_name query string false "Product name"
// @Success      200 {object} dto.SuccessResponse{data=dto.PackSizeResolution} "Resolved pack size"
// @Failure      400 {object} dto.ErrorResponse "Missing category path or unknown version"
// @Router       /api/v1/pack-sizes/resolve [get]
func (h *Handler) ResolvePackSize(c *gin.Context) {
	builder := NewResponseBuilder(c)

	categoryPath := c.Query("category_path")
	version := model.Version(c.Query("version"))
	if categoryPath == "" || (version != "" && !version.Valid()) {
		builder.Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequest, nil)
		return
	}
	productName := c.Query("product_name")

	policy := h.packSizes.Policy(c.Request.Context())
	packSize := policy.PackSize(categoryPath, version, productName)
	builder.SuccessOK(dto.PackSizeResolution{
		CategoryPath:      categoryPath,
		Version:           version,
		PackSize:          packSize,
		AllowsAnyQuantity: policy.AllowsAnyQuantity(categoryPath, version, productName),
		Message:           service.PackSizeMessage(packSize),
	})
}

// EvenSplit handles POST /api/v1/pack-sizes/even-split requests.
//
// @Summary      Even split
// @Description  Spreads one case pack of the product across sizes and adds it to the existing breakdown. The remainder goes one unit at a time to the earliest sizes.
// @Tags         Pack Sizes
// @Accept       json
// @Produce      json
// @Param        request body dto.EvenSplitRequest true "Split request"
// @Success      200 {object} dto.SuccessResponse{data=dto.EvenSplitResponse} "New breakdown"
// @Failure      400 {object} dto.ErrorResponse "Bad request"
// @Router       /api/v1/pack-sizes/even-split [post]
func (h *Handler) EvenSplit(c *gin.Context) {
	builder := NewResponseBuilder(c)

	req, err := BuildRequestAndValidate[dto.EvenSplitRequest](c)
	if err != nil {
		builder.ErrorWithMessage(http.StatusBadRequest, err.Error(), err)
		return
	}

	packSize := h.packSizes.Policy(c.Request.Context()).PackSize(req.CategoryPath, req.Version, req.ProductName)
	sizes := req.Sizes
	if len(sizes) == 0 && req.CategoryPath == "infant" {
		sizes = model.InfantSizes
	}
	counts := service.EvenSplit(packSize, sizes, req.Existing)
	totals := service.CalcTotals(counts, packSize)

	builder.SuccessOK(dto.EvenSplitResponse{
		PackSize:  packSize,
		Counts:    counts,
		Total:     totals.Total,
		Packs:     totals.Packs,
		Remainder: totals.Remainder,
		IsValid:   totals.IsValid,
	})
}
