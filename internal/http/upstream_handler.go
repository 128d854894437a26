package http

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/college-order-service/internal/collegeapi"
	"github.com/guttosm/college-order-service/internal/i18n"
)

// imageCacheControl lets browsers and CDNs keep proxied images for a day.
const imageCacheControl = "public, max-age=86400"

// Upstream is the college API as used by the proxy routes.
type Upstream interface {
	Colleges(ctx context.Context) ([]collegeapi.CollegeData, error)
	College(ctx context.Context, id string) (*collegeapi.CollegeData, error)
	OrderItems(ctx context.Context, templateID string) ([]collegeapi.OrderItem, error)
	Image(ctx context.Context, rawURL string) (*collegeapi.Image, error)
}

// UpstreamHandler proxies the upstream college API and product images.
type UpstreamHandler struct {
	client Upstream
}

// NewUpstreamHandler creates a new UpstreamHandler.
func NewUpstreamHandler(client Upstream) *UpstreamHandler {
	return &UpstreamHandler{client: client}
}

// ListColleges handles GET /api/v1/upstream/colleges requests.
//
// @Summary      List upstream colleges
// @Tags         Upstream
// @Produce      json
// @Param        X-API-Key header string false "API key (required if configured)"
// @Success      200 {object} dto.SuccessResponse{data=[]collegeapi.CollegeData} "Colleges"
// @Failure      502 {object} dto.ErrorResponse "Upstream failure; details carry the upstream error"
// @Failure      503 {object} dto.ErrorResponse "Upstream not configured"
// @Router       /api/v1/upstream/colleges [get]
func (h *UpstreamHandler) ListColleges(c *gin.Context) {
	colleges, err := h.client.Colleges(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	NewResponseBuilder(c).SuccessOK(colleges)
}

// GetCollege handles GET /api/v1/upstream/colleges/:id requests.
//
// @Summary      Get upstream college
// @Tags         Upstream
// @Produce      json
// @Param        id path string true "Upstream school id"
// @Param        X-API-Key header string false "API key (required if configured)"
// @Success      200 {object} dto.SuccessResponse{data=collegeapi.CollegeData} "College"
// @Failure      404 {object} dto.ErrorResponse "Unknown college"
// @Failure      502 {object} dto.ErrorResponse "Upstream failure"
// @Router       /api/v1/upstream/colleges/{id} [get]
func (h *UpstreamHandler) GetCollege(c *gin.Context) {
	college, err := h.client.College(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	NewResponseBuilder(c).SuccessOK(college)
}

// ListOrderItems handles GET /api/v1/upstream/orders/:templateID requests.
//
// @Summary      List order template items
// @Description  Returns the product rows of an upstream order template. Image URLs point at the image proxy.
// @Tags         Upstream
// @Produce      json
// @Param        templateID path string true "Order number template"
// @Param        X-API-Key header string false "API key (required if configured)"
// @Success      200 {object} dto.SuccessResponse{data=[]collegeapi.OrderItem} "Order items"
// @Failure      502 {object} dto.ErrorResponse "Upstream failure"
// @Router       /api/v1/upstream/orders/{templateID} [get]
func (h *UpstreamHandler) ListOrderItems(c *gin.Context) {
	items, err := h.client.OrderItems(c.Request.Context(), c.Param("templateID"))
	if err != nil {
		respondError(c, err)
		return
	}
	NewResponseBuilder(c).SuccessOK(items)
}

// ProxyImage handles GET /api/v1/proxy-image requests.
//
// @Summary      Proxy a product image
// @Description  Fetches an upstream product image and returns it with its content type and a one day cache lifetime.
// @Tags         Upstream
// @Produce      image/png
// @Param        url query string true "Image URL"
// @Success      200 {file} binary "Image"
// @Failure      400 {object} dto.ErrorResponse "Missing or invalid URL"
// @Failure      502 {object} dto.ErrorResponse "Image could not be fetched"
// @Router       /api/v1/proxy-image [get]
func (h *UpstreamHandler) ProxyImage(c *gin.Context) {
	rawURL := c.Query("url")
	if rawURL == "" {
		NewResponseBuilder(c).Error(http.StatusBadRequest, i18n.ErrKeyInvalidImageURL, nil)
		return
	}

	img, err := h.client.Image(c.Request.Context(), rawURL)
	if err != nil {
		respondError(c, err)
		return
	}

	c.Header("Cache-Control", imageCacheControl)
	c.Data(http.StatusOK, img.ContentType, img.Data)
}
