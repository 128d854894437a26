package http

import "github.com/gin-gonic/gin"

// StorefrontRoutes registers the public routes used by the order form:
// catalog, pack sizes, drafts and order receipts.
type StorefrontRoutes struct {
	handlers Handlers
}

// NewStorefrontRoutes creates a new StorefrontRoutes instance.
func NewStorefrontRoutes(handlers Handlers) *StorefrontRoutes {
	return &StorefrontRoutes{handlers: handlers}
}

// RegisterRoutes registers the storefront routes.
func (r *StorefrontRoutes) RegisterRoutes(rg *gin.RouterGroup, cfg *RouterConfig) {
	if h := r.handlers.Storefront; h != nil {
		rg.GET("/colleges", h.ListColleges)
		rg.GET("/colleges/:college", h.GetCollege)
		rg.GET("/colleges/:college/products", h.GetProduct)
		rg.GET("/pack-sizes/resolve", h.ResolvePackSize)
		rg.POST("/pack-sizes/even-split", h.EvenSplit)
	}

	if h := r.handlers.Drafts; h != nil {
		drafts := rg.Group("/colleges/:college/drafts")
		drafts.POST("", h.CreateDraft)
		drafts.GET("/:id", h.GetDraft)
		drafts.PATCH("/:id", h.UpdateDraft)
		drafts.DELETE("/:id", h.DeleteDraft)
		drafts.POST("/:id/validate", h.ValidateDraft)

		action := []gin.HandlerFunc{h.DraftAction}
		if cfg.Idempotency != nil {
			action = append([]gin.HandlerFunc{cfg.Idempotency}, action...)
		}
		drafts.POST("/:id/actions/:action", action...)
	}

	if h := r.handlers.Orders; h != nil {
		rg.GET("/orders/:id", h.GetOrder)
	}
}
