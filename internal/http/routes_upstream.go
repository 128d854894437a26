package http

import (
	"github.com/gin-gonic/gin"
	"github.com/guttosm/college-order-service/internal/middleware"
)

// UpstreamRoutes registers the college API proxy routes. They require an
// API key when keys are configured.
type UpstreamRoutes struct {
	handler *UpstreamHandler
}

// NewUpstreamRoutes creates a new UpstreamRoutes instance.
func NewUpstreamRoutes(handler *UpstreamHandler) *UpstreamRoutes {
	return &UpstreamRoutes{handler: handler}
}

// RegisterRoutes registers the upstream and image proxy routes.
func (r *UpstreamRoutes) RegisterRoutes(rg *gin.RouterGroup, cfg *RouterConfig) {
	if r.handler == nil {
		return
	}

	upstream := rg.Group("/upstream")
	if len(cfg.APIKeys) > 0 {
		upstream.Use(middleware.APIKeyAuth(cfg.APIKeys))
	}
	upstream.GET("/colleges", r.handler.ListColleges)
	upstream.GET("/colleges/:id", r.handler.GetCollege)
	upstream.GET("/orders/:templateID", r.handler.ListOrderItems)

	// Images are loaded by <img> tags, which cannot send an API key header.
	rg.GET("/proxy-image", r.handler.ProxyImage)
}
