package http

import (
	"github.com/gin-gonic/gin"
	"github.com/guttosm/college-order-service/internal/middleware"
	"github.com/guttosm/college-order-service/internal/service"
)

// AdminRoutes handles the login route and the JWT protected admin routes.
type AdminRoutes struct {
	authService service.AuthService
	handlers    Handlers
}

// NewAdminRoutes creates a new AdminRoutes instance.
func NewAdminRoutes(authService service.AuthService, handlers Handlers) *AdminRoutes {
	if handlers.Auth == nil {
		handlers.Auth = NewAuthHandler(authService)
	}
	return &AdminRoutes{
		authService: authService,
		handlers:    handlers,
	}
}

// RegisterRoutes registers /admin/login and the protected admin routes.
func (r *AdminRoutes) RegisterRoutes(rg *gin.RouterGroup, cfg *RouterConfig) {
	admin := rg.Group("/admin")
	admin.POST("/login", r.handlers.Auth.Login)

	protected := r.GetProtectedGroup(admin, cfg)

	if h := r.handlers.Orders; h != nil {
		protected.GET("/orders", h.ListOrders)
		protected.GET("/orders/stats", h.OrderStats)
		protected.PATCH("/orders/:id/status", h.UpdateOrderStatus)
		protected.DELETE("/orders/:id", h.DeleteOrder)
	}
	if h := r.handlers.PackSizes; h != nil {
		protected.GET("/pack-sizes", h.ListPackSizes)
		protected.GET("/pack-sizes/active", h.GetActivePackSizes)
		protected.POST("/pack-sizes", h.CreatePackSizes)
		protected.PUT("/pack-sizes/:id", h.UpdatePackSizes)
	}
	if h := r.handlers.Logs; h != nil {
		protected.GET("/logs", h.QueryLogs)
	}
}

// GetProtectedGroup returns a router group with JWT auth middleware applied
// and per-admin rate limiting when configured.
func (r *AdminRoutes) GetProtectedGroup(rg *gin.RouterGroup, cfg *RouterConfig) *gin.RouterGroup {
	protected := rg.Group("")
	protected.Use(middleware.JWTAuth(r.authService))

	if cfg.RateLimit > 0 {
		userLimiter := middleware.NewRateLimiter(cfg.RateLimit, cfg.RateWindow)
		protected.Use(userLimiter.UserRateLimit())
	}

	return protected
}
