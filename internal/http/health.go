package http

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/college-order-service/internal/circuitbreaker"
	"golang.org/x/sync/errgroup"
)

const readinessTimeout = 3 * time.Second

// HealthChecker defines the interface for health check operations.
type HealthChecker interface {
	Check(ctx context.Context) error
}

// HealthCheckFunc adapts a function to HealthChecker.
type HealthCheckFunc func(ctx context.Context) error

// Check calls f.
func (f HealthCheckFunc) Check(ctx context.Context) error { return f(ctx) }

type breakerEntry struct {
	cb       *circuitbreaker.CircuitBreaker
	critical bool
}

// HealthHandler serves the liveness and readiness probes. Checkers and
// critical breakers (MongoDB) gate readiness; optional breakers (email,
// college API) only mark the service degraded, since browsing and draft
// editing still work without them.
type HealthHandler struct {
	checkers map[string]HealthChecker
	breakers map[string]breakerEntry
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler() *HealthHandler {
	return &HealthHandler{
		checkers: make(map[string]HealthChecker),
		breakers: make(map[string]breakerEntry),
	}
}

// RegisterChecker registers a dependency check for the readiness probe.
func (h *HealthHandler) RegisterChecker(name string, checker HealthChecker) {
	h.checkers[name] = checker
}

// RegisterCircuitBreaker registers a breaker whose open state makes the
// service not ready.
func (h *HealthHandler) RegisterCircuitBreaker(name string, cb *circuitbreaker.CircuitBreaker) {
	h.breakers[name] = breakerEntry{cb: cb, critical: true}
}

// RegisterOptionalCircuitBreaker registers a breaker whose open state only
// degrades the service.
func (h *HealthHandler) RegisterOptionalCircuitBreaker(name string, cb *circuitbreaker.CircuitBreaker) {
	h.breakers[name] = breakerEntry{cb: cb}
}

// Register registers health endpoints on the router.
func (h *HealthHandler) Register(router *gin.Engine) {
	router.GET("/healthz", h.Liveness)
	router.GET("/readyz", h.Readiness)
}

// Liveness handles the liveness probe endpoint.
// @Summary     Liveness probe
// @Description Returns OK if the process is serving requests.
// @Tags        Health
// @Produce     json
// @Success     200 {object} map[string]string "Service is alive"
// @Router      /healthz [get]
func (h *HealthHandler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Readiness handles the readiness probe endpoint.
// @Summary     Readiness probe
// @Description Runs the dependency checks concurrently and reports circuit breaker states. "degraded" means an optional dependency (email, college API) is failing; "unavailable" means MongoDB is.
// @Tags        Health
// @Produce     json
// @Success     200 {object} map[string]interface{} "Service is ready"
// @Failure     503 {object} map[string]interface{} "Service is not ready"
// @Router      /readyz [get]
func (h *HealthHandler) Readiness(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), readinessTimeout)
	defer cancel()

	var mu sync.Mutex
	checks := make(map[string]interface{}, len(h.checkers)+len(h.breakers))
	failed := false

	var g errgroup.Group
	for name, checker := range h.checkers {
		name, checker := name, checker
		g.Go(func() error {
			err := checker.Check(ctx)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				checks[name] = err.Error()
				failed = true
			} else {
				checks[name] = "ok"
			}
			return nil
		})
	}
	_ = g.Wait()

	degraded := false
	for name, b := range h.breakers {
		stats := b.cb.GetStats()
		checks[name+"_circuit"] = stats.State
		if stats.IsHealthy {
			continue
		}
		if b.critical {
			failed = true
		} else {
			degraded = true
		}
	}

	if len(checks) == 0 {
		checks["service"] = "ok"
	}

	status, label := http.StatusOK, "ok"
	switch {
	case failed:
		status, label = http.StatusServiceUnavailable, "unavailable"
	case degraded:
		label = "degraded"
	}
	c.JSON(status, gin.H{"status": label, "checks": checks})
}
