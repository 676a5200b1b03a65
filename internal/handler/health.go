package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
)

// HealthHandler reports service and dependency health
type HealthHandler struct {
	db    Pinger
	cache Pinger
}

// Pinger is anything that can report reachability.
type Pinger interface {
	Ping(ctx context.Context) error
}

// NewHealthHandler creates a new health handler. Nil dependencies are
// reported as disabled rather than unreachable.
func NewHealthHandler(db, cache Pinger) *HealthHandler {
	return &HealthHandler{db: db, cache: cache}
}

// Health handles GET /health requests. The service itself is healthy even
// when a dependency is down, since predictions degrade to baseline pricing.
func (h *HealthHandler) Health(c *gin.Context) {
	resp := gin.H{"status": "ok"}

	resp["database"] = dependencyState(c.Request.Context(), h.db)
	resp["cache"] = dependencyState(c.Request.Context(), h.cache)

	c.JSON(http.StatusOK, resp)
}

func dependencyState(ctx context.Context, p Pinger) string {
	if p == nil {
		return "disabled"
	}
	if err := p.Ping(ctx); err != nil {
		return "unreachable"
	}
	return "ok"
}
