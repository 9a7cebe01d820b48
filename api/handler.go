// Package api exposes a read-only observability surface over the
// orchestrator: lifecycle state, cache status, availability, and the recent
// event feed. There is deliberately no authenticate endpoint — the core is
// local-device only.
package api

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/getkayan/biolock/cache"
	"github.com/getkayan/biolock/flow"
)

type Handler struct {
	orch     *flow.Orchestrator
	cache    *cache.Cache
	recorder *Recorder
	version  string
}

func NewHandler(orch *flow.Orchestrator, c *cache.Cache, recorder *Recorder, version string) *Handler {
	return &Handler{orch: orch, cache: c, recorder: recorder, version: version}
}

func (h *Handler) RegisterRoutes(g *echo.Group) {
	g.GET("/healthz", h.HandleHealth)
	g.GET("/state", h.HandleState)
	g.GET("/cache", h.HandleCache)
	g.GET("/availability", h.HandleAvailability)
	g.GET("/events", h.HandleEvents)
}

func (h *Handler) HandleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":    "ok",
		"state":     h.orch.State(),
		"version":   h.version,
		"timestamp": time.Now(),
	})
}

func (h *Handler) HandleState(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"state": h.orch.State(),
	})
}

func (h *Handler) HandleCache(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"valid":            h.cache.IsValid(),
		"remaining_ttl_ms": h.cache.RemainingTTL().Milliseconds(),
	})
}

func (h *Handler) HandleAvailability(c echo.Context) error {
	available := h.orch.IsAvailable(c.Request().Context())
	return c.JSON(http.StatusOK, map[string]interface{}{
		"available": available,
	})
}

func (h *Handler) HandleEvents(c echo.Context) error {
	return c.JSON(http.StatusOK, h.recorder.Recent())
}
