package analytics

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
)

// Handler exposes the collect endpoint and the admin summary API.
type Handler struct {
	store   *Store
	limiter *rateLimiter
}

// NewHandler creates a Handler backed by the given store.
func NewHandler(store *Store) *Handler {
	return &Handler{
		store:   store,
		limiter: newRateLimiter(60, time.Minute),
	}
}

// RegisterRoutes mounts the public collect endpoint on public and the
// summary API behind authMiddleware.
func (h *Handler) RegisterRoutes(e *echo.Echo, public *echo.Group, authMiddleware echo.MiddlewareFunc) {
	public.POST("/api/analytics/visit", h.handleVisit)
	e.GET("/admin/analytics/api/summary/", h.handleSummary, authMiddleware)
}

type visitRequest struct {
	Path     string `json:"path"`
	Referrer string `json:"referrer"`
}

func (h *Handler) handleVisit(c echo.Context) error {
	ip := c.RealIP()
	if !h.limiter.Allow(ip) {
		return c.NoContent(http.StatusTooManyRequests)
	}

	var req visitRequest
	if err := c.Bind(&req); err != nil {
		return c.NoContent(http.StatusBadRequest)
	}
	path := strings.TrimSpace(req.Path)
	if path == "" || !strings.HasPrefix(path, "/") || len(path) > 512 {
		return c.NoContent(http.StatusBadRequest)
	}

	v := Visit{
		IPHash:    HashIP(ip),
		Path:      path,
		Referrer:  strings.TrimSpace(req.Referrer),
		Bot:       IsBot(c.Request().UserAgent()),
		Timestamp: time.Now(),
	}
	if err := h.store.RecordVisit(v); err != nil {
		c.Logger().Errorf("record visit: %v", err)
		return c.NoContent(http.StatusInternalServerError)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) handleSummary(c echo.Context) error {
	summary, err := h.store.Summarize(30, 10)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, summary)
}
