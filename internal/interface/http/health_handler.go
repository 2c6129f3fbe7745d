package handlers

import (
	"context"
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-bookmarks-api/pkg/response"
)

// HealthCheck reports whether a dependency is reachable.
type HealthCheck func(ctx context.Context) error

type HealthHandler struct {
	Checks map[string]HealthCheck
	Logger *logrus.Logger
}

func NewHealthHandler(checks map[string]HealthCheck, logger *logrus.Logger) *HealthHandler {
	return &HealthHandler{Checks: checks, Logger: logger}
}

func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	names := make([]string, 0, len(h.Checks))
	for name := range h.Checks {
		names = append(names, name)
	}
	sort.Strings(names)

	status := http.StatusOK
	report := make(map[string]string, len(names))
	for _, name := range names {
		if err := h.Checks[name](ctx); err != nil {
			status = http.StatusServiceUnavailable
			report[name] = "unavailable"
			if h.Logger != nil {
				h.Logger.WithError(err).WithField("dependency", name).Warn("health check failed")
			}
			continue
		}
		report[name] = "ok"
	}

	if status != http.StatusOK {
		c.JSON(status, response.APIResponse[map[string]string]{
			Status:    status,
			Timestamp: time.Now().UTC(),
			RequestID: c.GetString(response.RequestIDKey),
			Message:   "unhealthy",
			Data:      report,
		})
		return
	}
	response.Success(c, status, report, "healthy", nil)
}
