package handlers

import (
	"log/slog"
	"net/http"

	"github.com/furiksayram-commits/debt-tracker/internal/core/ports"
	"github.com/furiksayram-commits/debt-tracker/internal/middleware"
	"github.com/gin-gonic/gin"
)

// healthHandler reports whether the backing ledger store is reachable.
type healthHandler struct {
	store     ports.DebtorStore
	storeName string
}

// health godoc
// @Summary Health check
// @Description Verifies that the backing ledger store answers a read
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 503 {object} map[string]string "Store unreachable"
// @Router /health [get]
func (h *healthHandler) health(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	if _, err := h.store.Load(c.Request.Context()); err != nil {
		logger.Error("Health check failed", slog.String("error", err.Error()))
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":  "ERROR",
			"message": "Ledger store connection failed",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "OK",
		"message": "Ledger store connection working",
		"store":   h.storeName,
	})
}
