package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/furiksayram-commits/debt-tracker/internal/apperrors"
	"github.com/furiksayram-commits/debt-tracker/internal/core/ports"
	"github.com/furiksayram-commits/debt-tracker/internal/dto"
	"github.com/furiksayram-commits/debt-tracker/internal/middleware"
	"github.com/gin-gonic/gin"
)

// debtorHandler handles HTTP requests related to the debt ledger.
type debtorHandler struct {
	debtorService ports.DebtorSvcFacade
}

// newDebtorHandler creates a new debtorHandler.
func newDebtorHandler(ds ports.DebtorSvcFacade) *debtorHandler {
	return &debtorHandler{
		debtorService: ds,
	}
}

// registerDebtRoutes registers routes related to the debt ledger.
func registerDebtRoutes(rg *gin.RouterGroup, debtorService ports.DebtorSvcFacade) {
	h := newDebtorHandler(debtorService)

	debts := rg.Group("/debts")
	{
		debts.GET("", h.listDebts)
		debts.POST("", h.addDebt)
		debts.GET("/search", h.searchDebts)
		debts.POST("/:id/add-debt", h.addDebtTo)
		debts.POST("/:id/pay", h.recordPayment)
		debts.DELETE("/:id", h.deleteDebtor)
	}
}

// listDebts godoc
// @Summary List all debtors
// @Description Reloads the ledger from storage and returns every debtor with full history
// @Tags debts
// @Produce json
// @Success 200 {array} dto.DebtorResponse
// @Failure 502 {object} map[string]string "Storage unreachable"
// @Router /debts [get]
func (h *debtorHandler) listDebts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	debtors, err := h.debtorService.ListAll(c.Request.Context())
	if err != nil {
		logger.Error("Failed to list debtors from service", slog.String("error", err.Error()))
		h.respondError(c, err, "Failed to load debtors")
		return
	}

	c.JSON(http.StatusOK, dto.ToListDebtorResponse(debtors))
}

// addDebt godoc
// @Summary Record a debt by debtor name
// @Description Appends a debt record to the debtor with a matching name (case-insensitive, trimmed) or creates a new debtor
// @Tags debts
// @Accept json
// @Produce json
// @Param debt body dto.AddDebtRequest true "Debt details"
// @Success 200 {object} dto.DebtorResponse
// @Failure 400 {object} map[string]string "Missing name or amount"
// @Failure 502 {object} map[string]string "Storage failure"
// @Router /debts [post]
func (h *debtorHandler) addDebt(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.AddDebtRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for AddDebt", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Name and amount are required"})
		return
	}

	logger.Info("Received request to add debt", slog.String("debtor_name", req.Name))

	debtor, err := h.debtorService.AddDebt(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error adding debt", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": "Name and amount are required"})
			return
		}
		logger.Error("Failed to add debt in service", slog.String("error", err.Error()))
		h.respondError(c, err, "Failed to add debt")
		return
	}

	logger.Info("Debt recorded", slog.String("debtor_id", debtor.DebtorID))
	c.JSON(http.StatusOK, dto.ToDebtorResponse(debtor))
}

// addDebtTo godoc
// @Summary Add a debt record to an existing debtor
// @Description Appends a debt record to the debtor with the given id
// @Tags debts
// @Accept json
// @Produce json
// @Param id path string true "Debtor ID"
// @Param record body dto.AddRecordRequest true "Debt record details"
// @Success 200 {object} dto.DebtorResponse
// @Failure 400 {object} map[string]string "Invalid amount"
// @Failure 404 {object} map[string]string "Debtor not found"
// @Failure 502 {object} map[string]string "Storage failure"
// @Router /debts/{id}/add-debt [post]
func (h *debtorHandler) addDebtTo(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	debtorID := c.Param("id")

	var req dto.AddRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for AddDebtTo", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Enter a valid amount"})
		return
	}

	logger = logger.With(slog.String("debtor_id", debtorID))
	logger.Info("Received request to add debt to debtor")

	debtor, err := h.debtorService.AddDebtTo(c.Request.Context(), debtorID, req)
	if err != nil {
		h.respondRecordError(c, logger, err, "Failed to add debt")
		return
	}

	logger.Info("Debt recorded")
	c.JSON(http.StatusOK, dto.ToDebtorResponse(debtor))
}

// recordPayment godoc
// @Summary Record a payment
// @Description Appends a payment record to the debtor with the given id; overpayment is allowed
// @Tags debts
// @Accept json
// @Produce json
// @Param id path string true "Debtor ID"
// @Param record body dto.AddRecordRequest true "Payment details"
// @Success 200 {object} dto.DebtorResponse
// @Failure 400 {object} map[string]string "Invalid amount"
// @Failure 404 {object} map[string]string "Debtor not found"
// @Failure 502 {object} map[string]string "Storage failure"
// @Router /debts/{id}/pay [post]
func (h *debtorHandler) recordPayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	debtorID := c.Param("id")

	var req dto.AddRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for RecordPayment", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Enter a valid amount"})
		return
	}

	logger = logger.With(slog.String("debtor_id", debtorID))
	logger.Info("Received request to record payment")

	debtor, err := h.debtorService.RecordPayment(c.Request.Context(), debtorID, req)
	if err != nil {
		h.respondRecordError(c, logger, err, "Failed to record payment")
		return
	}

	logger.Info("Payment recorded")
	c.JSON(http.StatusOK, dto.ToDebtorResponse(debtor))
}

// searchDebts godoc
// @Summary Search debtors by name
// @Description Returns debtors whose name contains the query case-insensitively; an empty query returns everyone
// @Tags debts
// @Produce json
// @Param q query string false "Name substring"
// @Success 200 {array} dto.DebtorResponse
// @Failure 502 {object} map[string]string "Storage unreachable"
// @Router /debts/search [get]
func (h *debtorHandler) searchDebts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.SearchDebtorsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query params for SearchDebts", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	debtors, err := h.debtorService.Search(c.Request.Context(), params.Query)
	if err != nil {
		logger.Error("Failed to search debtors from service", slog.String("error", err.Error()))
		h.respondError(c, err, "Failed to search debtors")
		return
	}

	c.JSON(http.StatusOK, dto.ToListDebtorResponse(debtors))
}

// deleteDebtor godoc
// @Summary Delete a debtor
// @Description Removes a debtor and its entire record history as one unit
// @Tags debts
// @Produce json
// @Param id path string true "Debtor ID"
// @Success 200 {object} dto.DeleteDebtorResponse
// @Failure 404 {object} map[string]string "Debtor not found"
// @Failure 502 {object} map[string]string "Storage failure"
// @Router /debts/{id} [delete]
func (h *debtorHandler) deleteDebtor(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	debtorID := c.Param("id")

	logger = logger.With(slog.String("debtor_id", debtorID))
	logger.Info("Received request to delete debtor")

	deletedName, err := h.debtorService.DeleteDebtor(c.Request.Context(), debtorID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Debtor not found for deletion")
			c.JSON(http.StatusNotFound, gin.H{"error": "Debtor not found"})
			return
		}
		logger.Error("Failed to delete debtor in service", slog.String("error", err.Error()))
		h.respondError(c, err, "Failed to delete debtor")
		return
	}

	logger.Info("Debtor deleted", slog.String("deleted_name", deletedName))
	c.JSON(http.StatusOK, dto.DeleteDebtorResponse{Success: true, DeletedDebtor: deletedName})
}

// respondRecordError maps record-append failures shared by the add-debt and
// pay routes.
func (h *debtorHandler) respondRecordError(c *gin.Context, logger *slog.Logger, err error, fallback string) {
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		logger.Warn("Validation error appending record", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Enter a valid amount"})
	case errors.Is(err, apperrors.ErrNotFound):
		logger.Warn("Debtor not found")
		c.JSON(http.StatusNotFound, gin.H{"error": "Debtor not found"})
	default:
		logger.Error("Failed to append record in service", slog.String("error", err.Error()))
		h.respondError(c, err, fallback)
	}
}

// respondError maps storage failures to 502 and everything else to 500.
// A failed save surfaces as-is: the mutation was applied only in memory and
// the caller must not treat it as durably recorded.
func (h *debtorHandler) respondError(c *gin.Context, err error, fallback string) {
	if errors.Is(err, apperrors.ErrStorage) {
		c.JSON(http.StatusBadGateway, gin.H{"error": fallback + ": storage unavailable"})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
}
