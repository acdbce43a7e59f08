package handlers

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/gastos-app/gastos_backend/internal/core/domain"
	portsrepo "github.com/gastos-app/gastos_backend/internal/core/ports/repositories"
	portssvc "github.com/gastos-app/gastos_backend/internal/core/ports/services"
	"github.com/gastos-app/gastos_backend/internal/dto"
	"github.com/gastos-app/gastos_backend/internal/platform/config"
)

// receiptExtensions is the allow-list for uploaded receipt files.
var receiptExtensions = map[string]struct{}{
	".jpg":  {},
	".jpeg": {},
	".png":  {},
	".webp": {},
	".pdf":  {},
}

// transactionHandler handles HTTP requests related to transactions.
type transactionHandler struct {
	transactionService portssvc.TransactionSvcFacade
	uploadDir          string
	maxUploadSize      int64
}

func newTransactionHandler(ts portssvc.TransactionSvcFacade, cfg *config.Config) *transactionHandler {
	return &transactionHandler{
		transactionService: ts,
		uploadDir:          cfg.UploadDir,
		maxUploadSize:      cfg.MaxUploadSizeBytes,
	}
}

// registerTransactionRoutes registers routes related to transactions.
func registerTransactionRoutes(rg *gin.RouterGroup, transactionService portssvc.TransactionSvcFacade, cfg *config.Config) {
	h := newTransactionHandler(transactionService, cfg)

	transactions := rg.Group("/transactions")
	{
		transactions.POST("", h.createTransaction)
		transactions.GET("", h.listTransactions)
		transactions.GET("/summary", h.getSummary)
		transactions.GET("/:id", h.getTransaction)
		transactions.PUT("/:id", h.updateTransaction)
		transactions.DELETE("/:id", h.deleteTransaction)
		transactions.POST("/:id/receipt", h.uploadReceipt)
	}
}

// createTransaction godoc
// @Summary Create a transaction
// @Description Records a transaction and atomically applies its balance and budget effects
// @Tags transactions
// @Accept json
// @Produce json
// @Param transaction body dto.CreateTransactionRequest true "Transaction details"
// @Success 201 {object} dto.TransactionResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse "Linked account, category or allocation not found"
// @Security BearerAuth
// @Router /transactions [post]
func (h *transactionHandler) createTransaction(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var req dto.CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	txn, err := h.transactionService.CreateTransaction(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err, "Failed to create transaction")
		return
	}
	c.JSON(http.StatusCreated, dto.ToTransactionResponse(txn))
}

// listTransactions godoc
// @Summary List transactions
// @Description Lists the user's transactions newest first; an account filter matches either side of a transfer
// @Tags transactions
// @Produce json
// @Param accountID query string false "Filter by account"
// @Param categoryID query string false "Filter by category"
// @Param allocationID query string false "Filter by allocation"
// @Param transactionType query string false "Filter by type (debit, credit, transfer)"
// @Param startDate query string false "Transaction date on or after (RFC3339 or YYYY-MM-DD)"
// @Param endDate query string false "Transaction date on or before (RFC3339 or YYYY-MM-DD)"
// @Param isReconciled query bool false "Filter by reconciled flag"
// @Param limit query int false "Page size" default(20)
// @Param offset query int false "Page offset" default(0)
// @Success 200 {object} dto.ListTransactionsResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /transactions [get]
func (h *transactionHandler) listTransactions(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	limit, offset := paginationParams(c)
	filter := portsrepo.TransactionListFilter{
		AccountID:    stringQueryPtr(c, "accountID"),
		CategoryID:   stringQueryPtr(c, "categoryID"),
		AllocationID: stringQueryPtr(c, "allocationID"),
		StartDate:    timeQueryPtr(c, "startDate"),
		EndDate:      timeQueryPtr(c, "endDate"),
		IsReconciled: boolQueryPtr(c, "isReconciled"),
		Limit:        limit,
		Offset:       offset,
	}
	if raw := c.Query("transactionType"); raw != "" {
		t := domain.TransactionType(raw)
		filter.TransactionType = &t
	}

	txns, total, err := h.transactionService.ListTransactions(c.Request.Context(), userID, filter)
	if err != nil {
		respondError(c, err, "Failed to list transactions")
		return
	}
	c.JSON(http.StatusOK, dto.ListTransactionsResponse{
		Items:   dto.ToTransactionResponses(txns),
		Total:   total,
		HasMore: hasMore(total, limit, offset),
	})
}

// getTransaction godoc
// @Summary Get a transaction by ID
// @Tags transactions
// @Produce json
// @Param id path string true "Transaction ID"
// @Success 200 {object} dto.TransactionResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /transactions/{id} [get]
func (h *transactionHandler) getTransaction(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	txn, err := h.transactionService.GetTransactionByID(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to retrieve transaction")
		return
	}
	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}

// updateTransaction godoc
// @Summary Update a transaction
// @Description Reverses the old effects and applies the new ones in a single atomic commit
// @Tags transactions
// @Accept json
// @Produce json
// @Param id path string true "Transaction ID"
// @Param transaction body dto.UpdateTransactionRequest true "Fields to update"
// @Success 200 {object} dto.TransactionResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /transactions/{id} [put]
func (h *transactionHandler) updateTransaction(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	txn, err := h.transactionService.UpdateTransaction(c.Request.Context(), userID, c.Param("id"), req)
	if err != nil {
		respondError(c, err, "Failed to update transaction")
		return
	}
	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}

// deleteTransaction godoc
// @Summary Delete a transaction
// @Description Removes the transaction and reverses its balance and budget effects atomically
// @Tags transactions
// @Produce json
// @Param id path string true "Transaction ID"
// @Success 204 "No Content"
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /transactions/{id} [delete]
func (h *transactionHandler) deleteTransaction(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	if err := h.transactionService.DeleteTransaction(c.Request.Context(), userID, c.Param("id")); err != nil {
		respondError(c, err, "Failed to delete transaction")
		return
	}
	c.Status(http.StatusNoContent)
}

// getSummary godoc
// @Summary Summarize transactions over a period
// @Description Totals posted transactions between startDate and endDate with a per-category breakdown; transfers are excluded
// @Tags transactions
// @Produce json
// @Param startDate query string true "Period start (RFC3339 or YYYY-MM-DD)"
// @Param endDate query string true "Period end (RFC3339 or YYYY-MM-DD)"
// @Param accountID query string false "Restrict to one account"
// @Success 200 {object} dto.TransactionSummaryResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /transactions/summary [get]
func (h *transactionHandler) getSummary(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	start := timeQueryPtr(c, "startDate")
	end := timeQueryPtr(c, "endDate")
	if start == nil || end == nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "startDate and endDate are required"})
		return
	}
	if end.Before(*start) {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "endDate must not be before startDate"})
		return
	}

	summary, err := h.transactionService.GetPeriodSummary(c.Request.Context(), userID, *start, *end, stringQueryPtr(c, "accountID"))
	if err != nil {
		respondError(c, err, "Failed to summarize transactions")
		return
	}
	c.JSON(http.StatusOK, summary)
}

// uploadReceipt godoc
// @Summary Attach a receipt to a transaction
// @Description Accepts a multipart image or PDF upload and stores it against the transaction
// @Tags transactions
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Transaction ID"
// @Param receipt formData file true "Receipt file (jpg, jpeg, png, webp or pdf)"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} ErrorResponse "Missing file, unsupported type or file too large"
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /transactions/{id}/receipt [post]
func (h *transactionHandler) uploadReceipt(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	transactionID := c.Param("id")

	file, err := c.FormFile("receipt")
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Receipt file is required"})
		return
	}
	if file.Size > h.maxUploadSize {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: fmt.Sprintf("Receipt exceeds the %d byte limit", h.maxUploadSize)})
		return
	}
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if _, allowed := receiptExtensions[ext]; !allowed {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Unsupported receipt file type"})
		return
	}

	if err := os.MkdirAll(h.uploadDir, 0o755); err != nil {
		respondError(c, err, "Failed to store receipt")
		return
	}
	filename := transactionID + ext
	dst := filepath.Join(h.uploadDir, filename)
	if err := c.SaveUploadedFile(file, dst); err != nil {
		respondError(c, err, "Failed to store receipt")
		return
	}

	receiptURL := "/uploads/" + filename
	if err := h.transactionService.AttachReceipt(c.Request.Context(), userID, transactionID, receiptURL); err != nil {
		// The transaction lookup failed; remove the orphaned file.
		_ = os.Remove(dst)
		respondError(c, err, "Failed to attach receipt")
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Message: receiptURL})
}
