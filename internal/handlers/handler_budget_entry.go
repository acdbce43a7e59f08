package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gastos-app/gastos_backend/internal/core/domain"
	portsrepo "github.com/gastos-app/gastos_backend/internal/core/ports/repositories"
	portssvc "github.com/gastos-app/gastos_backend/internal/core/ports/services"
	"github.com/gastos-app/gastos_backend/internal/dto"
)

// budgetEntryHandler handles HTTP requests related to recurring budget
// entries.
type budgetEntryHandler struct {
	budgetEntryService portssvc.BudgetEntrySvcFacade
}

func newBudgetEntryHandler(bs portssvc.BudgetEntrySvcFacade) *budgetEntryHandler {
	return &budgetEntryHandler{budgetEntryService: bs}
}

// registerBudgetEntryRoutes registers routes related to budget entries.
func registerBudgetEntryRoutes(rg *gin.RouterGroup, budgetEntryService portssvc.BudgetEntrySvcFacade) {
	h := newBudgetEntryHandler(budgetEntryService)

	entries := rg.Group("/budget-entries")
	{
		entries.POST("", h.createBudgetEntry)
		entries.GET("", h.listBudgetEntries)
		entries.GET("/:id", h.getBudgetEntry)
		entries.PUT("/:id", h.updateBudgetEntry)
		entries.DELETE("/:id", h.deleteBudgetEntry)
	}
}

// createBudgetEntry godoc
// @Summary Create a recurring budget entry
// @Tags budget-entries
// @Accept json
// @Produce json
// @Param entry body dto.CreateBudgetEntryRequest true "Budget entry details"
// @Success 201 {object} dto.BudgetEntryResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse "Linked account, category or allocation not found"
// @Security BearerAuth
// @Router /budget-entries [post]
func (h *budgetEntryHandler) createBudgetEntry(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var req dto.CreateBudgetEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	entry, err := h.budgetEntryService.CreateBudgetEntry(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err, "Failed to create budget entry")
		return
	}
	c.JSON(http.StatusCreated, dto.ToBudgetEntryResponse(entry))
}

// listBudgetEntries godoc
// @Summary List budget entries
// @Tags budget-entries
// @Produce json
// @Param entryType query string false "Filter by entry type (income or expense)"
// @Param isActive query bool false "Filter by active state"
// @Param before query string false "Next occurrence on or before (RFC3339 or YYYY-MM-DD)"
// @Param after query string false "Next occurrence on or after (RFC3339 or YYYY-MM-DD)"
// @Param limit query int false "Page size" default(20)
// @Param offset query int false "Page offset" default(0)
// @Success 200 {object} dto.ListBudgetEntriesResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /budget-entries [get]
func (h *budgetEntryHandler) listBudgetEntries(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	limit, offset := paginationParams(c)
	filter := portsrepo.BudgetEntryListFilter{
		IsActive: boolQueryPtr(c, "isActive"),
		Before:   timeQueryPtr(c, "before"),
		After:    timeQueryPtr(c, "after"),
		Limit:    limit,
		Offset:   offset,
	}
	if raw := c.Query("entryType"); raw != "" {
		t := domain.BudgetEntryType(raw)
		filter.EntryType = &t
	}

	entries, total, err := h.budgetEntryService.ListBudgetEntries(c.Request.Context(), userID, filter)
	if err != nil {
		respondError(c, err, "Failed to list budget entries")
		return
	}
	c.JSON(http.StatusOK, dto.ListBudgetEntriesResponse{
		Items:   dto.ToBudgetEntryResponses(entries),
		Total:   total,
		HasMore: hasMore(total, limit, offset),
	})
}

// getBudgetEntry godoc
// @Summary Get a budget entry by ID
// @Tags budget-entries
// @Produce json
// @Param id path string true "Budget entry ID"
// @Success 200 {object} dto.BudgetEntryResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /budget-entries/{id} [get]
func (h *budgetEntryHandler) getBudgetEntry(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	entry, err := h.budgetEntryService.GetBudgetEntryByID(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to retrieve budget entry")
		return
	}
	c.JSON(http.StatusOK, dto.ToBudgetEntryResponse(entry))
}

// updateBudgetEntry godoc
// @Summary Update a budget entry
// @Tags budget-entries
// @Accept json
// @Produce json
// @Param id path string true "Budget entry ID"
// @Param entry body dto.UpdateBudgetEntryRequest true "Fields to update"
// @Success 200 {object} dto.BudgetEntryResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /budget-entries/{id} [put]
func (h *budgetEntryHandler) updateBudgetEntry(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateBudgetEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	entry, err := h.budgetEntryService.UpdateBudgetEntry(c.Request.Context(), userID, c.Param("id"), req)
	if err != nil {
		respondError(c, err, "Failed to update budget entry")
		return
	}
	c.JSON(http.StatusOK, dto.ToBudgetEntryResponse(entry))
}

// deleteBudgetEntry godoc
// @Summary Delete a budget entry
// @Description Removes the template; transactions generated from it are untouched
// @Tags budget-entries
// @Produce json
// @Param id path string true "Budget entry ID"
// @Success 204 "No Content"
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /budget-entries/{id} [delete]
func (h *budgetEntryHandler) deleteBudgetEntry(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	if err := h.budgetEntryService.DeleteBudgetEntry(c.Request.Context(), userID, c.Param("id")); err != nil {
		respondError(c, err, "Failed to delete budget entry")
		return
	}
	c.Status(http.StatusNoContent)
}
