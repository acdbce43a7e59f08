package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gastos-app/gastos_backend/internal/core/domain"
	portsrepo "github.com/gastos-app/gastos_backend/internal/core/ports/repositories"
	portssvc "github.com/gastos-app/gastos_backend/internal/core/ports/services"
	"github.com/gastos-app/gastos_backend/internal/dto"
)

// allocationHandler handles HTTP requests related to allocations.
type allocationHandler struct {
	allocationService portssvc.AllocationSvcFacade
}

func newAllocationHandler(as portssvc.AllocationSvcFacade) *allocationHandler {
	return &allocationHandler{allocationService: as}
}

// registerAllocationRoutes registers routes related to allocations.
func registerAllocationRoutes(rg *gin.RouterGroup, allocationService portssvc.AllocationSvcFacade) {
	h := newAllocationHandler(allocationService)

	allocations := rg.Group("/allocations")
	{
		allocations.POST("", h.createAllocation)
		allocations.GET("", h.listAllocations)
		allocations.GET("/goals-summary", h.getGoalsSummary)
		allocations.GET("/:id", h.getAllocation)
		allocations.PUT("/:id", h.updateAllocation)
		allocations.DELETE("/:id", h.deleteAllocation)
		allocations.GET("/:id/progress", h.getProgress)
	}
}

// createAllocation godoc
// @Summary Create a new allocation
// @Description Creates a savings, budget or goal allocation under an account
// @Tags allocations
// @Accept json
// @Produce json
// @Param allocation body dto.CreateAllocationRequest true "Allocation details"
// @Success 201 {object} dto.AllocationResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse "Account not found"
// @Security BearerAuth
// @Router /allocations [post]
func (h *allocationHandler) createAllocation(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var req dto.CreateAllocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	allocation, err := h.allocationService.CreateAllocation(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err, "Failed to create allocation")
		return
	}
	c.JSON(http.StatusCreated, dto.ToAllocationResponse(allocation))
}

// listAllocations godoc
// @Summary List allocations
// @Tags allocations
// @Produce json
// @Param accountID query string false "Filter by account"
// @Param allocationType query string false "Filter by allocation type"
// @Param isActive query bool false "Filter by active state"
// @Param limit query int false "Page size" default(20)
// @Param offset query int false "Page offset" default(0)
// @Success 200 {object} dto.ListAllocationsResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /allocations [get]
func (h *allocationHandler) listAllocations(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	limit, offset := paginationParams(c)
	filter := portsrepo.AllocationListFilter{
		AccountID: stringQueryPtr(c, "accountID"),
		IsActive:  boolQueryPtr(c, "isActive"),
		Limit:     limit,
		Offset:    offset,
	}
	if raw := c.Query("allocationType"); raw != "" {
		t := domain.AllocationType(raw)
		filter.AllocationType = &t
	}

	allocations, total, err := h.allocationService.ListAllocations(c.Request.Context(), userID, filter)
	if err != nil {
		respondError(c, err, "Failed to list allocations")
		return
	}
	c.JSON(http.StatusOK, dto.ListAllocationsResponse{
		Items:   dto.ToAllocationResponses(allocations),
		Total:   total,
		HasMore: hasMore(total, limit, offset),
	})
}

// getAllocation godoc
// @Summary Get an allocation by ID
// @Tags allocations
// @Produce json
// @Param id path string true "Allocation ID"
// @Success 200 {object} dto.AllocationResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /allocations/{id} [get]
func (h *allocationHandler) getAllocation(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	allocation, err := h.allocationService.GetAllocationByID(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to retrieve allocation")
		return
	}
	c.JSON(http.StatusOK, dto.ToAllocationResponse(allocation))
}

// updateAllocation godoc
// @Summary Update an allocation
// @Description Updates allocation details; budget consumption is derived from transactions and not writable
// @Tags allocations
// @Accept json
// @Produce json
// @Param id path string true "Allocation ID"
// @Param allocation body dto.UpdateAllocationRequest true "Fields to update"
// @Success 200 {object} dto.AllocationResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /allocations/{id} [put]
func (h *allocationHandler) updateAllocation(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateAllocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	allocation, err := h.allocationService.UpdateAllocation(c.Request.Context(), userID, c.Param("id"), req)
	if err != nil {
		respondError(c, err, "Failed to update allocation")
		return
	}
	c.JSON(http.StatusOK, dto.ToAllocationResponse(allocation))
}

// deleteAllocation godoc
// @Summary Deactivate an allocation
// @Description Marks the allocation inactive; it stops matching new transactions
// @Tags allocations
// @Produce json
// @Param id path string true "Allocation ID"
// @Success 204 "No Content"
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /allocations/{id} [delete]
func (h *allocationHandler) deleteAllocation(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	if err := h.allocationService.DeactivateAllocation(c.Request.Context(), userID, c.Param("id")); err != nil {
		respondError(c, err, "Failed to deactivate allocation")
		return
	}
	c.Status(http.StatusNoContent)
}

// getProgress godoc
// @Summary Get progress for an allocation
// @Description Reports target progress, this month's contributions and days until the target date
// @Tags allocations
// @Produce json
// @Param id path string true "Allocation ID"
// @Success 200 {object} dto.AllocationProgressResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /allocations/{id}/progress [get]
func (h *allocationHandler) getProgress(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	progress, err := h.allocationService.GetProgress(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to compute allocation progress")
		return
	}
	c.JSON(http.StatusOK, progress)
}

// getGoalsSummary godoc
// @Summary Summarize all active goals
// @Tags allocations
// @Produce json
// @Success 200 {object} dto.GoalsSummaryResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /allocations/goals-summary [get]
func (h *allocationHandler) getGoalsSummary(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	summary, err := h.allocationService.GetGoalsSummary(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "Failed to summarize goals")
		return
	}
	c.JSON(http.StatusOK, summary)
}
