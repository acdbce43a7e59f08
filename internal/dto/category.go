package dto

import (
	"time"

	"github.com/gastos-app/gastos_backend/internal/core/domain"
)

// CreateCategoryRequest defines the JSON body for creating a category.
type CreateCategoryRequest struct {
	Name        string `json:"name" binding:"required,max=100"`
	Description string `json:"description" binding:"omitempty,max=500"`
	Color       string `json:"color" binding:"omitempty,hexcolor"`
	IsExpense   *bool  `json:"isExpense"` // Defaults to true
}

// UpdateCategoryRequest defines the JSON body for a partial category update.
type UpdateCategoryRequest struct {
	Name        *string `json:"name" binding:"omitempty,max=100"`
	Description *string `json:"description" binding:"omitempty,max=500"`
	Color       *string `json:"color" binding:"omitempty,hexcolor"`
	IsExpense   *bool   `json:"isExpense"`
	IsActive    *bool   `json:"isActive"`
}

// CategoryResponse is the API representation of a category.
type CategoryResponse struct {
	CategoryID  string     `json:"categoryID"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	Color       string     `json:"color,omitempty"`
	IsExpense   bool       `json:"isExpense"`
	IsActive    bool       `json:"isActive"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   *time.Time `json:"updatedAt,omitempty"`
}

// ListCategoriesResponse is a paginated category listing.
type ListCategoriesResponse struct {
	Items   []CategoryResponse `json:"items"`
	Total   int                `json:"total"`
	HasMore bool               `json:"hasMore"`
}

// ToCategoryResponse converts a domain Category to its API representation.
func ToCategoryResponse(c *domain.Category) CategoryResponse {
	return CategoryResponse{
		CategoryID:  c.CategoryID,
		Name:        c.Name,
		Description: c.Description,
		Color:       c.Color,
		IsExpense:   c.IsExpense,
		IsActive:    c.IsActive,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

// ToCategoryResponses converts a slice of domain Categories.
func ToCategoryResponses(categories []domain.Category) []CategoryResponse {
	out := make([]CategoryResponse, len(categories))
	for i := range categories {
		out[i] = ToCategoryResponse(&categories[i])
	}
	return out
}
