package domain

// Category is a user-scoped tag for transactions, also referenced by budget
// allocation configuration for auto-matching.
type Category struct {
	CategoryID  string `json:"categoryID"` // Primary Key (UUID)
	UserID      string `json:"userID"`     // Owner
	Name        string `json:"name"`
	Description string `json:"description"`
	Color       string `json:"color"`     // Hex color code, optional
	IsExpense   bool   `json:"isExpense"` // false means income category
	IsActive    bool   `json:"isActive"`
	AuditFields
}
