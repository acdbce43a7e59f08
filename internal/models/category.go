package models

// Category mirrors the categories table.
type Category struct {
	CategoryID  string
	UserID      string
	Name        string
	Description string
	Color       string
	IsExpense   bool
	IsActive    bool
	AuditFields
}
