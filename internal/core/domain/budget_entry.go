package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// BudgetEntryType says whether a recurring entry represents money coming in
// or going out.
type BudgetEntryType string

const (
	EntryIncome  BudgetEntryType = "income"
	EntryExpense BudgetEntryType = "expense"
)

// RecurrenceFrequency is the cadence of a recurring budget entry. Generated
// transactions inherit it as their recurrence frequency.
type RecurrenceFrequency string

const (
	RecurMonthly    RecurrenceFrequency = "monthly"
	RecurQuarterly  RecurrenceFrequency = "quarterly"
	RecurSemiAnnual RecurrenceFrequency = "semi_annual"
	RecurAnnual     RecurrenceFrequency = "annual"
)

// EndMode controls when a recurring budget entry stops.
type EndMode string

const (
	EndIndefinite       EndMode = "indefinite"
	EndOnDate           EndMode = "on_date"
	EndAfterOccurrences EndMode = "after_occurrences"
)

// BudgetEntry is a recurring income/expense template. It never moves money
// itself; transactions referencing it carry a back-reference and inherit its
// cadence.
type BudgetEntry struct {
	BudgetEntryID string              `json:"budgetEntryID"` // Primary Key (UUID)
	UserID        string              `json:"userID"`        // Owner
	EntryType     BudgetEntryType     `json:"entryType"`
	Name          string              `json:"name"`
	Description   string              `json:"description"`
	Amount        decimal.Decimal     `json:"amount"`
	Currency      CurrencyCode        `json:"currency"`
	Cadence       RecurrenceFrequency `json:"cadence"`

	// Occurrence bookkeeping. Nothing materialises transactions from
	// NextOccurrence automatically; it is stored for clients and a possible
	// future scheduler.
	NextOccurrence time.Time `json:"nextOccurrence"`
	LeadTimeDays   int       `json:"leadTimeDays"`
	EndMode        EndMode   `json:"endMode"`
	EndDate        *time.Time `json:"endDate"`
	MaxOccurrences *int       `json:"maxOccurrences"`

	// Optional links, all owner-scoped.
	AccountID    *string `json:"accountID"`
	CategoryID   *string `json:"categoryID"`
	AllocationID *string `json:"allocationID"`

	IsAutopay bool `json:"isAutopay"`
	IsActive  bool `json:"isActive"`
	AuditFields
}
