package domain

import (
	"encoding/json"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// AllocationType defines what an allocation tracks.
type AllocationType string

const (
	AllocationSavings AllocationType = "savings"
	AllocationBudget  AllocationType = "budget"
	AllocationGoal    AllocationType = "goal"
)

// Configuration map keys recognised by budget allocation matching.
const (
	ConfigKeyCategoryIDs = "category_ids"
	ConfigKeyAccountIDs  = "account_ids"
)

// Allocation earmarks money in an account towards savings, a budget envelope,
// or a goal. Budget allocations additionally carry a rolling accounting
// window (PeriodStart/PeriodEnd) and CurrentAmount is their consumption
// within that window, reset to zero on every window move.
type Allocation struct {
	AllocationID   string          `json:"allocationID"` // Primary Key (UUID)
	UserID         string          `json:"userID"`       // Owner
	AccountID      string          `json:"accountID"`    // Linked account
	Name           string          `json:"name"`
	AllocationType AllocationType  `json:"allocationType"`
	Description    string          `json:"description"`
	TargetAmount   decimal.Decimal `json:"targetAmount"`
	CurrentAmount  decimal.Decimal `json:"currentAmount"`
	MonthlyTarget  decimal.Decimal `json:"monthlyTarget"`
	Currency       CurrencyCode    `json:"currency"`
	TargetDate     *time.Time      `json:"targetDate"` // Goal allocations

	// Budget period fields, only meaningful for AllocationBudget.
	PeriodFrequency PeriodFrequency `json:"periodFrequency"`
	PeriodStart     *time.Time      `json:"periodStart"`
	PeriodEnd       *time.Time      `json:"periodEnd"`

	// Configuration is an open JSON map; category_ids / account_ids lists
	// drive transaction auto-matching for budget allocations.
	Configuration map[string]any `json:"configuration"`

	IsActive bool `json:"isActive"`
	AuditFields
}

// IsBudget reports whether this allocation participates in budget-period
// accounting.
func (a Allocation) IsBudget() bool {
	return a.AllocationType == AllocationBudget
}

// ConfigCategoryIDs extracts the category id list from the configuration map.
// Entries may arrive as strings or JSON numbers; anything else is ignored.
func (a Allocation) ConfigCategoryIDs() []string {
	return coerceIDList(a.Configuration[ConfigKeyCategoryIDs])
}

// ConfigAccountIDs extracts the account id list from the configuration map.
func (a Allocation) ConfigAccountIDs() []string {
	return coerceIDList(a.Configuration[ConfigKeyAccountIDs])
}

// MatchesCategory reports whether the configuration's category_ids list
// contains the given category id.
func (a Allocation) MatchesCategory(categoryID string) bool {
	if categoryID == "" {
		return false
	}
	for _, id := range a.ConfigCategoryIDs() {
		if id == categoryID {
			return true
		}
	}
	return false
}

// BudgetImpact describes one allocation touched by a ledger mutation: roll
// the allocation's period so it brackets ReferenceDate, then add Delta to its
// progress. Impacts are applied strictly in order, so a reversal impact and
// its replacement can target the same allocation.
type BudgetImpact struct {
	AllocationID  string
	Delta         decimal.Decimal
	ReferenceDate time.Time
}

// coerceIDList tolerantly interprets a configuration value as a list of ids.
// JSON numbers are rendered in their canonical integer form so a list stored
// as [5, "7"] matches ids "5" and "7".
func coerceIDList(v any) []string {
	list, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(list))
	for _, item := range list {
		switch id := item.(type) {
		case string:
			if id != "" {
				out = append(out, id)
			}
		case float64:
			out = append(out, strconv.FormatInt(int64(id), 10))
		case int:
			out = append(out, strconv.Itoa(id))
		case int64:
			out = append(out, strconv.FormatInt(id, 10))
		case json.Number:
			out = append(out, id.String())
		}
	}
	return out
}
