package domain_test

import (
	"testing"

	"github.com/gastos-app/gastos_backend/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestAllocation_ConfigCategoryIDs(t *testing.T) {
	tests := []struct {
		name   string
		config map[string]any
		want   []string
	}{
		{
			name:   "nil configuration",
			config: nil,
			want:   nil,
		},
		{
			name:   "missing key",
			config: map[string]any{"account_ids": []any{"acc_1"}},
			want:   nil,
		},
		{
			name:   "string ids",
			config: map[string]any{"category_ids": []any{"cat_1", "cat_2"}},
			want:   []string{"cat_1", "cat_2"},
		},
		{
			name: "mixed strings and JSON numbers",
			// Decoded JSON renders numbers as float64.
			config: map[string]any{"category_ids": []any{float64(5), "7"}},
			want:   []string{"5", "7"},
		},
		{
			name:   "empty strings and unknown types are skipped",
			config: map[string]any{"category_ids": []any{"", true, "cat_1"}},
			want:   []string{"cat_1"},
		},
		{
			name:   "value is not a list",
			config: map[string]any{"category_ids": "cat_1"},
			want:   nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := domain.Allocation{Configuration: tt.config}
			assert.Equal(t, tt.want, a.ConfigCategoryIDs())
		})
	}
}

func TestAllocation_MatchesCategory(t *testing.T) {
	a := domain.Allocation{
		Configuration: map[string]any{
			"category_ids": []any{"cat_food", "cat_transport"},
		},
	}

	assert.True(t, a.MatchesCategory("cat_food"))
	assert.False(t, a.MatchesCategory("cat_rent"))
	assert.False(t, a.MatchesCategory(""), "empty category never matches")

	unconfigured := domain.Allocation{}
	assert.False(t, unconfigured.MatchesCategory("cat_food"))
}

func TestAllocation_IsBudget(t *testing.T) {
	assert.True(t, domain.Allocation{AllocationType: domain.AllocationBudget}.IsBudget())
	assert.False(t, domain.Allocation{AllocationType: domain.AllocationSavings}.IsBudget())
	assert.False(t, domain.Allocation{AllocationType: domain.AllocationGoal}.IsBudget())
}
