package domain_test

import (
	"testing"

	"github.com/gastos-app/gastos_backend/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestTransaction_Validate(t *testing.T) {
	tests := []struct {
		name    string
		tx      domain.Transaction
		wantErr bool
		errMsg  string
	}{
		{
			name: "valid debit",
			tx: domain.Transaction{
				TransactionID:   "txn_123",
				AccountID:       "acc_123",
				Amount:          decimal.NewFromFloat(100.00),
				TransactionType: domain.Debit,
				Currency:        "USD",
			},
			wantErr: false,
		},
		{
			name: "valid credit with zero amount",
			tx: domain.Transaction{
				TransactionID:   "txn_123",
				AccountID:       "acc_123",
				Amount:          decimal.Zero,
				TransactionType: domain.Credit,
				Currency:        "USD",
			},
			wantErr: false,
		},
		{
			name: "valid transfer",
			tx: domain.Transaction{
				TransactionID:         "txn_123",
				AccountID:             "acc_src",
				Amount:                decimal.NewFromFloat(50.00),
				TransactionType:       domain.Transfer,
				TransferFromAccountID: stringPtr("acc_src"),
				TransferToAccountID:   stringPtr("acc_dst"),
			},
			wantErr: false,
		},
		{
			name: "unknown transaction type",
			tx: domain.Transaction{
				AccountID:       "acc_123",
				Amount:          decimal.NewFromFloat(10.00),
				TransactionType: "withdrawal",
			},
			wantErr: true,
			errMsg:  "unknown transaction type",
		},
		{
			name: "negative amount",
			tx: domain.Transaction{
				AccountID:       "acc_123",
				Amount:          decimal.NewFromFloat(-10.00),
				TransactionType: domain.Debit,
			},
			wantErr: true,
			errMsg:  "must not be negative",
		},
		{
			name: "transfer missing destination",
			tx: domain.Transaction{
				AccountID:             "acc_src",
				Amount:                decimal.NewFromFloat(10.00),
				TransactionType:       domain.Transfer,
				TransferFromAccountID: stringPtr("acc_src"),
			},
			wantErr: true,
			errMsg:  "require source and destination",
		},
		{
			name: "transfer to same account",
			tx: domain.Transaction{
				AccountID:             "acc_src",
				Amount:                decimal.NewFromFloat(10.00),
				TransactionType:       domain.Transfer,
				TransferFromAccountID: stringPtr("acc_src"),
				TransferToAccountID:   stringPtr("acc_src"),
			},
			wantErr: true,
			errMsg:  "must be different",
		},
		{
			name: "transfer source differs from primary account",
			tx: domain.Transaction{
				AccountID:             "acc_other",
				Amount:                decimal.NewFromFloat(10.00),
				TransactionType:       domain.Transfer,
				TransferFromAccountID: stringPtr("acc_src"),
				TransferToAccountID:   stringPtr("acc_dst"),
			},
			wantErr: true,
			errMsg:  "must match transfer source",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.tx.Validate()
			if tt.wantErr {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestTransaction_BalanceEffects(t *testing.T) {
	tests := []struct {
		name string
		tx   domain.Transaction
		want map[string]string
	}{
		{
			name: "credit adds to the account",
			tx: domain.Transaction{
				AccountID:       "acc_123",
				Amount:          decimal.NewFromFloat(100.00),
				TransactionType: domain.Credit,
			},
			want: map[string]string{"acc_123": "100"},
		},
		{
			name: "debit subtracts from the account",
			tx: domain.Transaction{
				AccountID:       "acc_123",
				Amount:          decimal.NewFromFloat(42.50),
				TransactionType: domain.Debit,
			},
			want: map[string]string{"acc_123": "-42.5"},
		},
		{
			name: "transfer moves amount and charges the fee to the source",
			tx: domain.Transaction{
				AccountID:             "acc_src",
				Amount:                decimal.NewFromFloat(100.00),
				TransferFee:           decimal.NewFromFloat(2.50),
				TransactionType:       domain.Transfer,
				TransferFromAccountID: stringPtr("acc_src"),
				TransferToAccountID:   stringPtr("acc_dst"),
			},
			want: map[string]string{"acc_src": "-102.5", "acc_dst": "100"},
		},
		{
			name: "transfer without fee is symmetric",
			tx: domain.Transaction{
				AccountID:             "acc_src",
				Amount:                decimal.NewFromFloat(75.00),
				TransactionType:       domain.Transfer,
				TransferFromAccountID: stringPtr("acc_src"),
				TransferToAccountID:   stringPtr("acc_dst"),
			},
			want: map[string]string{"acc_src": "-75", "acc_dst": "75"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.tx.BalanceEffects()
			assert.NoError(t, err)
			assert.Len(t, got, len(tt.want))
			for accountID, wantStr := range tt.want {
				want, _ := decimal.NewFromString(wantStr)
				assert.True(t, got[accountID].Equal(want),
					"account %s: want %s, got %s", accountID, want, got[accountID])
			}
		})
	}
}

func TestTransaction_BalanceEffects_InvalidTransaction(t *testing.T) {
	tx := domain.Transaction{
		AccountID:       "acc_123",
		Amount:          decimal.NewFromFloat(-5.00),
		TransactionType: domain.Debit,
	}
	got, err := tx.BalanceEffects()
	assert.Error(t, err)
	assert.Nil(t, got)
}

func TestTransaction_BudgetDelta(t *testing.T) {
	tests := []struct {
		name string
		tx   domain.Transaction
		want string
	}{
		{
			name: "debit consumes budget",
			tx: domain.Transaction{
				Amount:          decimal.NewFromFloat(30.00),
				TransactionType: domain.Debit,
			},
			want: "30",
		},
		{
			name: "credit refunds budget",
			tx: domain.Transaction{
				Amount:          decimal.NewFromFloat(30.00),
				TransactionType: domain.Credit,
			},
			want: "-30",
		},
		{
			name: "transfer never touches budgets",
			tx: domain.Transaction{
				Amount:          decimal.NewFromFloat(30.00),
				TransactionType: domain.Transfer,
			},
			want: "0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			want, _ := decimal.NewFromString(tt.want)
			assert.True(t, tt.tx.BudgetDelta().Equal(want))
		})
	}
}

func TestTransaction_EffectOn(t *testing.T) {
	transfer := domain.Transaction{
		AccountID:             "acc_src",
		Amount:                decimal.NewFromFloat(100.00),
		TransferFee:           decimal.NewFromFloat(1.00),
		TransactionType:       domain.Transfer,
		TransferFromAccountID: stringPtr("acc_src"),
		TransferToAccountID:   stringPtr("acc_dst"),
		IsPosted:              true,
	}

	assert.True(t, transfer.EffectOn("acc_src").Equal(decimal.NewFromFloat(-101.00)))
	assert.True(t, transfer.EffectOn("acc_dst").Equal(decimal.NewFromFloat(100.00)))
	assert.True(t, transfer.EffectOn("acc_other").IsZero())

	unposted := transfer
	unposted.IsPosted = false
	assert.True(t, unposted.EffectOn("acc_src").IsZero(), "unposted transactions are inert")
}

func TestTransaction_TouchesAccount(t *testing.T) {
	tx := domain.Transaction{
		AccountID:             "acc_src",
		TransactionType:       domain.Transfer,
		TransferFromAccountID: stringPtr("acc_src"),
		TransferToAccountID:   stringPtr("acc_dst"),
	}
	assert.True(t, tx.TouchesAccount("acc_src"))
	assert.True(t, tx.TouchesAccount("acc_dst"))
	assert.False(t, tx.TouchesAccount("acc_other"))
}

// Helper functions
func decimalPtr(d decimal.Decimal) *decimal.Decimal {
	return &d
}

func stringPtr(s string) *string {
	return &s
}
