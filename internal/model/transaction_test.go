package model

import (
	"math"
	"strings"
	"testing"
	"time"
)

func validExpense() *Transaction {
	return &Transaction{
		ID:            "tx-1",
		UserID:        "user-1",
		Description:   "Mercado",
		Amount:        250.40,
		Category:      "Alimentação",
		Date:          time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC),
		Kind:          KindExpense,
		PaymentMethod: PaymentDebit,
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(tx *Transaction)
		wantErr string
	}{
		{
			name:   "valid debit expense",
			mutate: func(tx *Transaction) {},
		},
		{
			name: "valid credit expense",
			mutate: func(tx *Transaction) {
				tx.PaymentMethod = PaymentCredit
			},
		},
		{
			name: "valid income",
			mutate: func(tx *Transaction) {
				tx.Kind = KindIncome
				tx.PaymentMethod = ""
				tx.Category = CategoryIncome
			},
		},
		{
			name: "empty description",
			mutate: func(tx *Transaction) {
				tx.Description = ""
			},
			wantErr: "description",
		},
		{
			name: "NaN amount",
			mutate: func(tx *Transaction) {
				tx.Amount = math.NaN()
			},
			wantErr: "not a valid number",
		},
		{
			name: "negative amount",
			mutate: func(tx *Transaction) {
				tx.Amount = -10
			},
			wantErr: "non-negative",
		},
		{
			name: "zero date",
			mutate: func(tx *Transaction) {
				tx.Date = time.Time{}
			},
			wantErr: "date",
		},
		{
			name: "expense without payment method",
			mutate: func(tx *Transaction) {
				tx.PaymentMethod = ""
			},
			wantErr: "payment method",
		},
		{
			name: "income with payment method",
			mutate: func(tx *Transaction) {
				tx.Kind = KindIncome
			},
			wantErr: "no payment method",
		},
		{
			name: "recurring income",
			mutate: func(tx *Transaction) {
				tx.Kind = KindIncome
				tx.PaymentMethod = ""
				tx.IsRecurring = true
			},
			wantErr: "never recurring",
		},
		{
			name: "unknown kind",
			mutate: func(tx *Transaction) {
				tx.Kind = "transfer"
			},
			wantErr: "unknown transaction kind",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx := validExpense()
			tt.mutate(tx)

			err := tx.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("expected valid transaction, got %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("expected error containing %q, got nil", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("expected error containing %q, got %q", tt.wantErr, err.Error())
			}
		})
	}
}
