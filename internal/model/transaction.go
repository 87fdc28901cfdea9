// Package model defines the transaction entity shared by the store, the
// importer and the HTTP handlers.
package model

import (
	"fmt"
	"math"
	"time"
)

// Kind distinguishes money coming in from money going out. The amount is
// always a non-negative magnitude; the kind encodes direction.
type Kind string

const (
	KindIncome  Kind = "income"
	KindExpense Kind = "expense"
)

// PaymentMethod applies to expenses only. Income rows carry none.
type PaymentMethod string

const (
	PaymentDebit  PaymentMethod = "debit"
	PaymentCredit PaymentMethod = "credit"
)

// Default categories applied when the caller leaves the label blank.
const (
	CategoryDefaultExpense = "Outros"
	CategoryIncome         = "Entrada"
	CategoryRecurring      = "Fixo"
	CategoryInvestment     = "Investimento"
)

// ExpenseCategories is the fixed label set offered by the dashboard form.
var ExpenseCategories = []string{
	"Alimentação",
	"Transporte",
	"Moradia",
	"Lazer",
	"Saúde",
	"Educação",
	CategoryInvestment,
	CategoryDefaultExpense,
}

// Transaction is the persisted entity. There is no update operation:
// records are inserted (singly or in import batches) and deleted by ID.
type Transaction struct {
	ID            string        `json:"id" firestore:"Id"`
	UserID        string        `json:"user_id" firestore:"UserId"`
	Description   string        `json:"description" firestore:"Description"`
	Amount        float64       `json:"amount" firestore:"Amount"`
	Category      string        `json:"category" firestore:"Category"`
	Date          time.Time     `json:"date" firestore:"Date"`
	Kind          Kind          `json:"type" firestore:"Kind"`
	PaymentMethod PaymentMethod `json:"payment_method,omitempty" firestore:"PaymentMethod"`
	IsRecurring   bool          `json:"is_recurring" firestore:"IsRecurring"`
	CreatedAt     time.Time     `json:"created_at" firestore:"CreatedAt"`
}

// Validate enforces the entity invariants before a store write. Imported
// rows with unparseable amounts surface here as NaN and are rejected,
// which is what aborts the offending batch.
func (t *Transaction) Validate() error {
	if t.Description == "" {
		return fmt.Errorf("transaction description is required")
	}
	if math.IsNaN(t.Amount) || math.IsInf(t.Amount, 0) {
		return fmt.Errorf("transaction amount is not a valid number")
	}
	if t.Amount < 0 {
		return fmt.Errorf("transaction amount must be non-negative, got %v", t.Amount)
	}
	if t.Date.IsZero() {
		return fmt.Errorf("transaction date is required")
	}

	switch t.Kind {
	case KindExpense:
		if t.PaymentMethod != PaymentDebit && t.PaymentMethod != PaymentCredit {
			return fmt.Errorf("expense payment method must be debit or credit, got %q", t.PaymentMethod)
		}
	case KindIncome:
		if t.PaymentMethod != "" {
			return fmt.Errorf("income transactions carry no payment method")
		}
		if t.IsRecurring {
			return fmt.Errorf("income transactions are never recurring")
		}
	default:
		return fmt.Errorf("unknown transaction kind %q", t.Kind)
	}

	return nil
}
