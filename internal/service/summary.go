package service

import "github.com/mfcastro/financas/backend/internal/model"

// Summary holds the four running totals of a month plus the derived
// balance. Credit-card spend and invested amounts are deliberately
// excluded from the balance.
type Summary struct {
	TotalIncome   float64 `json:"total_income"`
	TotalDebit    float64 `json:"total_debit"`
	TotalCredit   float64 `json:"total_credit"`
	TotalInvested float64 `json:"total_invested"`
	Balance       float64 `json:"balance"`
}

// Summarize derives the monthly totals from an already-fetched transaction
// set in a single pass. It is a pure function of its input.
func Summarize(txs []*model.Transaction) Summary {
	var s Summary
	for _, tx := range txs {
		switch {
		case tx.Kind == model.KindIncome:
			s.TotalIncome += tx.Amount
		case tx.PaymentMethod == model.PaymentDebit:
			s.TotalDebit += tx.Amount
		case tx.PaymentMethod == model.PaymentCredit:
			s.TotalCredit += tx.Amount
		}
		if tx.Category == model.CategoryInvestment {
			s.TotalInvested += tx.Amount
		}
	}
	s.Balance = s.TotalIncome - s.TotalDebit
	return s
}

// View selects one of the three mutually exclusive dashboard partitions.
type View string

const (
	ViewCashFlow    View = "cashflow"
	ViewCreditBill  View = "credit"
	ViewInvestments View = "investments"
)

// FilterView partitions a fetched transaction set for one view, preserving
// order. Investment rows route to the investments view only; the remaining
// rows split between cash-flow (income + debit expenses) and credit-bill
// (credit expenses).
func FilterView(txs []*model.Transaction, view View) []*model.Transaction {
	out := make([]*model.Transaction, 0, len(txs))
	for _, tx := range txs {
		invested := tx.Category == model.CategoryInvestment
		switch view {
		case ViewInvestments:
			if invested {
				out = append(out, tx)
			}
		case ViewCreditBill:
			if !invested && tx.PaymentMethod == model.PaymentCredit {
				out = append(out, tx)
			}
		default: // cash-flow
			if !invested && (tx.Kind == model.KindIncome || tx.PaymentMethod == model.PaymentDebit) {
				out = append(out, tx)
			}
		}
	}
	return out
}
