package importer

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/mfcastro/financas/backend/internal/model"
)

// Spreadsheet serial dates count days since 1899-12-30; the Unix epoch
// falls 25569 days after it.
const (
	serialDateEpochOffsetDays = 25569
	secondsPerDay             = 86400
)

// incomeDateLayouts are tried in order for textual income date cells.
var incomeDateLayouts = []string{
	"2006-01-02",
	"02/01/2006",
	time.RFC3339,
}

// Normalizer converts raw worksheet rows into transaction records. It is
// pure: the records it produces carry no ID or owner, those are stamped at
// submission time.
type Normalizer struct {
	Layout Layout

	// RecurringCategories is the classification rule for inferring the
	// recurring flag from an expense's category label. Exact match only.
	RecurringCategories map[string]bool
}

// NewNormalizer returns a normalizer for the given layout with the
// template's recurring-category spellings.
func NewNormalizer(layout Layout) *Normalizer {
	return &Normalizer{
		Layout: layout,
		RecurringCategories: map[string]bool{
			model.CategoryRecurring: true,
			"Fixos":                 true,
		},
	}
}

// NormalizeWorkbook walks every month-named sheet and returns the records
// in sheet order, row order, expense before income within a row.
func (n *Normalizer) NormalizeWorkbook(wb *Workbook, year int) []*model.Transaction {
	var records []*model.Transaction
	for _, sheet := range wb.Sheets {
		records = append(records, n.NormalizeSheet(sheet, year)...)
	}
	return records
}

// NormalizeSheet normalizes one sheet. Sheets whose name is not a
// canonical month name contribute nothing.
func (n *Normalizer) NormalizeSheet(sheet Sheet, year int) []*model.Transaction {
	month, ok := SheetMonth(sheet.Name)
	if !ok {
		return nil
	}

	var records []*model.Transaction
	for i := n.Layout.HeaderRows; i < len(sheet.Rows); i++ {
		row := sheet.Rows[i]
		if expense, ok := n.expenseFromRow(row, month, year); ok {
			records = append(records, expense)
		}
		if income, ok := n.incomeFromRow(row, month, year); ok {
			records = append(records, income)
		}
	}
	return records
}

// expenseFromRow reads the expense-side region. The template carries no
// day or payment-method information for expenses: the date is always the
// first of the sheet's month and the method is always debit.
func (n *Normalizer) expenseFromRow(row []string, month time.Month, year int) (*model.Transaction, bool) {
	region := n.Layout.Expense
	desc := cell(row, region.DescriptionCol)
	value := cell(row, region.ValueCol)
	if strings.TrimSpace(desc) == "" || strings.TrimSpace(value) == "" {
		return nil, false
	}

	category := cell(row, region.CategoryCol)
	if strings.TrimSpace(category) == "" {
		category = model.CategoryRecurring
	}

	return &model.Transaction{
		Description:   desc,
		Amount:        parseAmount(value),
		Category:      category,
		Date:          firstOfMonth(year, month),
		Kind:          model.KindExpense,
		PaymentMethod: model.PaymentDebit,
		IsRecurring:   n.RecurringCategories[category],
	}, true
}

// incomeFromRow reads the income-side region. Income rows are never
// recurring and carry no payment method.
func (n *Normalizer) incomeFromRow(row []string, month time.Month, year int) (*model.Transaction, bool) {
	region := n.Layout.Income
	desc := cell(row, region.DescriptionCol)
	value := cell(row, region.ValueCol)
	if strings.TrimSpace(desc) == "" || strings.TrimSpace(value) == "" {
		return nil, false
	}

	category := cell(row, region.CategoryCol)
	if strings.TrimSpace(category) == "" {
		category = model.CategoryIncome
	}

	return &model.Transaction{
		Description: desc,
		Amount:      parseAmount(value),
		Category:    category,
		Date:        n.incomeDate(cell(row, region.DateCol), month, year),
		Kind:        model.KindIncome,
		IsRecurring: false,
	}, true
}

// incomeDate resolves the income date cell: absent falls back to the first
// of the sheet's month, numeric is a spreadsheet serial date, textual is
// parsed as a date string. Parse failures yield the zero time so the
// record is rejected at the store boundary rather than silently dropped.
func (n *Normalizer) incomeDate(raw string, month time.Month, year int) time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return firstOfMonth(year, month)
	}

	if serial, err := strconv.ParseFloat(raw, 64); err == nil {
		return serialDateToTime(serial)
	}

	for _, layout := range incomeDateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC()
		}
	}
	return time.Time{}
}

// parseAmount coerces a raw cell into an amount magnitude. Numeric values
// have their sign discarded: the record's kind encodes direction, not the
// source sign. Unparseable values propagate as NaN and fail at the store
// boundary instead of being dropped here.
func parseAmount(raw string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return math.NaN()
	}
	return math.Abs(f)
}

// serialDateToTime converts a spreadsheet serial date (days since
// 1899-12-30) to a calendar timestamp.
func serialDateToTime(serial float64) time.Time {
	seconds := math.Round((serial - serialDateEpochOffsetDays) * secondsPerDay)
	return time.Unix(int64(seconds), 0).UTC()
}

func firstOfMonth(year int, month time.Month) time.Time {
	return time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
}
