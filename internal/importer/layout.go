// Package importer turns a user-supplied spreadsheet into persisted
// transactions: it selects month-named sheets, normalizes fixed-column
// rows into transaction records and submits them in bounded batches.
package importer

import "time"

// Region describes one fixed-column zone of a worksheet row. The template
// lays two independent logical tables side by side, so each row is read at
// two disjoint regions.
type Region struct {
	DescriptionCol int
	CategoryCol    int
	ValueCol       int
	// DateCol is -1 when the region has no date column; records then get
	// the first day of the sheet's month.
	DateCol int
}

// Layout is the declarative column mapping for one worksheet template.
// Keeping it data-driven lets layout variants be tested without touching
// the parsing logic.
type Layout struct {
	// HeaderRows is the number of leading title/header rows skipped
	// unconditionally.
	HeaderRows int
	Expense    Region
	Income     Region
}

// DefaultLayout matches the household spreadsheet template the importer
// was built for: expenses on the left, income entries on the right,
// data starting on row 10.
var DefaultLayout = Layout{
	HeaderRows: 9,
	Expense: Region{
		DescriptionCol: 2,
		CategoryCol:    6,
		ValueCol:       7,
		DateCol:        -1,
	},
	Income: Region{
		DescriptionCol: 10,
		DateCol:        11,
		CategoryCol:    12,
		ValueCol:       13,
	},
}

// monthsByName maps the twelve canonical sheet names to months. The
// mapping is a closed enumeration: sheets with any other name are ignored
// entirely.
var monthsByName = map[string]time.Month{
	"Janeiro":   time.January,
	"Fevereiro": time.February,
	"Março":     time.March,
	"Abril":     time.April,
	"Maio":      time.May,
	"Junho":     time.June,
	"Julho":     time.July,
	"Agosto":    time.August,
	"Setembro":  time.September,
	"Outubro":   time.October,
	"Novembro":  time.November,
	"Dezembro":  time.December,
}

// SheetMonth returns the month a sheet name maps to, or false when the
// sheet does not represent a calendar month.
func SheetMonth(name string) (time.Month, bool) {
	m, ok := monthsByName[name]
	return m, ok
}
