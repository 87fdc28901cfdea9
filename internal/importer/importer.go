package importer

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/mfcastro/financas/backend/internal/store"
)

// ErrNoRecords reports that no month sheet yielded any record. It is a
// soft condition: the caller shows a "nothing found" notice, not an error.
var ErrNoRecords = errors.New("no transactions found in workbook")

// Importer runs the whole pipeline: read the workbook, normalize every
// month sheet, submit the records in batches on behalf of one user.
type Importer struct {
	normalizer *Normalizer
	submitter  *BatchSubmitter

	// yearFn supplies the processing year; overridable in tests.
	yearFn func() int
}

// New builds an importer over the given store using the default worksheet
// layout and the current year.
func New(s store.Store) *Importer {
	return &Importer{
		normalizer: NewNormalizer(DefaultLayout),
		submitter:  NewBatchSubmitter(s),
		yearFn:     func() int { return time.Now().Year() },
	}
}

// Import parses the workbook stream and persists everything it yields for
// userID. It returns the number of records committed; on a failed batch
// that count covers the chunks committed before the failure, which remain
// persisted.
func (imp *Importer) Import(ctx context.Context, userID string, r io.Reader) (int, error) {
	wb, err := ReadWorkbook(r)
	if err != nil {
		return 0, err
	}

	records := imp.normalizer.NormalizeWorkbook(wb, imp.yearFn())
	if len(records) == 0 {
		return 0, ErrNoRecords
	}

	return imp.submitter.Submit(ctx, userID, records)
}
