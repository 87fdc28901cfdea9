package importer

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mfcastro/financas/backend/internal/model"
	"github.com/mfcastro/financas/backend/internal/store"
)

// DefaultBatchSize bounds how many records go into one store call.
const DefaultBatchSize = 50

// BatchSubmitter persists normalized records in contiguous chunks,
// strictly one after another. A failed chunk aborts the run: earlier
// chunks stay committed, the failing and later chunks are never submitted.
type BatchSubmitter struct {
	store     store.Store
	batchSize int
}

// NewBatchSubmitter returns a submitter with the default batch size.
func NewBatchSubmitter(s store.Store) *BatchSubmitter {
	return &BatchSubmitter{store: s, batchSize: DefaultBatchSize}
}

// NewBatchSubmitterWithSize returns a submitter with a custom batch size.
func NewBatchSubmitterWithSize(s store.Store, batchSize int) *BatchSubmitter {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	return &BatchSubmitter{store: s, batchSize: batchSize}
}

// Submit stamps ownership onto the records and persists them in order.
// It returns how many records were committed, which on error is the count
// from the chunks before the failure point.
func (b *BatchSubmitter) Submit(ctx context.Context, userID string, records []*model.Transaction) (int, error) {
	now := time.Now().UTC()
	for _, rec := range records {
		rec.ID = uuid.New().String()
		rec.UserID = userID
		rec.CreatedAt = now
	}

	submitted := 0
	for start := 0; start < len(records); start += b.batchSize {
		end := start + b.batchSize
		if end > len(records) {
			end = len(records)
		}
		chunk := records[start:end]

		if err := b.store.BatchCreateTransactions(ctx, chunk); err != nil {
			return submitted, fmt.Errorf("failed to submit batch starting at record %d: %w", start, err)
		}
		submitted += len(chunk)
	}
	return submitted, nil
}
