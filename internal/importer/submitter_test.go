package importer

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mfcastro/financas/backend/internal/model"
	"github.com/mfcastro/financas/backend/internal/store"
)

// recordingStore wraps a memory store and records every batch call. When
// failOn is set, the corresponding call (1-based) returns an error without
// persisting anything.
type recordingStore struct {
	store.Store
	batchSizes []int
	failOn     int
}

func newRecordingStore(failOn int) *recordingStore {
	return &recordingStore{Store: store.NewMemoryStore(), failOn: failOn}
}

func (r *recordingStore) BatchCreateTransactions(ctx context.Context, txs []*model.Transaction) error {
	r.batchSizes = append(r.batchSizes, len(txs))
	if r.failOn != 0 && len(r.batchSizes) == r.failOn {
		return errors.New("record store unavailable")
	}
	return r.Store.BatchCreateTransactions(ctx, txs)
}

func makeRecords(n int) []*model.Transaction {
	records := make([]*model.Transaction, n)
	for i := range records {
		records[i] = &model.Transaction{
			Description:   fmt.Sprintf("Gasto %d", i),
			Amount:        10,
			Category:      "Outros",
			Date:          time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC),
			Kind:          model.KindExpense,
			PaymentMethod: model.PaymentDebit,
		}
	}
	return records
}

func countStored(t *testing.T, s store.Store, userID string) int {
	t.Helper()
	total := 0
	token := ""
	for {
		txs, next, err := s.ListTransactions(context.Background(), userID, nil, nil, 1000, token)
		require.NoError(t, err)
		total += len(txs)
		if next == "" {
			return total
		}
		token = next
	}
}

func TestSubmitChunking(t *testing.T) {
	tests := []struct {
		records   int
		wantSizes []int
	}{
		{0, nil},
		{1, []int{1}},
		{50, []int{50}},
		{51, []int{50, 1}},
		{120, []int{50, 50, 20}},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d records", tt.records), func(t *testing.T) {
			rs := newRecordingStore(0)
			sub := NewBatchSubmitter(rs)

			submitted, err := sub.Submit(context.Background(), "user-1", makeRecords(tt.records))
			require.NoError(t, err)
			assert.Equal(t, tt.records, submitted)
			assert.Equal(t, tt.wantSizes, rs.batchSizes)
			assert.Equal(t, tt.records, countStored(t, rs, "user-1"))
		})
	}
}

func TestSubmitStampsOwnership(t *testing.T) {
	rs := newRecordingStore(0)
	sub := NewBatchSubmitter(rs)

	records := makeRecords(3)
	_, err := sub.Submit(context.Background(), "user-7", records)
	require.NoError(t, err)

	for _, rec := range records {
		assert.NotEmpty(t, rec.ID)
		assert.Equal(t, "user-7", rec.UserID)
		assert.False(t, rec.CreatedAt.IsZero())
	}
}

func TestSubmitAbortsAtFailedChunk(t *testing.T) {
	rs := newRecordingStore(2)
	sub := NewBatchSubmitter(rs)

	submitted, err := sub.Submit(context.Background(), "user-1", makeRecords(120))
	require.Error(t, err)

	// The first chunk stays committed; the failing and later chunks are
	// never persisted, and the third chunk is never attempted.
	assert.Equal(t, 50, submitted)
	assert.Equal(t, []int{50, 50}, rs.batchSizes)
	assert.Equal(t, 50, countStored(t, rs, "user-1"))
}

func TestSubmitCustomBatchSize(t *testing.T) {
	rs := newRecordingStore(0)
	sub := NewBatchSubmitterWithSize(rs, 7)

	submitted, err := sub.Submit(context.Background(), "user-1", makeRecords(16))
	require.NoError(t, err)
	assert.Equal(t, 16, submitted)
	assert.Equal(t, []int{7, 7, 2}, rs.batchSizes)
}
