package store

import (
	"context"
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mfcastro/financas/backend/internal/model"
)

func newTx(userID, desc string, date time.Time) *model.Transaction {
	return &model.Transaction{
		UserID:        userID,
		Description:   desc,
		Amount:        100,
		Category:      "Outros",
		Date:          date,
		Kind:          model.KindExpense,
		PaymentMethod: model.PaymentDebit,
		CreatedAt:     time.Now().UTC(),
	}
}

func TestMemoryStoreCreateGetDelete(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStore()

	tx := newTx("user-1", "Mercado", time.Date(2025, time.May, 10, 0, 0, 0, 0, time.UTC))
	require.NoError(t, m.CreateTransaction(ctx, tx))
	require.NotEmpty(t, tx.ID)

	got, err := m.GetTransaction(ctx, tx.ID)
	require.NoError(t, err)
	assert.Equal(t, "Mercado", got.Description)

	require.NoError(t, m.DeleteTransaction(ctx, tx.ID))
	_, err = m.GetTransaction(ctx, tx.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStoreRejectsInvalidTransaction(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStore()

	tx := newTx("user-1", "Mercado", time.Date(2025, time.May, 10, 0, 0, 0, 0, time.UTC))
	tx.Amount = math.NaN()
	assert.Error(t, m.CreateTransaction(ctx, tx))
}

func TestMemoryStoreBatchIsAllOrNothing(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStore()

	good := newTx("user-1", "Luz", time.Date(2025, time.May, 2, 0, 0, 0, 0, time.UTC))
	bad := newTx("user-1", "Água", time.Date(2025, time.May, 3, 0, 0, 0, 0, time.UTC))
	bad.Amount = math.NaN()

	err := m.BatchCreateTransactions(ctx, []*model.Transaction{good, bad})
	require.Error(t, err)

	txs, _, err := m.ListTransactions(ctx, "user-1", nil, nil, 100, "")
	require.NoError(t, err)
	assert.Empty(t, txs)
}

func TestMemoryStoreListMonthRangeDescending(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStore()

	dates := []time.Time{
		time.Date(2025, time.April, 30, 0, 0, 0, 0, time.UTC),
		time.Date(2025, time.May, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2025, time.May, 15, 0, 0, 0, 0, time.UTC),
		time.Date(2025, time.May, 31, 23, 0, 0, 0, time.UTC),
		time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC),
	}
	for i, d := range dates {
		require.NoError(t, m.CreateTransaction(ctx, newTx("user-1", fmt.Sprintf("tx-%d", i), d)))
	}
	// Another user's record inside the range must not leak in.
	require.NoError(t, m.CreateTransaction(ctx, newTx("user-2", "other", dates[2])))

	start := time.Date(2025, time.May, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, time.May, 31, 23, 59, 59, 0, time.UTC)

	txs, _, err := m.ListTransactions(ctx, "user-1", &start, &end, 100, "")
	require.NoError(t, err)
	require.Len(t, txs, 3)
	for i := 1; i < len(txs); i++ {
		assert.False(t, txs[i-1].Date.Before(txs[i].Date), "expected descending dates")
	}
}

func TestMemoryStoreListPagination(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStore()

	for i := 0; i < 5; i++ {
		d := time.Date(2025, time.May, i+1, 0, 0, 0, 0, time.UTC)
		require.NoError(t, m.CreateTransaction(ctx, newTx("user-1", fmt.Sprintf("tx-%d", i), d)))
	}

	var all []*model.Transaction
	token := ""
	pages := 0
	for {
		txs, next, err := m.ListTransactions(ctx, "user-1", nil, nil, 2, token)
		require.NoError(t, err)
		all = append(all, txs...)
		pages++
		if next == "" {
			break
		}
		token = next
	}

	assert.Equal(t, 5, len(all))
	assert.Equal(t, 3, pages)
	for i := 1; i < len(all); i++ {
		assert.False(t, all[i-1].Date.Before(all[i].Date))
	}
}

func TestPageTokenRoundTrip(t *testing.T) {
	assert.Equal(t, "", EncodePageToken(""))

	token := EncodePageToken("doc-123")
	id, err := DecodePageToken(token)
	require.NoError(t, err)
	assert.Equal(t, "doc-123", id)

	_, err = DecodePageToken("!!not-base64!!")
	assert.Error(t, err)
}
