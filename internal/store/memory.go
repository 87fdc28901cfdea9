package store

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mfcastro/financas/backend/internal/model"
)

// MemoryStore implements the Store interface with in-memory storage. It is
// used for local development and in tests.
type MemoryStore struct {
	mu           sync.RWMutex
	transactions map[string]*model.Transaction
}

// NewMemoryStore creates a new in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		transactions: make(map[string]*model.Transaction),
	}
}

func (m *MemoryStore) CreateTransaction(ctx context.Context, tx *model.Transaction) error {
	if err := tx.Validate(); err != nil {
		return fmt.Errorf("invalid transaction: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if tx.ID == "" {
		tx.ID = uuid.New().String()
	}
	m.transactions[tx.ID] = tx
	return nil
}

// BatchCreateTransactions commits every record or none: all records are
// validated up front, so a bad record rejects the whole call before any
// write happens.
func (m *MemoryStore) BatchCreateTransactions(ctx context.Context, txs []*model.Transaction) error {
	for _, tx := range txs {
		if err := tx.Validate(); err != nil {
			return fmt.Errorf("invalid transaction %q: %w", tx.Description, err)
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for _, tx := range txs {
		if tx.ID == "" {
			tx.ID = uuid.New().String()
		}
		m.transactions[tx.ID] = tx
	}
	return nil
}

func (m *MemoryStore) GetTransaction(ctx context.Context, id string) (*model.Transaction, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	tx, ok := m.transactions[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return tx, nil
}

func (m *MemoryStore) DeleteTransaction(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.transactions, id)
	return nil
}

func (m *MemoryStore) ListTransactions(ctx context.Context, userID string, startDate, endDate *time.Time, pageSize int32, pageToken string) ([]*model.Transaction, string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var matching []*model.Transaction
	for _, tx := range m.transactions {
		if tx.UserID != userID {
			continue
		}
		if startDate != nil && tx.Date.Before(*startDate) {
			continue
		}
		if endDate != nil && tx.Date.After(*endDate) {
			continue
		}
		matching = append(matching, tx)
	}

	// Date descending, ID as tiebreaker, matching the Firestore ordering.
	sort.Slice(matching, func(i, j int) bool {
		if !matching[i].Date.Equal(matching[j].Date) {
			return matching[i].Date.After(matching[j].Date)
		}
		return matching[i].ID < matching[j].ID
	})

	if pageSize <= 0 {
		pageSize = 100
	}

	startIdx := 0
	if pageToken != "" {
		cursorID, err := DecodePageToken(pageToken)
		if err != nil {
			return nil, "", fmt.Errorf("invalid page token: %w", err)
		}
		for i, tx := range matching {
			if tx.ID == cursorID {
				startIdx = i + 1
				break
			}
		}
	}
	matching = matching[startIdx:]

	var nextToken string
	if int32(len(matching)) > pageSize {
		nextToken = EncodePageToken(matching[pageSize-1].ID)
		matching = matching[:pageSize]
	}

	return matching, nextToken, nil
}
