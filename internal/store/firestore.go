package store

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"

	"github.com/mfcastro/financas/backend/internal/model"
)

const transactionsCollection = "transactions"

// FirestoreStore implements the Store interface using Firestore
type FirestoreStore struct {
	client *firestore.Client
}

// NewFirestoreStore creates a new Firestore-backed store
func NewFirestoreStore(client *firestore.Client) Store {
	return &FirestoreStore{
		client: client,
	}
}

// CreateTransaction validates and writes a single transaction document.
func (s *FirestoreStore) CreateTransaction(ctx context.Context, tx *model.Transaction) error {
	if err := tx.Validate(); err != nil {
		return fmt.Errorf("invalid transaction: %w", err)
	}

	_, err := s.client.Collection(transactionsCollection).Doc(tx.ID).Set(ctx, tx)
	return err
}

// BatchCreateTransactions writes all records inside a single Firestore
// transaction: either every record in the call is committed or none are.
// Records committed by earlier calls are unaffected by a later failure.
func (s *FirestoreStore) BatchCreateTransactions(ctx context.Context, txs []*model.Transaction) error {
	for _, tx := range txs {
		if err := tx.Validate(); err != nil {
			return fmt.Errorf("invalid transaction %q: %w", tx.Description, err)
		}
	}

	return s.client.RunTransaction(ctx, func(ctx context.Context, ft *firestore.Transaction) error {
		for _, tx := range txs {
			ref := s.client.Collection(transactionsCollection).Doc(tx.ID)
			if err := ft.Set(ref, tx); err != nil {
				return err
			}
		}
		return nil
	})
}

// GetTransaction retrieves a transaction from Firestore
func (s *FirestoreStore) GetTransaction(ctx context.Context, id string) (*model.Transaction, error) {
	doc, err := s.client.Collection(transactionsCollection).Doc(id).Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	var tx model.Transaction
	if err := doc.DataTo(&tx); err != nil {
		return nil, fmt.Errorf("failed to parse transaction: %w", err)
	}
	return &tx, nil
}

// DeleteTransaction deletes a transaction by ID
func (s *FirestoreStore) DeleteTransaction(ctx context.Context, id string) error {
	_, err := s.client.Collection(transactionsCollection).Doc(id).Delete(ctx)
	return err
}

// ListTransactions lists a user's transactions ordered descending by date.
// Firestore requires OrderBy on the inequality field first, so the query
// orders by Date then document ID; the cursor carries both.
func (s *FirestoreStore) ListTransactions(ctx context.Context, userID string, startDate, endDate *time.Time, pageSize int32, pageToken string) ([]*model.Transaction, string, error) {
	query := s.client.Collection(transactionsCollection).Query.
		Where("UserId", "==", userID)

	if startDate != nil {
		query = query.Where("Date", ">=", *startDate)
	}
	if endDate != nil {
		query = query.Where("Date", "<=", *endDate)
	}

	query = query.OrderBy("Date", firestore.Desc).OrderBy(firestore.DocumentID, firestore.Asc)

	if pageToken != "" {
		docID, err := DecodePageToken(pageToken)
		if err != nil {
			return nil, "", fmt.Errorf("invalid page token: %w", err)
		}
		// Fetch the cursor document to get its Date value for composite StartAfter
		cursorDoc, err := s.client.Collection(transactionsCollection).Doc(docID).Get(ctx)
		if err != nil {
			return nil, "", fmt.Errorf("failed to fetch cursor document: %w", err)
		}
		dateVal := cursorDoc.Data()["Date"]
		query = query.StartAfter(dateVal, docID)
	}

	if pageSize <= 0 {
		pageSize = 100
	}
	query = query.Limit(int(pageSize) + 1) // +1 to detect next page

	docs, err := query.Documents(ctx).GetAll()
	if err != nil {
		return nil, "", fmt.Errorf("failed to list transactions: %w", err)
	}

	var nextPageToken string
	if len(docs) > int(pageSize) {
		docs = docs[:pageSize]
		nextPageToken = EncodePageToken(docs[pageSize-1].Ref.ID)
	}

	txs := make([]*model.Transaction, 0, len(docs))
	for _, doc := range docs {
		var tx model.Transaction
		if err := doc.DataTo(&tx); err != nil {
			return nil, "", fmt.Errorf("failed to parse transaction: %w", err)
		}
		txs = append(txs, &tx)
	}
	return txs, nextPageToken, nil
}
