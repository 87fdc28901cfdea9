package store

import (
	"context"
	"encoding/base64"
	"errors"
	"time"

	"github.com/mfcastro/financas/backend/internal/model"
)

// ErrNotFound is returned when a transaction ID does not exist.
var ErrNotFound = errors.New("transaction not found")

// Store defines the record-store operations used by the service. Every call
// is atomic on its own; BatchCreateTransactions is all-or-nothing for the
// records it receives, and nothing more.
type Store interface {
	CreateTransaction(ctx context.Context, tx *model.Transaction) error
	BatchCreateTransactions(ctx context.Context, txs []*model.Transaction) error
	GetTransaction(ctx context.Context, id string) (*model.Transaction, error)
	DeleteTransaction(ctx context.Context, id string) error

	// ListTransactions returns the user's transactions within the optional
	// date range, ordered descending by date. Pagination is cursor-based
	// via opaque page tokens.
	ListTransactions(ctx context.Context, userID string, startDate, endDate *time.Time, pageSize int32, pageToken string) ([]*model.Transaction, string, error)
}

// EncodePageToken encodes a document ID into a page token.
func EncodePageToken(docID string) string {
	if docID == "" {
		return ""
	}
	return base64.URLEncoding.EncodeToString([]byte(docID))
}

// DecodePageToken decodes a page token back to a document ID.
func DecodePageToken(token string) (string, error) {
	if token == "" {
		return "", nil
	}
	b, err := base64.URLEncoding.DecodeString(token)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
