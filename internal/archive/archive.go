// Package archive keeps a copy of every imported workbook in a GCS bucket
// so a bad import can be traced back to its source file.
package archive

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path"
	"time"

	"cloud.google.com/go/storage"
)

// WorkbookArchive uploads raw workbook bytes to a bucket.
type WorkbookArchive struct {
	client *storage.Client
	bucket string
}

// New creates an archive over the given bucket. Application Default
// Credentials are assumed, as with the Firestore client.
func New(ctx context.Context, bucket string) (*WorkbookArchive, error) {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("create storage client: %w", err)
	}
	return &WorkbookArchive{client: client, bucket: bucket}, nil
}

// Store uploads the workbook under imports/<userID>/<timestamp>-<filename>
// and returns the object name.
func (a *WorkbookArchive) Store(ctx context.Context, userID, filename string, data []byte) (string, error) {
	object := path.Join("imports", userID,
		fmt.Sprintf("%s-%s", time.Now().UTC().Format("20060102T150405"), filename))

	ctx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()

	w := a.client.Bucket(a.bucket).Object(object).NewWriter(ctx)
	if _, err := io.Copy(w, bytes.NewReader(data)); err != nil {
		_ = w.Close()
		return "", fmt.Errorf("copy workbook to GCS writer: %w", err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("finalize upload: %w", err)
	}
	return object, nil
}

// Close releases the underlying storage client.
func (a *WorkbookArchive) Close() error {
	return a.client.Close()
}
