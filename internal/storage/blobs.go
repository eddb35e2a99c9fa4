// Package storage persists pipeline artifacts to Google Cloud Storage.
//
// Each artifact category lives in its own bucket: the original document
// stream, the extracted text, the decoded QR data, the classified or
// extracted fields, and the classification comments. Objects share the
// document name across buckets, so one invoice fans out into up to five
// objects with the same name.
package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"cloud.google.com/go/storage"
	"github.com/rs/zerolog"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"

	"docintake/internal/logger"
)

// Category identifies which bucket an artifact belongs to.
type Category string

const (
	// CategoryStream holds the original document bytes.
	CategoryStream Category = "stream"

	// CategoryText holds extracted page texts as a JSON array.
	CategoryText Category = "text"

	// CategoryQR holds decoded QR code data as a JSON object.
	CategoryQR Category = "qr"

	// CategoryFields holds classified or extracted fields as a JSON object.
	CategoryFields Category = "fields"

	// CategoryComments holds classification comments as a JSON array.
	CategoryComments Category = "comments"
)

// Common storage errors
var (
	// ErrBlobNotFound is returned when the requested object does not exist.
	ErrBlobNotFound = errors.New("blob not found")

	// ErrBucketNotConfigured is returned when no bucket is configured for
	// the requested category.
	ErrBucketNotConfigured = errors.New("no bucket configured for category")
)

// BlobConfig maps artifact categories to bucket names.
type BlobConfig struct {
	DocumentsBucket string
	TextBucket      string
	QRBucket        string
	FieldsBucket    string
	CommentsBucket  string
}

// BlobStore reads and writes pipeline artifacts in GCS.
type BlobStore struct {
	client  *storage.Client
	buckets map[Category]string
	log     zerolog.Logger
}

// NewBlobStore creates a store with credentials from the environment
// (GOOGLE_CREDENTIALS inline JSON or GOOGLE_APPLICATION_CREDENTIALS file
// path, the client library resolves the latter itself).
func NewBlobStore(ctx context.Context, config BlobConfig) (*BlobStore, error) {
	const op = "NewBlobStore"

	var clientOptions []option.ClientOption
	if credJSON := os.Getenv("GOOGLE_CREDENTIALS"); credJSON != "" {
		clientOptions = append(clientOptions, option.WithCredentialsJSON([]byte(credJSON)))
	}

	client, err := storage.NewClient(ctx, clientOptions...)
	if err != nil {
		return nil, fmt.Errorf("storage: %s failed: %w", op, err)
	}

	return NewBlobStoreWithClient(config, client), nil
}

// NewBlobStoreWithClient creates a store with an explicit client (for
// testing).
func NewBlobStoreWithClient(config BlobConfig, client *storage.Client) *BlobStore {
	return &BlobStore{
		client: client,
		buckets: map[Category]string{
			CategoryStream:   config.DocumentsBucket,
			CategoryText:     config.TextBucket,
			CategoryQR:       config.QRBucket,
			CategoryFields:   config.FieldsBucket,
			CategoryComments: config.CommentsBucket,
		},
		log: logger.WithComponent("blob-store"),
	}
}

func (s *BlobStore) bucket(category Category) (*storage.BucketHandle, error) {
	name := s.buckets[category]
	if name == "" {
		return nil, fmt.Errorf("%w: %s", ErrBucketNotConfigured, category)
	}
	return s.client.Bucket(name), nil
}

// Write stores raw bytes under the given name, overwriting any previous
// version. Reprocessing a document must replace stale artifacts.
func (s *BlobStore) Write(ctx context.Context, category Category, name string, data []byte) error {
	const op = "Write"

	bucket, err := s.bucket(category)
	if err != nil {
		return fmt.Errorf("storage: %s failed: %w", op, err)
	}

	writer := bucket.Object(name).NewWriter(ctx)
	if _, err := io.Copy(writer, bytes.NewReader(data)); err != nil {
		_ = writer.Close()
		return fmt.Errorf("storage: %s failed for %s/%s: %w", op, category, name, err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("storage: %s failed for %s/%s: %w", op, category, name, err)
	}

	s.log.Debug().
		Str("category", string(category)).
		Str("name", name).
		Int("size_bytes", len(data)).
		Msg("Blob written")

	return nil
}

// WriteJSON marshals v and stores it under the given name.
func (s *BlobStore) WriteJSON(ctx context.Context, category Category, name string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("storage: WriteJSON failed for %s/%s: %w", category, name, err)
	}
	return s.Write(ctx, category, name, data)
}

// Read returns the raw bytes stored under the given name. Returns
// ErrBlobNotFound when the object does not exist.
func (s *BlobStore) Read(ctx context.Context, category Category, name string) ([]byte, error) {
	const op = "Read"

	bucket, err := s.bucket(category)
	if err != nil {
		return nil, fmt.Errorf("storage: %s failed: %w", op, err)
	}

	reader, err := bucket.Object(name).NewReader(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotExist) {
			return nil, fmt.Errorf("storage: %s/%s: %w", category, name, ErrBlobNotFound)
		}
		return nil, fmt.Errorf("storage: %s failed for %s/%s: %w", op, category, name, err)
	}
	defer reader.Close()

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("storage: %s failed for %s/%s: %w", op, category, name, err)
	}
	return data, nil
}

// ReadJSON reads the object stored under the given name and unmarshals it
// into v. Returns ErrBlobNotFound when the object does not exist.
func (s *BlobStore) ReadJSON(ctx context.Context, category Category, name string, v any) error {
	data, err := s.Read(ctx, category, name)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("storage: ReadJSON failed for %s/%s: %w", category, name, err)
	}
	return nil
}

// Exists reports whether an object exists under the given name.
func (s *BlobStore) Exists(ctx context.Context, category Category, name string) (bool, error) {
	const op = "Exists"

	bucket, err := s.bucket(category)
	if err != nil {
		return false, fmt.Errorf("storage: %s failed: %w", op, err)
	}

	_, err = bucket.Object(name).Attrs(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("storage: %s failed for %s/%s: %w", op, category, name, err)
	}
	return true, nil
}

// List returns the names of all objects in the category bucket with the
// given prefix, in lexical order.
func (s *BlobStore) List(ctx context.Context, category Category, prefix string) ([]string, error) {
	const op = "List"

	bucket, err := s.bucket(category)
	if err != nil {
		return nil, fmt.Errorf("storage: %s failed: %w", op, err)
	}

	it := bucket.Objects(ctx, &storage.Query{Prefix: prefix})

	var names []string
	for {
		attrs, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("storage: %s failed for %s prefix %q: %w", op, category, prefix, err)
		}
		names = append(names, attrs.Name)
	}
	return names, nil
}

// Close closes the underlying GCS client.
func (s *BlobStore) Close() error {
	if s.client != nil {
		return s.client.Close()
	}
	return nil
}
