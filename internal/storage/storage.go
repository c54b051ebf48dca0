// Package storage holds the durable object store the pipeline uploads
// documents to before any detection work starts.
package storage

import "context"

// ObjectStore is the narrow contract the ingestion pipeline needs: write
// bytes under a key, get back a stable URL. Failed uploads are fatal to the
// ingestion; stored objects are never deleted by the pipeline.
type ObjectStore interface {
	Put(ctx context.Context, key string, body []byte, contentType string) (url string, err error)
}

// ObjectDeleter removes stored objects by the URL Put returned. Kept apart
// from ObjectStore: only record removal deletes, never the pipeline.
type ObjectDeleter interface {
	Delete(ctx context.Context, url string) error
}
