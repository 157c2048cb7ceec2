package storage

import "context"

// BlobStore persists byte buffers under namespaced keys and hands back
// publicly fetchable URLs. Upload confirmation is best-effort for callers
// that treat the write as an audit step; PublicURL never touches the store.
type BlobStore interface {
	Put(ctx context.Context, bucket, key string, data []byte, contentType string) error
	PublicURL(bucket, key string) string
}
