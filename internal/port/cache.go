package port

import (
	"context"
	"time"
)

// Cache provides caching for resolved download URLs, keyed by storage path.
// A miss is ("", nil).
type Cache interface {
	GetDownloadURL(ctx context.Context, storagePath string) (string, error)
	SetDownloadURL(ctx context.Context, storagePath, url string, ttl time.Duration)
	DeleteDownloadURL(ctx context.Context, storagePath string) error
}
