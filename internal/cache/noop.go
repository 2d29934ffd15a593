package cache

import (
	"context"
	"time"

	"github.com/fjallet/uploadbox-go/internal/port"
)

type NoopCache struct{}

// compile-time check: *NoopCache must satisfy port.Cache
var _ port.Cache = (*NoopCache)(nil)

func NewNoop() *NoopCache {
	return &NoopCache{}
}

func (n *NoopCache) GetDownloadURL(ctx context.Context, storagePath string) (string, error) {
	return "", nil // always cache miss
}

func (n *NoopCache) SetDownloadURL(ctx context.Context, storagePath, url string, ttl time.Duration) {
}

func (n *NoopCache) DeleteDownloadURL(ctx context.Context, storagePath string) error { return nil }
