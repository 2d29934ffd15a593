package mock

import (
	"context"
	"time"
)

// Cache implements the download URL cache for tests.
type Cache struct {
	URLOut string
	GetErr error

	GetCalled    bool
	SetCalled    bool
	SetPath      string
	SetURL       string
	SetTTL       time.Duration
	DeleteCalled bool
	DeleteErr    error
}

func (m *Cache) GetDownloadURL(ctx context.Context, storagePath string) (string, error) {
	m.GetCalled = true
	if m.GetErr != nil {
		return "", m.GetErr
	}
	return m.URLOut, nil
}

func (m *Cache) SetDownloadURL(ctx context.Context, storagePath, url string, ttl time.Duration) {
	m.SetCalled = true
	m.SetPath = storagePath
	m.SetURL = url
	m.SetTTL = ttl
}

func (m *Cache) DeleteDownloadURL(ctx context.Context, storagePath string) error {
	m.DeleteCalled = true
	return m.DeleteErr
}
