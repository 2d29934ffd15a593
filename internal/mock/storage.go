package mock

import (
	"context"
	"io"
	"time"

	"github.com/fjallet/uploadbox-go/internal/port"
)

// Storage implements the storage interface for tests.
type Storage struct {
	// stored values
	StatInfoOut port.FileInfo
	ExistsOut   bool
	ListOut     []string
	DownloadURL string

	// captured inputs
	Bucket      string
	ObjectKey   string
	TTL         time.Duration
	SavedData   []byte
	SavedOpts   map[string]string
	SavedSize   int64
	RemovedKeys []string

	// errors
	InitBucketErr           error
	GenerateDownloadLinkErr error
	StatErr                 error
	ListFilesErr            error
	RemoveErr               error
	SaveErr                 error
	FileExistsErr           error

	// call flags
	InitBucketCalled           bool
	GenerateDownloadLinkCalled bool
	StatCalled                 bool
	ListFilesCalled            bool
	RemoveCalled               bool
	SaveCalled                 bool
	FileExistsCalled           bool
}

func (m *Storage) InitBucket(bucket string) error {
	m.InitBucketCalled = true
	m.Bucket = bucket
	return m.InitBucketErr
}

func (m *Storage) GeneratePresignedDownloadURL(ctx context.Context, bucket, fileKey string, expiry time.Duration) (string, error) {
	m.GenerateDownloadLinkCalled = true
	m.Bucket = bucket
	m.ObjectKey = fileKey
	m.TTL = expiry
	if m.GenerateDownloadLinkErr != nil {
		return "", m.GenerateDownloadLinkErr
	}
	if m.DownloadURL != "" {
		return m.DownloadURL, nil
	}
	return "https://example.com/download", nil
}

func (m *Storage) FileExists(ctx context.Context, bucket, fileKey string) (bool, error) {
	m.FileExistsCalled = true
	if m.FileExistsErr != nil {
		return false, m.FileExistsErr
	}
	return m.ExistsOut, nil
}

func (m *Storage) StatFile(ctx context.Context, bucket, fileKey string) (port.FileInfo, error) {
	m.StatCalled = true
	if m.StatErr != nil {
		return port.FileInfo{}, m.StatErr
	}
	return m.StatInfoOut, nil
}

func (m *Storage) ListFiles(ctx context.Context, bucket, prefix string) ([]string, error) {
	m.ListFilesCalled = true
	m.Bucket = bucket
	if m.ListFilesErr != nil {
		return nil, m.ListFilesErr
	}
	return m.ListOut, nil
}

func (m *Storage) RemoveFile(ctx context.Context, bucket, fileKey string) error {
	m.RemoveCalled = true
	m.ObjectKey = fileKey
	if m.RemoveErr != nil {
		return m.RemoveErr
	}
	m.RemovedKeys = append(m.RemovedKeys, fileKey)
	return nil
}

func (m *Storage) SaveFile(ctx context.Context, bucket, fileKey string, reader io.Reader, fileSize int64, opts map[string]string) error {
	m.SaveCalled = true
	m.Bucket = bucket
	m.ObjectKey = fileKey
	m.SavedSize = fileSize
	m.SavedOpts = opts
	if m.SaveErr != nil {
		return m.SaveErr
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return err
	}
	m.SavedData = data
	return nil
}
