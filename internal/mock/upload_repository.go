package mock

import (
	"context"

	"github.com/fjallet/uploadbox-go/internal/db"
	"github.com/fjallet/uploadbox-go/internal/model"
)

// MockUploadRepo implements upload repository operations for tests.
type MockUploadRepo struct {
	UploadRecord *model.Upload
	ListOut      []model.Upload

	ExistingPaths map[string]bool

	GetErr    error
	CreateErr error
	ListErr   error
	UpdateErr error
	ExistsErr error

	GetCalled      bool
	Created        *model.Upload
	ListCalled     bool
	ListOwnerID    db.UUID
	UpdatedID      db.UUID
	UpdatedAnalysis string
	UpdateCalled    bool
}

func (m *MockUploadRepo) Create(ctx context.Context, upload *model.Upload) error {
	m.Created = upload
	return m.CreateErr
}

func (m *MockUploadRepo) GetByID(ctx context.Context, id db.UUID) (*model.Upload, error) {
	m.GetCalled = true
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	return m.UploadRecord, nil
}

func (m *MockUploadRepo) ListByOwner(ctx context.Context, ownerID db.UUID) ([]model.Upload, error) {
	m.ListCalled = true
	m.ListOwnerID = ownerID
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	return m.ListOut, nil
}

func (m *MockUploadRepo) ExistsByStoragePath(ctx context.Context, storagePath string) (bool, error) {
	if m.ExistsErr != nil {
		return false, m.ExistsErr
	}
	return m.ExistingPaths[storagePath], nil
}

func (m *MockUploadRepo) UpdateAnalysis(ctx context.Context, id db.UUID, analysis string) error {
	m.UpdateCalled = true
	m.UpdatedID = id
	m.UpdatedAnalysis = analysis
	return m.UpdateErr
}
