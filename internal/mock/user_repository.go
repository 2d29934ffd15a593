package mock

import (
	"context"
	"database/sql"
	"time"

	"github.com/fjallet/uploadbox-go/internal/db"
	"github.com/fjallet/uploadbox-go/internal/model"
)

// MockUserRepo implements user repository operations for tests. A nil
// UserRecord means every lookup misses with sql.ErrNoRows.
type MockUserRepo struct {
	UserRecord *model.User

	GetErr        error
	CreateErr     error
	SetCodeErr    error
	MarkVerifyErr error

	Created            *model.User
	GetByEmailCalled   bool
	GetByIDCalled      bool
	SetCodeCalled      bool
	SetCodeID          db.UUID
	SetCodeHash        string
	SetCodeExpiresAt   time.Time
	MarkVerifiedCalled bool
	MarkVerifiedID     db.UUID
}

func (m *MockUserRepo) Create(ctx context.Context, user *model.User) error {
	m.Created = user
	return m.CreateErr
}

func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	m.GetByEmailCalled = true
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	if m.UserRecord == nil {
		return nil, sql.ErrNoRows
	}
	return m.UserRecord, nil
}

func (m *MockUserRepo) GetByID(ctx context.Context, id db.UUID) (*model.User, error) {
	m.GetByIDCalled = true
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	if m.UserRecord == nil {
		return nil, sql.ErrNoRows
	}
	return m.UserRecord, nil
}

func (m *MockUserRepo) SetVerificationCode(ctx context.Context, id db.UUID, codeHash string, expiresAt time.Time) error {
	m.SetCodeCalled = true
	m.SetCodeID = id
	m.SetCodeHash = codeHash
	m.SetCodeExpiresAt = expiresAt
	return m.SetCodeErr
}

func (m *MockUserRepo) MarkVerified(ctx context.Context, id db.UUID) error {
	m.MarkVerifiedCalled = true
	m.MarkVerifiedID = id
	return m.MarkVerifyErr
}
