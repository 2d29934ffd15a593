package port

import (
	"context"
	"time"

	"github.com/fjallet/uploadbox-go/internal/db"
	"github.com/fjallet/uploadbox-go/internal/model"
)

// UploadRepository defines persistence operations for upload records.
type UploadRepository interface {
	Create(ctx context.Context, upload *model.Upload) error
	GetByID(ctx context.Context, ID db.UUID) (*model.Upload, error)
	// ListByOwner returns the owner's records most recent first; records
	// without an uploaded_at timestamp sort as newest.
	ListByOwner(ctx context.Context, ownerID db.UUID) ([]model.Upload, error)
	UpdateAnalysis(ctx context.Context, ID db.UUID, analysis string) error
	ExistsByStoragePath(ctx context.Context, storagePath string) (bool, error)
}

// UserRepository defines persistence operations for account identities.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByID(ctx context.Context, ID db.UUID) (*model.User, error)
	SetVerificationCode(ctx context.Context, ID db.UUID, codeHash string, expiresAt time.Time) error
	MarkVerified(ctx context.Context, ID db.UUID) error
}
