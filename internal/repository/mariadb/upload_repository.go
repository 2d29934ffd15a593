package mariadb

import (
	"context"
	"database/sql"
	"log"

	"github.com/fjallet/uploadbox-go/internal/db"
	"github.com/fjallet/uploadbox-go/internal/model"
	"github.com/fjallet/uploadbox-go/internal/port"
)

type UploadRepository struct {
	db *sql.DB
}

// compile-time check: *UploadRepository must satisfy port.UploadRepository
var _ port.UploadRepository = (*UploadRepository)(nil)

func NewUploadRepository(db *sql.DB) *UploadRepository {
	return &UploadRepository{db: db}
}

func (r *UploadRepository) Create(ctx context.Context, upload *model.Upload) error {
	log.Printf("creating database record for upload #%s, owned by #%s...", upload.ID, upload.OwnerID)

	const query = `
      INSERT INTO uploads
        (id, owner_id, file_name, storage_path, media_kind, analysis, metadata)
      VALUES (?, ?, ?, ?, ?, ?, ?)
    `
	_, err := r.db.ExecContext(ctx, query,
		upload.ID, upload.OwnerID, upload.FileName,
		upload.StoragePath, upload.MediaKind,
		upload.Analysis, upload.Metadata,
	)
	if err != nil {
		return err
	}

	return nil
}

func (r *UploadRepository) GetByID(ctx context.Context, ID db.UUID) (*model.Upload, error) {
	log.Printf("fetching upload #%s from the database...", ID)

	const query = `
      SELECT id, owner_id, file_name, storage_path, media_kind, analysis, metadata, uploaded_at
      FROM uploads
      WHERE id = ?
    `
	row := r.db.QueryRowContext(ctx, query, ID)
	var upload model.Upload
	if err := row.Scan(
		&upload.ID, &upload.OwnerID, &upload.FileName,
		&upload.StoragePath, &upload.MediaKind,
		&upload.Analysis, &upload.Metadata, &upload.UploadedAt,
	); err != nil {
		return nil, err
	}

	return &upload, nil
}

func (r *UploadRepository) ListByOwner(ctx context.Context, ownerID db.UUID) ([]model.Upload, error) {
	log.Printf("listing uploads owned by #%s from the database...", ownerID)

	// records still missing their server timestamp sort as newest
	const query = `
      SELECT id, owner_id, file_name, storage_path, media_kind, analysis, metadata, uploaded_at
      FROM uploads
      WHERE owner_id = ?
      ORDER BY uploaded_at IS NULL DESC, uploaded_at DESC, id
    `
	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Printf("failed to close rows: %v", err)
		}
	}()

	var uploads []model.Upload
	for rows.Next() {
		var upload model.Upload
		if err := rows.Scan(
			&upload.ID, &upload.OwnerID, &upload.FileName,
			&upload.StoragePath, &upload.MediaKind,
			&upload.Analysis, &upload.Metadata, &upload.UploadedAt,
		); err != nil {
			return nil, err
		}
		uploads = append(uploads, upload)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return uploads, nil
}

func (r *UploadRepository) ExistsByStoragePath(ctx context.Context, storagePath string) (bool, error) {
	log.Printf("checking for a record referencing file %q...", storagePath)

	const query = `
      SELECT EXISTS(SELECT 1 FROM uploads WHERE storage_path = ?)
    `
	var exists bool
	if err := r.db.QueryRowContext(ctx, query, storagePath).Scan(&exists); err != nil {
		return false, err
	}

	return exists, nil
}

func (r *UploadRepository) UpdateAnalysis(ctx context.Context, ID db.UUID, analysis string) error {
	log.Printf("updating analysis of upload #%s...", ID)

	const query = `
      UPDATE uploads
      SET analysis = ?
      WHERE id = ?
    `
	_, err := r.db.ExecContext(ctx, query, analysis, ID)
	if err != nil {
		return err
	}

	return nil
}
