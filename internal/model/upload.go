package model

import (
	"time"

	"github.com/fjallet/uploadbox-go/internal/db"
)

// AnalysisPending is the sentinel an upload record carries until the analyse
// step has run. It is the only field mutated after creation.
const AnalysisPending = "pending"

// Upload is the metadata record committed after a successful byte transfer.
// OwnerID and StoragePath are immutable; UploadedAt is assigned by the
// database on insert, so a record object without it has not committed yet.
type Upload struct {
	ID          db.UUID    `json:"id"`
	OwnerID     db.UUID    `json:"owner_id"`
	FileName    string     `json:"file_name"`
	StoragePath string     `json:"storage_path"`
	MediaKind   string     `json:"media_kind"`
	Analysis    string     `json:"analysis"`
	Metadata    Metadata   `json:"metadata"`
	UploadedAt  *time.Time `json:"uploaded_at"`
}
