package worker

import (
	"context"
	"fmt"

	"github.com/fjallet/uploadbox-go/internal/db"
	"github.com/fjallet/uploadbox-go/internal/logger"
	"github.com/fjallet/uploadbox-go/internal/port"
	"github.com/fjallet/uploadbox-go/internal/task"
	"github.com/google/uuid"
)

// AnalyseUploadHandler runs the analyse step for one queued record.
func AnalyseUploadHandler(ctx context.Context, p task.AnalyseUploadPayload, svc port.UploadAnalyser) error {
	id, err := uuid.Parse(p.UploadID)
	if err != nil {
		return fmt.Errorf("invalid upload ID %q: %w", p.UploadID, err)
	}

	if err := svc.AnalyseUpload(ctx, db.UUID(id)); err != nil {
		logger.Errorf(ctx, "❌  Failed to analyse upload #%s: %v", p.UploadID, err)
		return err
	}

	logger.Infof(ctx, "✅  Successfully analysed upload #%s", p.UploadID)
	return nil
}
