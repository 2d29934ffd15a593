package port

import (
	"context"

	"github.com/fjallet/uploadbox-go/internal/db"
)

// TaskDispatcher enqueues asynchronous work on upload records.
type TaskDispatcher interface {
	EnqueueAnalyseUpload(ctx context.Context, id db.UUID) error
}
