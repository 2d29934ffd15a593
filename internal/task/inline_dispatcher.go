package task

import (
	"context"
	"log"

	"github.com/fjallet/uploadbox-go/internal/db"
	"github.com/fjallet/uploadbox-go/internal/port"
)

// InlineDispatcher runs the analyse step in-process when no Redis address is
// configured, so the flow still completes without a worker.
type InlineDispatcher struct {
	analyser port.UploadAnalyser
}

// compile-time check
var _ port.TaskDispatcher = (*InlineDispatcher)(nil)

func NewInlineDispatcher(analyser port.UploadAnalyser) *InlineDispatcher {
	return &InlineDispatcher{analyser: analyser}
}

func (d *InlineDispatcher) EnqueueAnalyseUpload(ctx context.Context, id db.UUID) error {
	log.Printf("no task queue configured, analysing upload #%s inline...", id)
	return d.analyser.AnalyseUpload(ctx, id)
}
