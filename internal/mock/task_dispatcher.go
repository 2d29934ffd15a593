package mock

import (
	"context"

	"github.com/fjallet/uploadbox-go/internal/db"
)

// Dispatcher implements the task dispatcher for tests.
type Dispatcher struct {
	EnqueueErr error

	EnqueueCalled bool
	EnqueuedID    db.UUID
}

func (m *Dispatcher) EnqueueAnalyseUpload(ctx context.Context, id db.UUID) error {
	m.EnqueueCalled = true
	m.EnqueuedID = id
	return m.EnqueueErr
}
