package api_context

import (
	"context"

	"github.com/fjallet/uploadbox-go/internal/db"
)

type ctxKey string

const (
	RecordIDKey   ctxKey = "recordID"
	AuthUserIDKey ctxKey = "authUserID"
)

func RecordIDFromContext(ctx context.Context) (db.UUID, bool) {
	id, ok := ctx.Value(RecordIDKey).(db.UUID)
	return id, ok
}

func AuthUserIDFromContext(ctx context.Context) (db.UUID, bool) {
	id, ok := ctx.Value(AuthUserIDKey).(db.UUID)
	return id, ok
}
