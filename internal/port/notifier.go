package port

import (
	"context"

	"github.com/fjallet/uploadbox-go/internal/db"
)

// FeedNotifier carries change notifications for an owner's upload records.
// Subscribers receive at-least-once pokes, not payloads: on every poke the
// feed re-queries and republishes a full snapshot.
type FeedNotifier interface {
	PublishChange(ctx context.Context, ownerID db.UUID) error
	// SubscribeChanges returns a channel of pokes and a stop function.
	// Stopping releases the underlying subscription; the channel is closed
	// afterwards.
	SubscribeChanges(ctx context.Context, ownerID db.UUID) (<-chan struct{}, func(), error)
}
