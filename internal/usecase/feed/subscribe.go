package feed

import (
	"context"
	"log"
	"sync"

	"github.com/fjallet/uploadbox-go/internal/db"
	"github.com/fjallet/uploadbox-go/internal/port"
)

type subscriberSrv struct {
	lister   port.UploadLister
	notifier port.FeedNotifier
}

// compile-time check: *subscriberSrv must satisfy port.FeedSubscriber
var _ port.FeedSubscriber = (*subscriberSrv)(nil)

func NewFeedSubscriber(lister port.UploadLister, notifier port.FeedNotifier) port.FeedSubscriber {
	return &subscriberSrv{lister: lister, notifier: notifier}
}

// Subscribe pushes an initial snapshot, then a fresh one per change poke.
// The snapshot channel holds the latest snapshot only: a slow consumer
// skips intermediate views, never sees a stale one last.
func (s *subscriberSrv) Subscribe(ctx context.Context, ownerID db.UUID) (<-chan port.FeedSnapshot, func(), error) {
	pokes, stopPokes, err := s.notifier.SubscribeChanges(ctx, ownerID)
	if err != nil {
		return nil, nil, err
	}

	out := make(chan port.FeedSnapshot, 1)
	done := make(chan struct{})

	push := func() {
		snapshot, err := s.lister.ListUploads(ctx, ownerID)
		if err != nil {
			log.Printf("could not refresh feed for owner #%s: %v", ownerID, err)
			return
		}
		// drop the undelivered previous snapshot, latest wins
		select {
		case <-out:
		default:
		}
		select {
		case out <- snapshot:
		default:
		}
	}

	go func() {
		defer close(out)
		push()
		for {
			select {
			case <-done:
				return
			case <-ctx.Done():
				return
			case _, ok := <-pokes:
				if !ok {
					return
				}
				push()
			}
		}
	}()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			close(done)
			stopPokes()
		})
	}
	return out, cancel, nil
}
