package notifier

import (
	"context"
	"log"
	"sync"

	"github.com/fjallet/uploadbox-go/internal/db"
	"github.com/fjallet/uploadbox-go/internal/port"
)

// MemoryNotifier is an in-process broker used when no Redis address is
// configured. Single-instance deployments only.
type MemoryNotifier struct {
	mu   sync.Mutex
	subs map[string]map[chan struct{}]struct{}
}

// compile-time check: *MemoryNotifier must satisfy port.FeedNotifier
var _ port.FeedNotifier = (*MemoryNotifier)(nil)

func NewMemoryNotifier() *MemoryNotifier {
	return &MemoryNotifier{subs: make(map[string]map[chan struct{}]struct{})}
}

func (n *MemoryNotifier) PublishChange(ctx context.Context, ownerID db.UUID) error {
	log.Printf("publishing in-process feed change for owner #%s...", ownerID)

	n.mu.Lock()
	defer n.mu.Unlock()
	for ch := range n.subs[ownerID.String()] {
		select {
		case ch <- struct{}{}:
		default: // a poke is already pending, coalesce
		}
	}
	return nil
}

func (n *MemoryNotifier) SubscribeChanges(ctx context.Context, ownerID db.UUID) (<-chan struct{}, func(), error) {
	key := ownerID.String()
	ch := make(chan struct{}, 1)

	n.mu.Lock()
	if n.subs[key] == nil {
		n.subs[key] = make(map[chan struct{}]struct{})
	}
	n.subs[key][ch] = struct{}{}
	n.mu.Unlock()

	var once sync.Once
	stop := func() {
		once.Do(func() {
			n.mu.Lock()
			delete(n.subs[key], ch)
			if len(n.subs[key]) == 0 {
				delete(n.subs, key)
			}
			n.mu.Unlock()
			close(ch)
		})
	}
	return ch, stop, nil
}
