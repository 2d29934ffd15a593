package account

import (
	"sync"

	"github.com/fjallet/uploadbox-go/internal/db"
)

type SessionEventKind int

const (
	SessionStarted SessionEventKind = iota
	SessionEnded
)

// SessionEvent is broadcast whenever an identity signs in or out. Feed
// subscriptions watch for SessionEnded to tear themselves down.
type SessionEvent struct {
	Kind   SessionEventKind
	UserID db.UUID
}

// SessionBroadcaster fans session events out to in-process listeners.
type SessionBroadcaster struct {
	mu   sync.Mutex
	subs map[chan SessionEvent]struct{}
}

func NewSessionBroadcaster() *SessionBroadcaster {
	return &SessionBroadcaster{subs: make(map[chan SessionEvent]struct{})}
}

// Subscribe returns a channel of session events and a stop function. The
// channel is buffered; a listener that falls behind drops events rather
// than blocking the broadcaster.
func (b *SessionBroadcaster) Subscribe() (<-chan SessionEvent, func()) {
	ch := make(chan SessionEvent, 4)

	b.mu.Lock()
	b.subs[ch] = struct{}{}
	b.mu.Unlock()

	var once sync.Once
	stop := func() {
		once.Do(func() {
			b.mu.Lock()
			delete(b.subs, ch)
			b.mu.Unlock()
			close(ch)
		})
	}
	return ch, stop
}

func (b *SessionBroadcaster) Started(userID db.UUID) {
	b.broadcast(SessionEvent{Kind: SessionStarted, UserID: userID})
}

func (b *SessionBroadcaster) Ended(userID db.UUID) {
	b.broadcast(SessionEvent{Kind: SessionEnded, UserID: userID})
}

func (b *SessionBroadcaster) broadcast(ev SessionEvent) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for ch := range b.subs {
		select {
		case ch <- ev:
		default:
		}
	}
}
