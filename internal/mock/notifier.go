package mock

import (
	"context"

	"github.com/fjallet/uploadbox-go/internal/db"
)

// FeedNotifier implements the change notifier for tests. Pokes is the
// channel handed to subscribers; push to it to simulate a change.
type FeedNotifier struct {
	Pokes        chan struct{}
	PublishErr   error
	SubscribeErr error

	PublishCalled   bool
	PublishedOwner  db.UUID
	PublishCount    int
	SubscribeCalled bool
	StopCalled      bool
}

func (m *FeedNotifier) PublishChange(ctx context.Context, ownerID db.UUID) error {
	m.PublishCalled = true
	m.PublishedOwner = ownerID
	m.PublishCount++
	return m.PublishErr
}

func (m *FeedNotifier) SubscribeChanges(ctx context.Context, ownerID db.UUID) (<-chan struct{}, func(), error) {
	m.SubscribeCalled = true
	if m.SubscribeErr != nil {
		return nil, nil, m.SubscribeErr
	}
	if m.Pokes == nil {
		m.Pokes = make(chan struct{}, 1)
	}
	return m.Pokes, func() { m.StopCalled = true }, nil
}
