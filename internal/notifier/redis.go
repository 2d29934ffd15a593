package notifier

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/fjallet/uploadbox-go/internal/db"
	"github.com/fjallet/uploadbox-go/internal/port"
	"github.com/redis/go-redis/v9"
)

type RedisNotifier struct {
	client *redis.Client
}

// compile-time check: *RedisNotifier must satisfy port.FeedNotifier
var _ port.FeedNotifier = (*RedisNotifier)(nil)

func NewRedisNotifier(addr, password string) *RedisNotifier {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})

	return &RedisNotifier{client: rdb}
}

func (n *RedisNotifier) PublishChange(ctx context.Context, ownerID db.UUID) error {
	log.Printf("publishing feed change for owner #%s...", ownerID)

	if err := n.client.Publish(ctx, feedChannel(ownerID), "changed").Err(); err != nil {
		return fmt.Errorf("redis publish failed: %w", err)
	}
	return nil
}

func (n *RedisNotifier) SubscribeChanges(ctx context.Context, ownerID db.UUID) (<-chan struct{}, func(), error) {
	log.Printf("subscribing to feed changes for owner #%s...", ownerID)

	sub := n.client.Subscribe(ctx, feedChannel(ownerID))
	// force the SUBSCRIBE round-trip so a broken connection fails here
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return nil, nil, fmt.Errorf("redis subscribe failed: %w", err)
	}

	pokes := make(chan struct{}, 1)
	done := make(chan struct{})
	go func() {
		defer close(pokes)
		msgs := sub.Channel()
		for {
			select {
			case <-done:
				return
			case _, ok := <-msgs:
				if !ok {
					return
				}
				select {
				case pokes <- struct{}{}:
				default: // a poke is already pending, coalesce
				}
			}
		}
	}()

	var once sync.Once
	stop := func() {
		once.Do(func() {
			close(done)
			if err := sub.Close(); err != nil {
				log.Printf("failed to close feed subscription for owner #%s: %v", ownerID, err)
			}
		})
	}
	return pokes, stop, nil
}

func feedChannel(ownerID db.UUID) string {
	return "feed:" + ownerID.String()
}
