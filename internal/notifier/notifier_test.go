package notifier

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/fjallet/uploadbox-go/internal/db"
	"github.com/redis/go-redis/v9"
)

func makeTestNotifier(t *testing.T) (*RedisNotifier, *miniredis.Miniredis) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis.Run: %v", err)
	}
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return &RedisNotifier{client: rdb}, mr
}

func waitPoke(t *testing.T, pokes <-chan struct{}) {
	t.Helper()
	select {
	case <-pokes:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for a poke")
	}
}

func TestRedisNotifier_PublishReachesSubscriber(t *testing.T) {
	n, mr := makeTestNotifier(t)
	defer mr.Close()
	ctx := context.Background()
	owner := db.NewUUID()

	pokes, stop, err := n.SubscribeChanges(ctx, owner)
	if err != nil {
		t.Fatalf("SubscribeChanges: %v", err)
	}
	defer stop()

	if err := n.PublishChange(ctx, owner); err != nil {
		t.Fatalf("PublishChange: %v", err)
	}
	waitPoke(t, pokes)
}

func TestRedisNotifier_OtherOwnerNotPoked(t *testing.T) {
	n, mr := makeTestNotifier(t)
	defer mr.Close()
	ctx := context.Background()

	pokes, stop, err := n.SubscribeChanges(ctx, db.NewUUID())
	if err != nil {
		t.Fatalf("SubscribeChanges: %v", err)
	}
	defer stop()

	if err := n.PublishChange(ctx, db.NewUUID()); err != nil {
		t.Fatalf("PublishChange: %v", err)
	}
	select {
	case <-pokes:
		t.Error("received a poke for another owner's change")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestRedisNotifier_StopClosesChannel(t *testing.T) {
	n, mr := makeTestNotifier(t)
	defer mr.Close()
	owner := db.NewUUID()

	pokes, stop, err := n.SubscribeChanges(context.Background(), owner)
	if err != nil {
		t.Fatalf("SubscribeChanges: %v", err)
	}
	stop()
	stop() // idempotent

	select {
	case _, ok := <-pokes:
		if ok {
			t.Error("expected closed channel after stop, got a poke")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("channel not closed after stop")
	}
}

func TestRedisNotifier_SubscribeFailsWhenRedisDown(t *testing.T) {
	n, mr := makeTestNotifier(t)
	mr.Close()

	if _, _, err := n.SubscribeChanges(context.Background(), db.NewUUID()); err == nil {
		t.Fatal("expected subscribe error with Redis down, got nil")
	}
}

func TestMemoryNotifier_PublishReachesSubscriber(t *testing.T) {
	n := NewMemoryNotifier()
	ctx := context.Background()
	owner := db.NewUUID()

	pokes, stop, err := n.SubscribeChanges(ctx, owner)
	if err != nil {
		t.Fatalf("SubscribeChanges: %v", err)
	}
	defer stop()

	if err := n.PublishChange(ctx, owner); err != nil {
		t.Fatalf("PublishChange: %v", err)
	}
	waitPoke(t, pokes)

	// pending pokes coalesce instead of blocking the publisher
	if err := n.PublishChange(ctx, owner); err != nil {
		t.Fatalf("PublishChange: %v", err)
	}
	if err := n.PublishChange(ctx, owner); err != nil {
		t.Fatalf("PublishChange: %v", err)
	}
	waitPoke(t, pokes)
}

func TestMemoryNotifier_StopRemovesSubscription(t *testing.T) {
	n := NewMemoryNotifier()
	ctx := context.Background()
	owner := db.NewUUID()

	pokes, stop, err := n.SubscribeChanges(ctx, owner)
	if err != nil {
		t.Fatalf("SubscribeChanges: %v", err)
	}
	stop()
	stop() // idempotent

	if _, ok := <-pokes; ok {
		t.Error("expected closed channel after stop")
	}
	if err := n.PublishChange(ctx, owner); err != nil {
		t.Fatalf("PublishChange after stop: %v", err)
	}
}
