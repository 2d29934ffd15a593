package account

import (
	"testing"
	"time"

	"github.com/fjallet/uploadbox-go/internal/db"
	"github.com/golang-jwt/jwt/v4"
)

func TestJWTManager_IssueAndParse(t *testing.T) {
	userID := db.NewUUID()
	m := NewJWTManager("test-secret", time.Hour)

	signed, err := m.Issue(userID)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(signed, claims, func(tok *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	if err != nil || !token.Valid {
		t.Fatalf("parse: %v", err)
	}
	if claims.Subject != userID.String() {
		t.Errorf("sub = %q; want %q", claims.Subject, userID)
	}
	if claims.ExpiresAt == nil || time.Until(claims.ExpiresAt.Time) > time.Hour+time.Minute {
		t.Errorf("unexpected expiry %v", claims.ExpiresAt)
	}
}

func TestJWTManager_WrongSecretRejected(t *testing.T) {
	m := NewJWTManager("test-secret", time.Hour)
	signed, err := m.Issue(db.NewUUID())
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	_, err = jwt.ParseWithClaims(signed, &jwt.RegisteredClaims{}, func(tok *jwt.Token) (interface{}, error) {
		return []byte("other-secret"), nil
	})
	if err == nil {
		t.Fatal("expected verification to fail with the wrong secret")
	}
}

func TestSessionBroadcaster_FanOutAndStop(t *testing.T) {
	b := NewSessionBroadcaster()
	userID := db.NewUUID()

	ch1, stop1 := b.Subscribe()
	ch2, stop2 := b.Subscribe()
	defer stop2()

	b.Ended(userID)
	for i, ch := range []<-chan SessionEvent{ch1, ch2} {
		select {
		case ev := <-ch:
			if ev.Kind != SessionEnded || ev.UserID != userID {
				t.Errorf("listener %d: event = %+v; want SessionEnded", i, ev)
			}
		case <-time.After(time.Second):
			t.Fatalf("listener %d got no event", i)
		}
	}

	stop1()
	stop1() // idempotent
	if _, ok := <-ch1; ok {
		t.Error("expected the channel to close after stop")
	}

	// a stopped listener no longer blocks or receives
	b.Started(userID)
	select {
	case ev := <-ch2:
		if ev.Kind != SessionStarted {
			t.Errorf("event = %+v; want SessionStarted", ev)
		}
	case <-time.After(time.Second):
		t.Fatal("remaining listener got no event")
	}
}
