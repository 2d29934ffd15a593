package api

import (
	"log"
	"net/http"
	"time"

	"github.com/fjallet/uploadbox-go/internal/api_context"
	"github.com/fjallet/uploadbox-go/internal/port"
	"github.com/fjallet/uploadbox-go/internal/usecase/account"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// FeedWSHandler streams full feed snapshots over a websocket: one on
// connect, then one per change. The stream closes when the client goes
// away or the session ends.
func FeedWSHandler(svc port.FeedSubscriber, sessions *account.SessionBroadcaster) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ownerID, ok := api_context.AuthUserIDFromContext(r.Context())
		if !ok {
			WriteError(w, http.StatusUnauthorized, "unauthorized", nil)
			return
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Printf("❌  Websocket upgrade failed for account #%s: %v", ownerID, err)
			return
		}
		defer func() {
			if err := conn.Close(); err != nil {
				log.Printf("failed to close websocket for account #%s: %v", ownerID, err)
			}
		}()

		snapshots, cancel, err := svc.Subscribe(r.Context(), ownerID)
		if err != nil {
			log.Printf("❌  Feed subscription failed for account #%s: %v", ownerID, err)
			return
		}
		defer cancel()

		events, stopEvents := sessions.Subscribe()
		defer stopEvents()

		// drain client frames so closes are noticed
		clientGone := make(chan struct{})
		go func() {
			defer close(clientGone)
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		}()

		log.Printf("✅  Feed stream opened for account #%s", ownerID)
		for {
			select {
			case snapshot, ok := <-snapshots:
				if !ok {
					return
				}
				if err := conn.WriteJSON(snapshot); err != nil {
					log.Printf("could not push snapshot to account #%s: %v", ownerID, err)
					return
				}
			case ev := <-events:
				if ev.Kind == account.SessionEnded && ev.UserID == ownerID {
					msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "session ended")
					_ = conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(time.Second))
					log.Printf("feed stream for account #%s closed on logout", ownerID)
					return
				}
			case <-clientGone:
				return
			}
		}
	}
}
