package api

import (
	"log"
	"net/http"

	"github.com/fjallet/uploadbox-go/internal/api_context"
	"github.com/fjallet/uploadbox-go/internal/usecase/account"
)

// LogoutHandler ends the session server-side: live feed subscriptions for
// the user tear down on the broadcast. The token itself simply ages out.
func LogoutHandler(sessions *account.SessionBroadcaster) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := api_context.AuthUserIDFromContext(r.Context())
		if !ok {
			WriteError(w, http.StatusUnauthorized, "unauthorized", nil)
			return
		}

		sessions.Ended(userID)

		w.WriteHeader(http.StatusNoContent)
		log.Printf("✅  Session ended for account #%s", userID)
	}
}
