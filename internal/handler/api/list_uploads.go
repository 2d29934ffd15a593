package api

import (
	"log"
	"net/http"

	"github.com/fjallet/uploadbox-go/internal/api_context"
	"github.com/fjallet/uploadbox-go/internal/port"
)

// ListUploadsHandler resolves one snapshot of the caller's uploads.
func ListUploadsHandler(svc port.UploadLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ownerID, ok := api_context.AuthUserIDFromContext(r.Context())
		if !ok {
			WriteError(w, http.StatusUnauthorized, "unauthorized", nil)
			return
		}

		snapshot, err := svc.ListUploads(r.Context(), ownerID)
		if err != nil {
			WriteError(w, http.StatusInternalServerError, "could not list uploads", err)
			return
		}

		RespondJSON(w, http.StatusOK, snapshot)
		log.Printf("✅  Served %d uploads for account #%s", len(snapshot), ownerID)
	}
}
