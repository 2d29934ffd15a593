package api

import (
	"errors"
	"log"
	"net/http"

	"github.com/fjallet/uploadbox-go/internal/api_context"
	"github.com/fjallet/uploadbox-go/internal/policy"
	"github.com/fjallet/uploadbox-go/internal/port"
	"github.com/fjallet/uploadbox-go/internal/usecase/upload"
)

// AnalyseHandler schedules the analyse step for one of the caller's records.
func AnalyseHandler(svc port.AnalysisRequester) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ownerID, ok := api_context.AuthUserIDFromContext(r.Context())
		if !ok {
			WriteError(w, http.StatusUnauthorized, "unauthorized", nil)
			return
		}
		recordID, ok := api_context.RecordIDFromContext(r.Context())
		if !ok {
			WriteError(w, http.StatusBadRequest, "record ID is required", nil)
			return
		}

		if err := svc.RequestAnalysis(r.Context(), ownerID, recordID); err != nil {
			switch {
			case errors.Is(err, upload.ErrUploadNotFound):
				WriteError(w, http.StatusNotFound, "upload not found", nil)
			case errors.Is(err, policy.ErrDenied):
				WriteError(w, http.StatusForbidden, "access denied", nil)
			default:
				WriteError(w, http.StatusInternalServerError, "could not schedule analysis", err)
			}
			return
		}

		w.WriteHeader(http.StatusAccepted)
		log.Printf("✅  Analysis scheduled for record #%s", recordID)
	}
}
