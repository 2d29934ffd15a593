package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fjallet/uploadbox-go/internal/api_context"
	"github.com/fjallet/uploadbox-go/internal/db"
	"github.com/go-chi/chi/v5"
)

func runRecordID(t *testing.T, rawID string) (*httptest.ResponseRecorder, db.UUID, bool) {
	t.Helper()
	var gotID db.UUID
	var gotOK bool
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID, gotOK = api_context.RecordIDFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodPost, "/uploads/"+rawID+"/analyse", nil)
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", rawID)
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

	rr := httptest.NewRecorder()
	WithRecordID()(next).ServeHTTP(rr, req)
	return rr, gotID, gotOK
}

func TestWithRecordID_ValidUUID(t *testing.T) {
	id := db.NewUUID()
	rr, gotID, gotOK := runRecordID(t, id.String())
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d; want 200", rr.Code)
	}
	if !gotOK || gotID != id {
		t.Errorf("context ID = %s (%v); want %s", gotID, gotOK, id)
	}
}

func TestWithRecordID_InvalidUUID(t *testing.T) {
	rr, _, gotOK := runRecordID(t, "definitely-not-a-uuid")
	if rr.Code != http.StatusBadRequest {
		t.Errorf("status = %d; want 400", rr.Code)
	}
	if gotOK {
		t.Error("handler should not run with a bad ID")
	}
}
