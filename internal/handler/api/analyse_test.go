package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fjallet/uploadbox-go/internal/api_context"
	"github.com/fjallet/uploadbox-go/internal/db"
	"github.com/fjallet/uploadbox-go/internal/policy"
	"github.com/fjallet/uploadbox-go/internal/usecase/upload"
)

type mockRequester struct {
	err     error
	ownerID db.UUID
	id      db.UUID
	called  bool
}

func (m *mockRequester) RequestAnalysis(ctx context.Context, ownerID, id db.UUID) error {
	m.called = true
	m.ownerID = ownerID
	m.id = id
	return m.err
}

func analyseRequest(owner, record *db.UUID) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/uploads/some-id/analyse", nil)
	ctx := req.Context()
	if owner != nil {
		ctx = context.WithValue(ctx, api_context.AuthUserIDKey, *owner)
	}
	if record != nil {
		ctx = context.WithValue(ctx, api_context.RecordIDKey, *record)
	}
	return req.WithContext(ctx)
}

func TestAnalyseHandler(t *testing.T) {
	owner := db.NewUUID()
	record := db.NewUUID()

	tests := []struct {
		name       string
		owner      *db.UUID
		record     *db.UUID
		svcErr     error
		wantStatus int
	}{
		{"happy path", &owner, &record, nil, http.StatusAccepted},
		{"unauthenticated", nil, &record, nil, http.StatusUnauthorized},
		{"missing record id", &owner, nil, nil, http.StatusBadRequest},
		{"unknown record", &owner, &record, upload.ErrUploadNotFound, http.StatusNotFound},
		{"not the owner", &owner, &record, policy.ErrDenied, http.StatusForbidden},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			svc := &mockRequester{err: tc.svcErr}
			rr := httptest.NewRecorder()
			AnalyseHandler(svc)(rr, analyseRequest(tc.owner, tc.record))

			if rr.Code != tc.wantStatus {
				t.Fatalf("status = %d; want %d (body %s)", rr.Code, tc.wantStatus, rr.Body)
			}
			if tc.wantStatus == http.StatusAccepted {
				if !svc.called || svc.ownerID != owner || svc.id != record {
					t.Error("expected the service to be called with the context IDs")
				}
			}
		})
	}
}
