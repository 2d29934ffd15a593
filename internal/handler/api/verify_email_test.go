package api

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fjallet/uploadbox-go/internal/port"
	"github.com/fjallet/uploadbox-go/internal/usecase/account"
)

type mockVerifier struct {
	err error
	in  port.VerifyEmailInput
}

func (m *mockVerifier) VerifyEmail(ctx context.Context, in port.VerifyEmailInput) error {
	m.in = in
	return m.err
}

func TestVerifyEmailHandler(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		svcErr     error
		wantStatus int
	}{
		{
			name:       "happy path",
			body:       `{"email":"jean@example.com","code":"123456"}`,
			wantStatus: http.StatusNoContent,
		},
		{
			name:       "code not numeric",
			body:       `{"email":"jean@example.com","code":"12345a"}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "code wrong length",
			body:       `{"email":"jean@example.com","code":"123"}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "wrong code",
			body:       `{"email":"jean@example.com","code":"654321"}`,
			svcErr:     account.ErrInvalidCode,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "expired code",
			body:       `{"email":"jean@example.com","code":"123456"}`,
			svcErr:     account.ErrCodeExpired,
			wantStatus: http.StatusGone,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			svc := &mockVerifier{err: tc.svcErr}
			req := httptest.NewRequest(http.MethodPost, "/auth/verify", bytes.NewBufferString(tc.body))
			rr := httptest.NewRecorder()
			VerifyEmailHandler(svc)(rr, req)

			if rr.Code != tc.wantStatus {
				t.Errorf("status = %d; want %d (body %s)", rr.Code, tc.wantStatus, rr.Body)
			}
		})
	}
}
