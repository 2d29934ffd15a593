package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fjallet/uploadbox-go/internal/db"
	"github.com/fjallet/uploadbox-go/internal/model"
	"github.com/fjallet/uploadbox-go/internal/port"
	"github.com/fjallet/uploadbox-go/internal/usecase/account"
)

type mockAuthenticator struct {
	out port.LoginOutput
	err error
	in  port.LoginInput
}

func (m *mockAuthenticator) Login(ctx context.Context, in port.LoginInput) (port.LoginOutput, error) {
	m.in = in
	return m.out, m.err
}

func TestLoginHandler(t *testing.T) {
	user := &model.User{ID: db.NewUUID(), Email: "jean@example.com", EmailVerified: true}

	tests := []struct {
		name       string
		body       string
		svcOut     port.LoginOutput
		svcErr     error
		wantStatus int
	}{
		{
			name:       "happy path",
			body:       `{"email":"jean@example.com","password":"s3cret-pass"}`,
			svcOut:     port.LoginOutput{Token: "a.b.c", User: user},
			wantStatus: http.StatusOK,
		},
		{
			name:       "missing password",
			body:       `{"email":"jean@example.com"}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "bad credentials",
			body:       `{"email":"jean@example.com","password":"wrong"}`,
			svcErr:     account.ErrInvalidCredentials,
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "unverified email",
			body:       `{"email":"jean@example.com","password":"s3cret-pass"}`,
			svcErr:     account.ErrEmailNotVerified,
			wantStatus: http.StatusForbidden,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			svc := &mockAuthenticator{out: tc.svcOut, err: tc.svcErr}
			req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewBufferString(tc.body))
			rr := httptest.NewRecorder()
			LoginHandler(svc)(rr, req)

			if rr.Code != tc.wantStatus {
				t.Fatalf("status = %d; want %d (body %s)", rr.Code, tc.wantStatus, rr.Body)
			}
			if tc.wantStatus == http.StatusOK {
				var out port.LoginOutput
				if err := json.NewDecoder(rr.Body).Decode(&out); err != nil {
					t.Fatalf("decode response: %v", err)
				}
				if out.Token != "a.b.c" {
					t.Errorf("token = %q; want a.b.c", out.Token)
				}
				if out.User == nil || out.User.Email != "jean@example.com" {
					t.Errorf("user = %+v; want the logged-in user", out.User)
				}
			}
		})
	}
}
