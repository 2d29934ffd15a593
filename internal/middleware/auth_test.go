package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fjallet/uploadbox-go/internal/api_context"
	"github.com/fjallet/uploadbox-go/internal/db"
	"github.com/golang-jwt/jwt/v4"
)

const testSecret = "test-secret"

func signToken(t *testing.T, secret string, sub string, ttl time.Duration) string {
	t.Helper()
	claims := jwt.RegisteredClaims{
		Subject:   sub,
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func runAuth(t *testing.T, authHeader string) (*httptest.ResponseRecorder, db.UUID, bool) {
	t.Helper()
	var gotID db.UUID
	var gotOK bool
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID, gotOK = api_context.AuthUserIDFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/uploads", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rr := httptest.NewRecorder()
	WithAuth(testSecret)(next).ServeHTTP(rr, req)
	return rr, gotID, gotOK
}

func TestWithAuth_ValidToken(t *testing.T) {
	userID := db.NewUUID()
	token := signToken(t, testSecret, userID.String(), time.Hour)

	rr, gotID, gotOK := runAuth(t, "Bearer "+token)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d; want 200", rr.Code)
	}
	if !gotOK || gotID != userID {
		t.Errorf("context user = %s (%v); want %s", gotID, gotOK, userID)
	}
}

func TestWithAuth_MissingHeader(t *testing.T) {
	rr, _, gotOK := runAuth(t, "")
	if rr.Code != http.StatusUnauthorized {
		t.Errorf("status = %d; want 401", rr.Code)
	}
	if gotOK {
		t.Error("handler should not run without a token")
	}
}

func TestWithAuth_ExpiredToken(t *testing.T) {
	token := signToken(t, testSecret, db.NewUUID().String(), -time.Minute)

	rr, _, _ := runAuth(t, "Bearer "+token)
	if rr.Code != http.StatusUnauthorized {
		t.Errorf("status = %d; want 401", rr.Code)
	}
}

func TestWithAuth_WrongSecret(t *testing.T) {
	token := signToken(t, "other-secret", db.NewUUID().String(), time.Hour)

	rr, _, _ := runAuth(t, "Bearer "+token)
	if rr.Code != http.StatusUnauthorized {
		t.Errorf("status = %d; want 401", rr.Code)
	}
}

func TestWithAuth_GarbageSubject(t *testing.T) {
	token := signToken(t, testSecret, "not-a-uuid", time.Hour)

	rr, _, _ := runAuth(t, "Bearer "+token)
	if rr.Code != http.StatusUnauthorized {
		t.Errorf("status = %d; want 401", rr.Code)
	}
}
