package account

import (
	"context"
	"crypto/subtle"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"regexp"
	"strings"
	"time"

	"github.com/fjallet/uploadbox-go/internal/port"
)

var codeRe = regexp.MustCompile(`^\d{6}$`)

type emailVerifierSrv struct {
	repo port.UserRepository
}

// compile-time check: *emailVerifierSrv must satisfy port.EmailVerifier
var _ port.EmailVerifier = (*emailVerifierSrv)(nil)

func NewEmailVerifier(repo port.UserRepository) port.EmailVerifier {
	return &emailVerifierSrv{repo: repo}
}

// VerifyEmail consumes a code. Verifying an already-verified account is a
// no-op; a matched but stale code reports expiry so the client prompts for
// a resend.
func (s *emailVerifierSrv) VerifyEmail(ctx context.Context, in port.VerifyEmailInput) error {
	if !codeRe.MatchString(in.Code) {
		return ErrInvalidCode
	}

	email := strings.ToLower(strings.TrimSpace(in.Email))
	user, err := s.repo.GetByEmail(ctx, email)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrInvalidCode
	}
	if err != nil {
		return fmt.Errorf("could not look up email: %w", err)
	}

	if user.EmailVerified {
		return nil
	}
	if user.VerifyCodeHash == nil || user.VerifyCodeExpiresAt == nil {
		return ErrInvalidCode
	}
	if subtle.ConstantTimeCompare([]byte(hashCode(in.Code)), []byte(*user.VerifyCodeHash)) != 1 {
		return ErrInvalidCode
	}
	if time.Now().After(*user.VerifyCodeExpiresAt) {
		return ErrCodeExpired
	}

	if err := s.repo.MarkVerified(ctx, user.ID); err != nil {
		return fmt.Errorf("could not mark user as verified: %w", err)
	}
	log.Printf("account #%s passed email verification", user.ID)
	return nil
}
