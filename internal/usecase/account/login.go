package account

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/fjallet/uploadbox-go/internal/port"
	"golang.org/x/crypto/bcrypt"
)

type authenticatorSrv struct {
	repo     port.UserRepository
	mailer   port.Mailer
	issuer   TokenIssuer
	sessions *SessionBroadcaster
}

// compile-time check: *authenticatorSrv must satisfy port.Authenticator
var _ port.Authenticator = (*authenticatorSrv)(nil)

func NewAuthenticator(repo port.UserRepository, mailer port.Mailer, issuer TokenIssuer, sessions *SessionBroadcaster) port.Authenticator {
	return &authenticatorSrv{repo: repo, mailer: mailer, issuer: issuer, sessions: sessions}
}

// Login verifies the password, enforces the email gate and mints a session
// token. An unverified identity gets a fresh code mailed instead of a
// session.
func (s *authenticatorSrv) Login(ctx context.Context, in port.LoginInput) (port.LoginOutput, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))

	user, err := s.repo.GetByEmail(ctx, email)
	if errors.Is(err, sql.ErrNoRows) {
		return port.LoginOutput{}, ErrInvalidCredentials
	}
	if err != nil {
		return port.LoginOutput{}, fmt.Errorf("could not look up email: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return port.LoginOutput{}, ErrInvalidCredentials
	}

	if !user.EmailVerified {
		log.Printf("login attempt on unverified account #%s, resending code...", user.ID)
		if err := sendNewCode(ctx, s.repo, s.mailer, user); err != nil {
			return port.LoginOutput{}, err
		}
		return port.LoginOutput{}, ErrEmailNotVerified
	}

	token, err := s.issuer.Issue(user.ID)
	if err != nil {
		return port.LoginOutput{}, err
	}
	s.sessions.Started(user.ID)
	log.Printf("session started for account #%s", user.ID)

	return port.LoginOutput{Token: token, User: user}, nil
}
