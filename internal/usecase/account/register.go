package account

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/fjallet/uploadbox-go/internal/model"
	"github.com/fjallet/uploadbox-go/internal/port"
	"github.com/fjallet/uploadbox-go/internal/validation"
	"golang.org/x/crypto/bcrypt"
)

type registrarSrv struct {
	repo    port.UserRepository
	mailer  port.Mailer
	genUUID port.UUIDGen
}

// compile-time check: *registrarSrv must satisfy port.Registrar
var _ port.Registrar = (*registrarSrv)(nil)

func NewRegistrar(repo port.UserRepository, mailer port.Mailer, genUUID port.UUIDGen) port.Registrar {
	return &registrarSrv{repo: repo, mailer: mailer, genUUID: genUUID}
}

// Register creates the identity signed out and unverified, then mails a
// verification code. The first session only exists after login.
func (s *registrarSrv) Register(ctx context.Context, in port.RegisterInput) error {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if !validation.IsValidEmail(email) {
		return fmt.Errorf("invalid email %q", in.Email)
	}
	if len(in.Password) < validation.MinRegisterPasswordLen {
		return fmt.Errorf("password too short: min length is %d", validation.MinRegisterPasswordLen)
	}

	existing, err := s.repo.GetByEmail(ctx, email)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("could not look up email: %w", err)
	}
	if existing != nil {
		return ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("could not hash password: %w", err)
	}

	code, err := generateCode()
	if err != nil {
		return err
	}
	codeHash := hashCode(code)
	expiresAt := time.Now().Add(codeTTL)

	user := &model.User{
		ID:                  s.genUUID(),
		Email:               email,
		PasswordHash:        string(hash),
		DisplayName:         strings.TrimSpace(in.DisplayName),
		EmailVerified:       false,
		VerifyCodeHash:      &codeHash,
		VerifyCodeExpiresAt: &expiresAt,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return fmt.Errorf("could not create user: %w", err)
	}
	log.Printf("registered new account #%s for %q", user.ID, user.Email)

	if err := s.mailer.SendVerificationCode(ctx, user.Email, code); err != nil {
		return fmt.Errorf("could not send verification code: %w", err)
	}
	return nil
}
