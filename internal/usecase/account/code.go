package account

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"math/big"
	"time"

	"github.com/fjallet/uploadbox-go/internal/model"
	"github.com/fjallet/uploadbox-go/internal/port"
)

// codeTTL is how long a verification code stays redeemable.
const codeTTL = 15 * time.Minute

func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", fmt.Errorf("could not generate verification code: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

func hashCode(code string) string {
	sum := sha256.Sum256([]byte(code))
	return hex.EncodeToString(sum[:])
}

// sendNewCode issues a fresh verification code to the user and mails it.
func sendNewCode(ctx context.Context, repo port.UserRepository, mailer port.Mailer, user *model.User) error {
	code, err := generateCode()
	if err != nil {
		return err
	}
	if err := repo.SetVerificationCode(ctx, user.ID, hashCode(code), time.Now().Add(codeTTL)); err != nil {
		return fmt.Errorf("could not store verification code: %w", err)
	}
	if err := mailer.SendVerificationCode(ctx, user.Email, code); err != nil {
		return fmt.Errorf("could not send verification code: %w", err)
	}
	return nil
}
