package mailer

import (
	"context"
	"log"

	"github.com/fjallet/uploadbox-go/internal/port"
)

// ConsoleMailer writes verification codes to the process log instead of
// sending real mail. Good enough for development and single-user installs;
// swap in an SMTP implementation behind port.Mailer for anything else.
type ConsoleMailer struct{}

// compile-time check: *ConsoleMailer must satisfy port.Mailer
var _ port.Mailer = (*ConsoleMailer)(nil)

func NewConsoleMailer() *ConsoleMailer {
	return &ConsoleMailer{}
}

func (m *ConsoleMailer) SendVerificationCode(ctx context.Context, email, code string) error {
	log.Printf("verification code for %q: %s", email, code)
	return nil
}
