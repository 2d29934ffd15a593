package mock

import "context"

// Mailer captures sent verification codes for tests.
type Mailer struct {
	SendErr error

	SendCalled bool
	SentTo     string
	SentCode   string
}

func (m *Mailer) SendVerificationCode(ctx context.Context, email, code string) error {
	m.SendCalled = true
	m.SentTo = email
	m.SentCode = code
	return m.SendErr
}
