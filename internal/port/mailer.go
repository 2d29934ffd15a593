package port

import "context"

// Mailer sends account verification codes.
type Mailer interface {
	SendVerificationCode(ctx context.Context, email, code string) error
}
