package account

import "errors"

var (
	// ErrEmailTaken is returned when registering an address that already
	// has an account.
	ErrEmailTaken = errors.New("an account with this email already exists")

	// ErrInvalidCredentials covers both unknown email and wrong password,
	// so callers cannot probe which addresses have accounts.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrEmailNotVerified is returned on login when the identity exists and
	// the password matches but the email gate has not been passed. A fresh
	// code has been sent by the time callers see this.
	ErrEmailNotVerified = errors.New("email address not verified")

	// ErrInvalidCode is returned when the verification code is malformed,
	// unknown or does not match.
	ErrInvalidCode = errors.New("invalid verification code")

	// ErrCodeExpired is returned when the verification code matched but its
	// validity window has passed.
	ErrCodeExpired = errors.New("verification code has expired")
)
