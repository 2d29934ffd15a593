package model

import (
	"time"

	"github.com/fjallet/uploadbox-go/internal/db"
)

// User is an account identity. An unverified user never holds a session.
type User struct {
	ID            db.UUID `json:"id"`
	Email         string  `json:"email"`
	PasswordHash  string  `json:"-"`
	DisplayName   string  `json:"display_name"`
	EmailVerified bool    `json:"email_verified"`

	// verification code state, nil once consumed
	VerifyCodeHash      *string    `json:"-"`
	VerifyCodeExpiresAt *time.Time `json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
