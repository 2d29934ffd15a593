package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/fjallet/uploadbox-go/internal/port"
	"github.com/fjallet/uploadbox-go/internal/usecase/account"
	"github.com/fjallet/uploadbox-go/internal/validation"
)

type VerifyEmailRequest struct {
	Email string `json:"email" validate:"required,email"`
	Code  string `json:"code" validate:"required,len=6,numeric"`
}

func VerifyEmailHandler(svc port.EmailVerifier) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req VerifyEmailRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteError(w, http.StatusBadRequest, "invalid request payload", err)
			return
		}

		if errs := validation.ValidateStruct(req); errs != nil {
			errsJSON, err := validation.ErrorsToJson(errs)
			if err != nil {
				WriteError(w, http.StatusInternalServerError, "failed to encode validation errors", err)
				return
			}
			RespondRawJSON(w, http.StatusBadRequest, []byte(errsJSON))
			log.Printf("❌  Validation failed: %s", errsJSON)
			return
		}

		in := port.VerifyEmailInput{Email: req.Email, Code: req.Code}
		if err := svc.VerifyEmail(r.Context(), in); err != nil {
			switch {
			case errors.Is(err, account.ErrInvalidCode):
				WriteError(w, http.StatusBadRequest, "invalid verification code", nil)
			case errors.Is(err, account.ErrCodeExpired):
				WriteError(w, http.StatusGone, "verification code has expired, log in to get a new one", nil)
			default:
				WriteError(w, http.StatusInternalServerError, "could not verify email", err)
			}
			return
		}

		w.WriteHeader(http.StatusNoContent)
		log.Printf("✅  Successfully verified email %q", req.Email)
	}
}
