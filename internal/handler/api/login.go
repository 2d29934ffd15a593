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

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func LoginHandler(svc port.Authenticator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req LoginRequest
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

		out, err := svc.Login(r.Context(), port.LoginInput{Email: req.Email, Password: req.Password})
		if err != nil {
			switch {
			case errors.Is(err, account.ErrInvalidCredentials):
				WriteError(w, http.StatusUnauthorized, "invalid email or password", nil)
			case errors.Is(err, account.ErrEmailNotVerified):
				WriteError(w, http.StatusForbidden, "email address not verified, a new code has been sent", nil)
			default:
				WriteError(w, http.StatusInternalServerError, "could not log in", err)
			}
			return
		}

		RespondJSON(w, http.StatusOK, out)
		log.Printf("✅  Successfully started session for account #%s", out.User.ID)
	}
}
