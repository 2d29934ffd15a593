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

type RegisterRequest struct {
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=8"`
	DisplayName string `json:"display_name" validate:"max=100"`
}

func RegisterHandler(svc port.Registrar) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req RegisterRequest
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

		in := port.RegisterInput{
			Email:       req.Email,
			Password:    req.Password,
			DisplayName: req.DisplayName,
		}
		if err := svc.Register(r.Context(), in); err != nil {
			if errors.Is(err, account.ErrEmailTaken) {
				WriteError(w, http.StatusConflict, "an account with this email already exists", nil)
				return
			}
			WriteError(w, http.StatusInternalServerError, "could not register account", err)
			return
		}

		w.WriteHeader(http.StatusCreated)
		log.Printf("✅  Successfully registered account for %q", req.Email)
	}
}
