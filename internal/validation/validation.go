package validation

import (
	"encoding/json"
	"reflect"
	"regexp"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())

	// Tell the validator to use the JSON tag as the “field name”
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		// Grab the value of `json:"foo,omitempty"`
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			// fallback to the Go field name or skip
			return fld.Name
		}
		return name
	})
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

func ErrorsToJson(validationErrs error) (string, error) {
	errsMap := make(map[string]string)
	for _, fieldErr := range validationErrs.(validator.ValidationErrors) {
		errsMap[fieldErr.Field()] = fieldErr.Tag()
	}

	errsJson, err := json.Marshal(errsMap)
	if err != nil {
		return "", err
	}
	return string(errsJson), nil
}

// MinPasswordLen gates the simple flows; MinRegisterPasswordLen gates
// account creation.
const (
	MinPasswordLen         = 6
	MinRegisterPasswordLen = 8
)

// emailRe is deliberately loose: <non-whitespace>@<non-whitespace>.<non-whitespace>.
// Obviously malformed input is rejected before a round trip to the backend;
// anything stricter belongs there.
var emailRe = regexp.MustCompile(`^\S+@\S+\.\S+$`)

func IsValidEmail(email string) bool {
	return emailRe.MatchString(email)
}

func IsValidPassword(pwd string) bool {
	return len(pwd) >= MinPasswordLen
}

// Strength labels are advisory only and never block submission.
const (
	StrengthWeak   = "Weak"
	StrengthMedium = "Medium"
	StrengthStrong = "Strong"
)

// PasswordStrength scores a password 0–4 (length ≥ 8, uppercase, digit,
// symbol) and maps the score to an advisory label.
func PasswordStrength(pwd string) (int, string) {
	score := 0
	if len(pwd) >= 8 {
		score++
	}
	var hasUpper, hasDigit, hasSymbol bool
	for _, r := range pwd {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsDigit(r):
			hasDigit = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			hasSymbol = true
		}
	}
	if hasUpper {
		score++
	}
	if hasDigit {
		score++
	}
	if hasSymbol {
		score++
	}

	switch {
	case score <= 1:
		return score, StrengthWeak
	case score <= 3:
		return score, StrengthMedium
	default:
		return score, StrengthStrong
	}
}
