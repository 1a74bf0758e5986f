package validation

import (
	"errors"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// MinUsernameLength is the shortest username accepted anywhere.
const MinUsernameLength = 3

var usernamePattern = regexp.MustCompile(`^[a-z0-9_]+$`)

// ValidUsername reports whether s is an acceptable username after
// normalization: lowercase letters, digits and underscores, length >= 3.
func ValidUsername(s string) bool {
	return len(s) >= MinUsernameLength && usernamePattern.MatchString(s)
}

// NormalizeUsername applies the canonical form used for storage and lookup.
func NormalizeUsername(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// NormalizeEmail applies the canonical form used for storage and lookup.
func NormalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func validateUsername(fl validator.FieldLevel) bool {
	return ValidUsername(NormalizeUsername(fl.Field().String()))
}

func validateSport(fl validator.FieldLevel) bool {
	sport := strings.TrimSpace(fl.Field().String())
	return sport != "" && len(sport) <= 50
}

// RegisterCustomValidators installs the custom rules on gin's binding
// validator so DTO tags can use them. Call once at startup.
func RegisterCustomValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	if err := v.RegisterValidation("username", validateUsername); err != nil {
		return err
	}
	return v.RegisterValidation("sport", validateSport)
}

// Per-field messages for binding failures. Fields without an entry fall
// back to a generic message.
var fieldMessages = map[string]map[string]string{
	"Email": {
		"required": "Email is required",
		"email":    "Email is not a valid address",
	},
	"FullName": {
		"required": "Full name is required",
	},
	"Username": {
		"required": "Username is required",
		"username": "Username must be at least 3 characters and contain only lowercase letters, numbers and underscores",
	},
	"Password": {
		"required": "Password is required",
		"min":      "Password must be at least 6 characters",
	},
	"Identifier": {
		"required": "Username or email is required",
	},
	"OTP": {
		"required": "OTP is required",
	},
	"Bio": {
		"max": "Bio must be at most 500 characters",
	},
	"Sports": {
		"sport": "Sport names must be non-empty and at most 50 characters",
	},
}

// MessageFor translates a single validator failure into a human-readable
// message.
func MessageFor(fe validator.FieldError) string {
	if byTag, ok := fieldMessages[fe.Field()]; ok {
		if msg, ok := byTag[fe.Tag()]; ok {
			return msg
		}
	}
	return fe.Field() + " is invalid"
}

// MessagesFor flattens a binding error into per-field messages. Non-
// validator errors (malformed JSON) produce a single generic entry.
func MessagesFor(err error) []string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []string{"Invalid request body"}
	}
	out := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, MessageFor(fe))
	}
	return out
}
