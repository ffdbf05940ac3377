package dto

import (
	"unicode"

	"github.com/go-playground/validator/v10"
)

// SignupRequestDTO is the payload for user and admin signup.
type SignupRequestDTO struct {
	Email     string `json:"email" validate:"required,email,min=3,max=100"`
	Password  string `json:"password" validate:"required,min=5,max=100,password"`
	FirstName string `json:"first_name" validate:"required,min=3,max=100"`
	LastName  string `json:"last_name" validate:"required,min=3,max=100"`
}

// SigninRequestDTO is the payload for user and admin signin.
type SigninRequestDTO struct {
	Email    string `json:"email" validate:"required,email,min=3,max=100"`
	Password string `json:"password" validate:"required,min=5,max=100"`
}

// SignupResponseDTO confirms a created account.
type SignupResponseDTO struct {
	Message string `json:"message"`
	ID      string `json:"userId,omitempty"`
}

// SigninResponseDTO carries the issued bearer token. FirstName is only set
// for user signin, for session display.
type SigninResponseDTO struct {
	Message   string `json:"message"`
	Token     string `json:"token"`
	FirstName string `json:"first_name,omitempty"`
}

// RegisterCustomValidations adds the password complexity rule: at least one
// lowercase, one uppercase, one digit and one symbol. Go's regexp has no
// lookahead, so the rule is a function rather than a pattern.
func RegisterCustomValidations(v *validator.Validate) error {
	return v.RegisterValidation("password", func(fl validator.FieldLevel) bool {
		var hasLower, hasUpper, hasDigit, hasSymbol bool
		for _, r := range fl.Field().String() {
			switch {
			case unicode.IsLower(r):
				hasLower = true
			case unicode.IsUpper(r):
				hasUpper = true
			case unicode.IsDigit(r):
				hasDigit = true
			case unicode.IsPunct(r) || unicode.IsSymbol(r):
				hasSymbol = true
			}
		}
		return hasLower && hasUpper && hasDigit && hasSymbol
	})
}
