package httpapi

import (
	"regexp"
	"strings"
)

const (
	minFullNameLength = 5
	minPasswordLength = 8
	maxPasswordLength = 20
)

var emailPattern = regexp.MustCompile(`^[0-9A-Za-z][-0-9A-Za-z.]+[0-9A-Za-z]@([-A-Za-z]+\.){1,2}[-A-Za-z]{2,}$`)

// ValidationError names the offending registration field. The message is
// the user-facing text.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// RegistrationRequest is the POST /auth/registration body.
type RegistrationRequest struct {
	FullName        string `json:"fullname"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

// Validate runs the structural registration checks in a fixed order; the
// first failing check wins. The duplicate-email check is separate because
// it needs the directory.
func (r RegistrationRequest) Validate() *ValidationError {
	if len(strings.Split(r.FullName, " ")) != 2 || len(r.FullName) < minFullNameLength {
		return &ValidationError{Field: "fullname", Message: "Invalid fullname"}
	}

	if !emailPattern.MatchString(r.Email) {
		return &ValidationError{Field: "email", Message: "Invalid email"}
	}

	if len(r.Password) < minPasswordLength || len(r.Password) > maxPasswordLength {
		return &ValidationError{Field: "password", Message: "Invalid password length"}
	}

	if r.Password != r.ConfirmPassword {
		return &ValidationError{Field: "confirmPassword", Message: "Passwords do not match"}
	}

	return nil
}
