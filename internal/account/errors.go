package account

import "errors"

var (
	ErrPasswordMismatch   = errors.New("passwords do not match")
	ErrTermsNotAccepted   = errors.New("terms not accepted")
	ErrInvalidEmail       = errors.New("invalid email address")
	ErrWeakPassword       = errors.New("password too short")
	ErrPasswordTooLong    = errors.New("password too long")
	ErrNameRequired       = errors.New("name is required")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotLoggedIn        = errors.New("not logged in")
)

var messages = []struct {
	err error
	msg string
}{
	{ErrPasswordMismatch, "Passwords do not match"},
	{ErrTermsNotAccepted, "Please agree to the terms and conditions"},
	{ErrInvalidEmail, "Please enter a valid email address"},
	{ErrWeakPassword, "Password must be at least 6 characters"},
	{ErrPasswordTooLong, "Password must be at most 72 characters"},
	{ErrNameRequired, "Please enter your name"},
	{ErrEmailTaken, "An account with this email already exists"},
	{ErrInvalidCredentials, "Invalid email or password"},
	{ErrNotLoggedIn, "Please log in to continue"},
}

// Message turns an account error into the text shown to the shopper.
func Message(err error) string {
	for _, m := range messages {
		if errors.Is(err, m.err) {
			return m.msg
		}
	}
	return "Something went wrong. Please try again."
}
