// Package account registers shoppers and tracks which user a session is logged in as.
package account

import (
	"context"
	"net/mail"
	"strings"
	"time"
)

const (
	minPasswordLength = 6
	// bcrypt only accepts this many bytes
	maxPasswordLength = 72
)

// User is the public view of an account; the password hash never leaves the package.
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Address   string    `json:"address"`
	CreatedAt time.Time `json:"createdAt"`
}

type Registration struct {
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
	FirstName       string `json:"firstName"`
	LastName        string `json:"lastName"`
	AgreeToTerms    bool   `json:"agreeToTerms"`
}

// Validate checks the form in the order it is filled in and returns the first problem.
func (r Registration) Validate() error {
	if r.Password != r.ConfirmPassword {
		return ErrPasswordMismatch
	}
	if !r.AgreeToTerms {
		return ErrTermsNotAccepted
	}
	if !validEmail(r.Email) {
		return ErrInvalidEmail
	}
	if len(r.Password) < minPasswordLength {
		return ErrWeakPassword
	}
	if len(r.Password) > maxPasswordLength {
		return ErrPasswordTooLong
	}
	if strings.TrimSpace(r.FirstName) == "" && strings.TrimSpace(r.LastName) == "" {
		return ErrNameRequired
	}
	return nil
}

func (r Registration) name() string {
	return strings.TrimSpace(strings.TrimSpace(r.FirstName) + " " + strings.TrimSpace(r.LastName))
}

type ProfileUpdate struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

type Authenticator interface {
	Register(ctx context.Context, r Registration) (User, error)
	Login(ctx context.Context, sessionID, email, password string) (User, error)
	CurrentUser(ctx context.Context, sessionID string) (User, error)
	Logout(ctx context.Context, sessionID string) error
	UpdateProfile(ctx context.Context, sessionID string, p ProfileUpdate) (User, error)
}

func normaliseEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// validEmail accepts a bare address only, no display name.
func validEmail(email string) bool {
	email = strings.TrimSpace(email)
	addr, err := mail.ParseAddress(email)
	if err != nil {
		return false
	}
	return addr.Address == email && strings.Contains(email[strings.LastIndex(email, "@"):], ".")
}
