package models

import (
	"errors"
	"strings"

	emailverifier "github.com/AfterShip/email-verifier"
	"gorm.io/gorm"
)

var (
	ErrInvalidEmail    = errors.New("email is invalid")
	ErrWebsiteRequired = errors.New("website is required")
)

var verifier = newEmailVerifier()

func init() {
	registerModel(&Customer{})
}

type Customer struct {
	gorm.Model
	Email          string `gorm:"uniqueIndex;size:255;not null"`
	FirstName      string
	LastName       string
	WebsiteID      uint `gorm:"index;not null"`
	PasswordResets []PasswordReset
}

// FullName joins first and last name the way greetings address the customer.
func (c *Customer) FullName() string {
	return strings.TrimSpace(c.FirstName + " " + c.LastName)
}

func (c *Customer) BeforeCreate(tx *gorm.DB) error {
	if c.WebsiteID == 0 {
		return ErrWebsiteRequired
	}

	return validateEmail(c.Email)
}

func validateEmail(email string) error {
	if email == "" {
		return ErrInvalidEmail
	}

	if !verifier.ParseAddress(email).Valid {
		return ErrInvalidEmail
	}

	return nil
}

func newEmailVerifier() *emailverifier.Verifier {
	v := emailverifier.NewVerifier()

	v.DisableSMTPCheck()
	v.DisableGravatarCheck()
	v.DisableDomainSuggest()
	v.DisableAutoUpdateDisposable()

	return v
}
