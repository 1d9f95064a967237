package models

import (
	"time"

	"gorm.io/gorm"
)

func init() {
	registerModel(&PasswordReset{})
}

type PasswordReset struct {
	gorm.Model

	CustomerID uint `gorm:"index"`
	Customer   Customer
	Token      string `gorm:"uniqueIndex;size:64"`
	Channel    string
	ExpiresAt  time.Time `gorm:"index"`
}

func (p *PasswordReset) Expired(now time.Time) bool {
	return !p.ExpiresAt.After(now)
}
