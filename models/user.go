package models

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Role is the closed set of account roles. Authorization switches on it
// exhaustively instead of comparing raw strings.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleDoctor   Role = "doctor"
	RoleAdmin    Role = "admin"
)

// ParseRole maps a stored string onto the role set.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleCustomer, RoleDoctor, RoleAdmin:
		return Role(s), nil
	}
	return "", fmt.Errorf("unknown role %q", s)
}

// DeriveRole assigns the role at registration time: any email ending in the
// reserved doctor domain registers as a doctor, everyone else as a customer.
// Admins are never created through registration.
func DeriveRole(email, doctorDomain string) Role {
	if strings.HasSuffix(email, doctorDomain) {
		return RoleDoctor
	}
	return RoleCustomer
}

type User struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Username   string    `gorm:"size:255;not null;unique" json:"username"`
	Email      string    `gorm:"size:255;not null;unique" json:"email"`
	Password   string    `gorm:"size:255;not null" json:"-"`
	Role       Role      `gorm:"size:16;not null" json:"role"`
	IsApproved bool      `json:"isApproved"`
	CreatedAt  time.Time `json:"createdAt"`
}

// UserSummary is the identity slice joined into listings and appointments.
type UserSummary struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

func (u *User) Summary() UserSummary {
	return UserSummary{ID: u.ID, Username: u.Username, Email: u.Email}
}

// SetPassword hashes the plaintext before storage. The plaintext is never
// persisted or logged.
func (u *User) SetPassword(plaintext string) error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.Password = string(hashed)
	return nil
}

// CheckPassword reports whether the plaintext matches the stored hash.
func (u *User) CheckPassword(plaintext string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(plaintext)); err != nil {
		return errors.New("password mismatch")
	}
	return nil
}
