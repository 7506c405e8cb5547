package entities

import (
	"strings"
	"time"
)

// User represents an account of the study application.
type User struct {
	ID           int64
	Email        string // login, unique
	PasswordHash string // bcrypt hash, never the plain password
	Nickname     string
	IsAdmin      bool
	CreatedAt    time.Time
}

func NewUser(email, passwordHash, nickname string, isAdmin bool) *User {
	email = strings.TrimSpace(strings.ToLower(email))
	nickname = strings.TrimSpace(nickname)
	if nickname == "" {
		nickname = DefaultNickname(email)
	}

	return &User{
		Email:        email,
		PasswordHash: passwordHash,
		Nickname:     nickname,
		IsAdmin:      isAdmin,
		CreatedAt:    time.Now(),
	}
}

// DefaultNickname returns the local part of an email address.
func DefaultNickname(email string) string {
	local, _, found := strings.Cut(email, "@")
	if !found || local == "" {
		return email
	}
	return local
}
