// Package domain contains entities without transport, just meta-data
package domain

import (
	"errors"
	"strings"
)

const (
	MaxUsernameLen  = 36
	DefaultUsername = "guest"
)

var (
	ErrUsernameTooLong = errors.New("username too long")
	ErrUsernameEmpty   = errors.New("username empty")
)

type UserID string

// User is the display identity of one live connection.
type User struct {
	ID       UserID `json:"id"`
	Username string `json:"username"`
}

// NewUser starts every connection as a guest until it names itself.
func NewUser(id UserID) *User {
	return &User{ID: id, Username: DefaultUsername}
}

func ValidateUsername(username string) (string, error) {
	username = strings.TrimSpace(username)
	if len(username) == 0 {
		return "", ErrUsernameEmpty
	}
	if len(username) > MaxUsernameLen {
		return "", ErrUsernameTooLong
	}
	return username, nil
}

func (u *User) SetUsername(username string) error {
	name, err := ValidateUsername(username)
	if err != nil {
		return err
	}
	u.Username = name
	return nil
}
